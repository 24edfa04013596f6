// aurora-analyze profiles a message dump file and prints a JSON report
// of data-quality and privacy anomalies. It runs fully offline.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/crimson-sun/aurora/internal/analyze"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: aurora-analyze <dump.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fail(err)
	}

	report, err := analyze.Analyze(data, time.Now().UTC())
	if err != nil {
		fail(err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(out))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "aurora-analyze: %v\n", err)
	os.Exit(1)
}
