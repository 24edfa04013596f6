// Package analyze profiles a message dump for data-quality and privacy
// anomalies. It is an offline tool: it reads a JSON dump and never
// calls external services.
package analyze

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/tidwall/gjson"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/aurora/internal/engine/redactor"
)

const (
	shortMessageLen = 10
	longMessageLen  = 500
	maxExamples     = 5
)

// Report is the full analysis output, serialized as JSON by the CLI.
type Report struct {
	TotalMessages int            `json:"total_messages"`
	Temporal      TemporalReport `json:"temporal"`
	Users         UserReport     `json:"users"`
	Content       ContentReport  `json:"content"`
	Fields        FieldReport    `json:"fields"`
}

// TemporalReport covers timestamp anomalies.
type TemporalReport struct {
	ValidTimestamps   int      `json:"valid_timestamps"`
	InvalidTimestamps int      `json:"invalid_timestamps"`
	FutureDates       int      `json:"future_dates"`
	PreEpochDates     int      `json:"pre_2020_dates"`
	Earliest          string   `json:"earliest,omitempty"`
	Latest            string   `json:"latest,omitempty"`
	FutureExamples    []string `json:"future_examples,omitempty"`
}

// UserReport covers the user/message distribution and identity
// inconsistencies.
type UserReport struct {
	TotalUsers         int                 `json:"total_users"`
	AvgMessagesPerUser float64             `json:"avg_messages_per_user"`
	TopUsers           []UserCount         `json:"top_users"`
	SingleMessageUsers int                 `json:"single_message_users"`
	MultiIDUsers       map[string][]string `json:"multi_id_users,omitempty"`
	NameCollisions     map[string][]string `json:"name_collisions,omitempty"`
}

// UserCount pairs a user name with their message count.
type UserCount struct {
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

// ContentReport covers message-text quality and sensitive-data counts.
type ContentReport struct {
	EmptyMessages    int                   `json:"empty_messages"`
	ShortMessages    int                   `json:"short_messages"`
	LongMessages     int                   `json:"long_messages"`
	AvgMessageLength float64               `json:"avg_message_length"`
	Duplicates       int                   `json:"duplicates"`
	SensitiveMatches map[redactor.Kind]int `json:"sensitive_matches"`
}

// FieldReport counts missing fields per record.
type FieldReport struct {
	Missing map[string]int `json:"missing"`
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases, trims and strips combining marks so that accent
// and case variants of the same name collide ("José" / "jose").
func foldName(name string) string {
	folded, _, err := transform.String(foldTransform, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Analyze profiles a raw JSON dump of the form {"items": [...]}. The
// reference time anchors the future-date check.
func Analyze(data []byte, now time.Time) (*Report, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("analyze: malformed JSON input")
	}
	items := gjson.GetBytes(data, "items")
	if !items.Exists() || !items.IsArray() {
		return nil, fmt.Errorf("analyze: input has no items array")
	}

	red := redactor.New()
	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	report := &Report{
		Content: ContentReport{SensitiveMatches: map[redactor.Kind]int{}},
		Fields:  FieldReport{Missing: map[string]int{}},
	}

	var (
		earliest, latest time.Time
		userCounts       = map[string]int{}
		userIDs          = map[string]map[string]bool{}
		nameVariants     = map[string]map[string]bool{}
		textCounts       = map[string]int{}
		totalLength      int
	)

	items.ForEach(func(_, item gjson.Result) bool {
		report.TotalMessages++

		for _, field := range []string{"id", "user_id", "user_name", "timestamp", "message"} {
			if item.Get(field).String() == "" {
				report.Fields.Missing[field]++
			}
		}

		name := item.Get("user_name").String()
		id := item.Get("user_id").String()
		text := item.Get("message").String()

		// Temporal.
		ts := item.Get("timestamp").String()
		if t, err := time.Parse(time.RFC3339, ts); err != nil {
			report.Temporal.InvalidTimestamps++
		} else {
			report.Temporal.ValidTimestamps++
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
			if t.After(latest) {
				latest = t
			}
			if t.After(now) {
				report.Temporal.FutureDates++
				if len(report.Temporal.FutureExamples) < maxExamples {
					report.Temporal.FutureExamples = append(report.Temporal.FutureExamples,
						fmt.Sprintf("%s: %s", name, t.Format("2006-01-02")))
				}
			}
			if t.Before(epoch) {
				report.Temporal.PreEpochDates++
			}
		}

		// Users.
		if name != "" {
			userCounts[name]++
			if id != "" {
				if userIDs[name] == nil {
					userIDs[name] = map[string]bool{}
				}
				userIDs[name][id] = true
			}
			folded := foldName(name)
			if nameVariants[folded] == nil {
				nameVariants[folded] = map[string]bool{}
			}
			nameVariants[folded][name] = true
		}

		// Content.
		totalLength += len(text)
		trimmed := strings.TrimSpace(text)
		switch {
		case trimmed == "":
			report.Content.EmptyMessages++
		case len(text) < shortMessageLen:
			report.Content.ShortMessages++
		case len(text) > longMessageLen:
			report.Content.LongMessages++
		}
		if trimmed != "" {
			textCounts[strings.ToLower(trimmed)]++
		}
		for kind, n := range red.Scan(text) {
			report.Content.SensitiveMatches[kind] += n
		}

		return true
	})

	if !earliest.IsZero() {
		report.Temporal.Earliest = earliest.Format("January 2, 2006")
		report.Temporal.Latest = latest.Format("January 2, 2006")
	}

	report.Users.TotalUsers = len(userCounts)
	if len(userCounts) > 0 {
		report.Users.AvgMessagesPerUser = float64(report.TotalMessages) / float64(len(userCounts))
	}
	for name, count := range userCounts {
		if count == 1 {
			report.Users.SingleMessageUsers++
		}
		report.Users.TopUsers = append(report.Users.TopUsers, UserCount{Name: name, Messages: count})
	}
	sort.Slice(report.Users.TopUsers, func(i, j int) bool {
		a, b := report.Users.TopUsers[i], report.Users.TopUsers[j]
		if a.Messages != b.Messages {
			return a.Messages > b.Messages
		}
		return a.Name < b.Name
	})
	if len(report.Users.TopUsers) > 10 {
		report.Users.TopUsers = report.Users.TopUsers[:10]
	}

	for name, ids := range userIDs {
		if len(ids) > 1 {
			if report.Users.MultiIDUsers == nil {
				report.Users.MultiIDUsers = map[string][]string{}
			}
			report.Users.MultiIDUsers[name] = sortedKeys(ids)
		}
	}
	for _, variants := range nameVariants {
		if len(variants) > 1 {
			if report.Users.NameCollisions == nil {
				report.Users.NameCollisions = map[string][]string{}
			}
			names := sortedKeys(variants)
			report.Users.NameCollisions[names[0]] = names
		}
	}

	for _, count := range textCounts {
		if count > 1 {
			report.Content.Duplicates++
		}
	}
	if report.TotalMessages > 0 {
		report.Content.AvgMessageLength = float64(totalLength) / float64(report.TotalMessages)
	}

	return report, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
