package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crimson-sun/aurora/internal/config"
	"github.com/crimson-sun/aurora/internal/connector"
	"github.com/crimson-sun/aurora/internal/engine"
	"github.com/crimson-sun/aurora/internal/engine/projector"
	"github.com/crimson-sun/aurora/internal/engine/ranker"
	"github.com/crimson-sun/aurora/internal/engine/redactor"
	"github.com/crimson-sun/aurora/internal/engine/synth"
	"github.com/crimson-sun/aurora/internal/llm"
	"github.com/crimson-sun/aurora/internal/logging"
	"github.com/crimson-sun/aurora/internal/server"

	// Register connector implementations.
	_ "github.com/crimson-sun/aurora/internal/connector/dump"
	_ "github.com/crimson-sun/aurora/internal/connector/memberapi"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Log.Level, cfg.Log.JSON)

	if cfg.LLM.APIKey == "" {
		logrus.Fatal("AURORA_OPENAI_API_KEY or OPENAI_API_KEY must be set")
	}

	llmOpts := []llm.Option{llm.WithModels(cfg.LLM.EmbedModel, cfg.LLM.ChatModel)}
	if cfg.LLM.BaseURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(cfg.LLM.BaseURL))
	}
	client := llm.New(cfg.LLM.APIKey, llmOpts...)

	ctor, err := connector.Get(cfg.Source.Provider)
	if err != nil {
		logrus.Fatalf("failed to get connector: %v", err)
	}
	srcCfg := connector.Config{
		Provider: cfg.Source.Provider,
		Endpoint: cfg.Source.Endpoint,
		Token:    cfg.Source.Token,
		Path:     cfg.Source.DumpPath,
	}

	eng := engine.New(ctor(), srcCfg,
		ranker.New(client),
		projector.New(redactor.New()),
		synth.New(client))

	srv := server.New(eng, server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Handler()}

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logrus.WithField("signal", sig.String()).Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("shutdown did not complete cleanly")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":   cfg.Server.Addr,
		"source": cfg.Source.Provider,
	}).Info("aurora listening")

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server error: %v", err)
	}
}
