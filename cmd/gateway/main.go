package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	api "github.com/checkdaily/checkdaily/internal/api/http"
	"github.com/checkdaily/checkdaily/internal/config"
	"github.com/checkdaily/checkdaily/internal/grading"
	"github.com/checkdaily/checkdaily/internal/provider"
	"github.com/checkdaily/checkdaily/internal/scenario"
)

func main() {
	cfg := config.FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := scenario.Load(cfg.ScenarioFile)
	if err != nil {
		logger.Fatal("scenario catalog", zap.Error(err))
	}

	var grader *grading.LLMGrader
	if cfg.OpenAIAPIKey != "" {
		p := provider.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)
		grader = &grading.LLMGrader{Provider: p, Model: cfg.OpenAIModel}
	}
	engine := grading.NewEngine(cat, grader, logger)

	r := api.NewRouter(engine, cat, cfg.CORSOrigins, logger)

	logger.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("llm_grader", grader != nil),
		zap.String("model", cfg.OpenAIModel))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
