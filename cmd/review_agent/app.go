package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/review-writer/internal/config"
	"github.com/jonathan/review-writer/internal/drafting"
	"github.com/jonathan/review-writer/internal/fetch"
	"github.com/jonathan/review-writer/internal/imaging"
	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/observability"
	"github.com/jonathan/review-writer/internal/pipeline"
	"github.com/jonathan/review-writer/internal/product"
	"github.com/jonathan/review-writer/internal/spellcheck"
)

// buildOrchestrator wires every stage from cfg. The returned close function
// releases the model client.
func buildOrchestrator(ctx context.Context, cfg *config.Config, log *zap.Logger, metrics *observability.Metrics) (*pipeline.Orchestrator, func(), error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		return nil, nil, fmt.Errorf("no API key for provider %q: set GEMINI_API_KEY or OPENAI_API_KEY", cfg.Provider())
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var browser fetch.Renderer
	if cfg.UseBrowser {
		browser = fetch.NewBrowserRenderer(log)
	}
	collector := product.NewHTTPCollector(fetch.DefaultOptions(), browser, log)

	images, err := buildImageStage(cfg, log, metrics)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	orch := pipeline.New(
		collector,
		drafting.NewDrafter(client),
		spellcheck.NewStage(spellcheck.NewLLMCorrector(client)),
		images,
		log,
		metrics,
	)
	return orch, func() { _ = client.Close() }, nil
}

// buildImageStage returns a disabled stage when no image key is configured.
func buildImageStage(cfg *config.Config, log *zap.Logger, metrics *observability.Metrics) (*imaging.Stage, error) {
	if !cfg.ImagesEnabled() {
		log.Info("image rendering disabled: no image API key configured")
		return imaging.NewStage(nil, log, metrics), nil
	}

	renderer, err := imaging.NewOpenAIRenderer(cfg.ImageKey(), cfg.ImageBaseURL, cfg.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create image renderer: %w", err)
	}
	stage := imaging.NewStage(renderer, log, metrics)
	if cfg.ImageConcurrency > 0 {
		stage.Concurrency = cfg.ImageConcurrency
	}
	return stage, nil
}
