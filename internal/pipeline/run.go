// Package pipeline orchestrates a review generation run: product collection
// and affiliate links in parallel, then drafting, spellchecking, optional
// image rendering and response assembly.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/review-writer/internal/affiliate"
	"github.com/jonathan/review-writer/internal/drafting"
	"github.com/jonathan/review-writer/internal/observability"
	"github.com/jonathan/review-writer/internal/product"
	"github.com/jonathan/review-writer/internal/spellcheck"
	"github.com/jonathan/review-writer/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Drafter produces a draft article.
type Drafter interface {
	Draft(ctx context.Context, instr drafting.Instructions, snapshot *types.ProductSnapshot) (*types.DraftArticle, error)
}

// Spellchecker corrects a draft.
type Spellchecker interface {
	Run(ctx context.Context, draft *types.DraftArticle, language string) (*spellcheck.Result, error)
}

// ImageStage renders image prompts on a best-effort basis.
type ImageStage interface {
	Enabled() bool
	Run(ctx context.Context, prompts []string) ([]types.GeneratedImage, []error)
}

// Orchestrator runs generation requests. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	Collector  product.Collector
	Drafter    Drafter
	Spellcheck Spellchecker
	// Images may be nil; rendering is then skipped.
	Images    ImageStage
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// New creates an Orchestrator with a request validator and a no-op logger
// when none is given.
func New(collector product.Collector, drafter Drafter, checker Spellchecker, images ImageStage, logger *zap.Logger, metrics *observability.Metrics) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Collector:  collector,
		Drafter:    drafter,
		Spellcheck: checker,
		Images:     images,
		Validator:  types.NewValidator(),
		Logger:     logger,
		Metrics:    metrics,
	}
}

// Generate runs one request to completion.
func (o *Orchestrator) Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResponse, error) {
	return o.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress is Generate with a progress callback. A fatal stage
// aborts the run and returns a *StageError; no partial response is returned.
func (o *Orchestrator) GenerateWithProgress(ctx context.Context, req *types.GenerationRequest, onProgress ProgressCallback) (*types.GenerationResponse, error) {
	run := &runState{
		o:          o,
		runID:      uuid.NewString(),
		onProgress: onProgress,
	}
	run.log = o.logger().With(zap.String("run_id", run.runID))

	resp, err := run.execute(ctx, req)
	if err != nil {
		o.Metrics.ObserveGeneration("failed")
		if stage, ok := FailedStage(err); ok {
			o.Metrics.ObserveStageFailure(string(stage))
		}
		run.log.Warn("generation failed", zap.Error(err))
		return nil, err
	}

	o.Metrics.ObserveGeneration("success")
	run.emit(StageDone, "Generation complete", nil)
	return resp, nil
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

type runState struct {
	o          *Orchestrator
	runID      string
	log        *zap.Logger
	onProgress ProgressCallback
}

func (r *runState) emit(stage Stage, message string, content any) {
	r.log.Debug(message, zap.String("stage", string(stage)))
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Stage: stage, Message: message, RunID: r.runID, Content: content})
	}
}

// timed runs fn and records its duration; errors become StageErrors.
func (r *runState) timed(stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	r.o.Metrics.ObserveStage(string(stage), time.Since(start))
	if err != nil {
		return &StageError{Stage: stage, Cause: err}
	}
	return nil
}

func (r *runState) execute(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResponse, error) {
	o := r.o
	if req == nil {
		return nil, &StageError{Stage: StageValidating, Cause: fmt.Errorf("request is required")}
	}

	r.emit(StageValidating, "Validating request", nil)
	v := o.Validator
	if v == nil {
		v = types.NewValidator()
	}
	if err := types.ValidateWith(v, req); err != nil {
		return nil, &StageError{Stage: StageValidating, Cause: err}
	}

	r.emit(StageCollecting, fmt.Sprintf("Collecting product from %s", req.ProductURL), nil)
	var snapshot *types.ProductSnapshot
	var links types.AffiliateLinkMap

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.timed(StageCollecting, func() error {
			var err error
			snapshot, err = o.Collector.Fetch(gctx, req.ProductURL)
			if err == nil && snapshot == nil {
				return ErrNoResult
			}
			return err
		})
	})
	g.Go(func() error {
		var err error
		links, err = affiliate.BuildLinks(req.Affiliates, req.ProductURL)
		if err != nil {
			return &StageError{Stage: StageAffiliateLinks, Cause: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.emit(StageCollecting, fmt.Sprintf("Collected %q with %d affiliate links", snapshot.Title, len(links)), snapshot)

	r.emit(StageDrafting, "Drafting article", nil)
	var draft *types.DraftArticle
	if err := r.timed(StageDrafting, func() error {
		var err error
		draft, err = o.Drafter.Draft(ctx, drafting.InstructionsFromRequest(req, links), snapshot)
		if err == nil && draft == nil {
			return ErrNoResult
		}
		return err
	}); err != nil {
		return nil, err
	}
	r.emit(StageDrafting, fmt.Sprintf("Drafted %d sections and %d FAQs", len(draft.Sections), len(draft.FAQs)), nil)

	r.emit(StageSpellchecking, "Spellchecking article", nil)
	var checked *spellcheck.Result
	if err := r.timed(StageSpellchecking, func() error {
		var err error
		checked, err = o.Spellcheck.Run(ctx, draft, req.Language)
		if err == nil && checked == nil {
			return ErrNoResult
		}
		return err
	}); err != nil {
		return nil, err
	}
	r.emit(StageSpellchecking, fmt.Sprintf("Applied %d spelling adjustments", len(checked.Adjustments)), nil)

	images := r.render(ctx, req, draft.ImagePrompts)

	r.emit(StageAssembling, "Assembling response", nil)
	return Assemble(req, snapshot, checked, images), nil
}

// render never fails the run; errors are logged and the failed images dropped.
func (r *runState) render(ctx context.Context, req *types.GenerationRequest, prompts []string) []types.GeneratedImage {
	images := r.o.Images
	switch {
	case !req.IncludeImages:
		return nil
	case images == nil || !images.Enabled():
		r.log.Info("image rendering not configured, skipping")
		return nil
	case len(prompts) == 0:
		return nil
	}

	r.emit(StageRendering, fmt.Sprintf("Rendering %d images", len(prompts)), nil)
	start := time.Now()
	rendered, errs := images.Run(ctx, prompts)
	r.o.Metrics.ObserveStage(string(StageRendering), time.Since(start))
	if len(errs) > 0 {
		r.log.Warn("some images failed to render",
			zap.Int("failed", len(errs)),
			zap.Int("rendered", len(rendered)),
			zap.Errors("errors", errs))
	}
	r.emit(StageRendering, fmt.Sprintf("Rendered %d of %d images", len(rendered), len(prompts)), nil)
	return rendered
}
