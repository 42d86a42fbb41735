package imaging

import (
	"context"
	"sync"

	"github.com/jonathan/review-writer/internal/observability"
	"github.com/jonathan/review-writer/internal/types"
	"go.uber.org/zap"
)

// DefaultConcurrency is the maximum number of render calls in flight.
// Concurrency may lower it but never raise it.
const DefaultConcurrency = 2

// Stage renders prompts with a fixed pool of workers.
type Stage struct {
	Renderer    Renderer
	Concurrency int
	Logger      *zap.Logger
	Metrics     *observability.Metrics
}

// NewStage creates a Stage. A nil renderer disables rendering.
func NewStage(r Renderer, logger *zap.Logger, metrics *observability.Metrics) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{Renderer: r, Concurrency: DefaultConcurrency, Logger: logger, Metrics: metrics}
}

// Enabled reports whether a renderer is configured.
func (s *Stage) Enabled() bool {
	return s != nil && s.Renderer != nil
}

type outcome struct {
	url string
	err error
}

// Run renders every prompt and returns one image per successful render in
// prompt order, plus the errors of the failed ones. A failure only drops its
// own image. Zero prompts or a disabled stage make no calls.
func (s *Stage) Run(ctx context.Context, prompts []string) ([]types.GeneratedImage, []error) {
	if !s.Enabled() || len(prompts) == 0 {
		return nil, nil
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := s.Concurrency
	if workers <= 0 || workers > DefaultConcurrency {
		workers = DefaultConcurrency
	}
	if workers > len(prompts) {
		workers = len(prompts)
	}

	jobs := make(chan int)
	outcomes := make([]outcome, len(prompts))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes[i] = outcome{err: &RenderError{Prompt: prompts[i], Message: "canceled", Cause: err}}
					continue
				}
				url, err := s.Renderer.Render(ctx, prompts[i])
				outcomes[i] = outcome{url: url, err: err}
			}
		}()
	}

	for i := range prompts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	images := make([]types.GeneratedImage, 0, len(prompts))
	var errs []error
	for i, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
			s.Metrics.ObserveImage(false)
			logger.Warn("image render failed", zap.Int("prompt_index", i), zap.Error(o.err))
			continue
		}
		s.Metrics.ObserveImage(true)
		images = append(images, types.GeneratedImage{ImageURL: o.url, Prompt: prompts[i]})
	}
	return images, errs
}
