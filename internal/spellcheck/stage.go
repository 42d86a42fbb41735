package spellcheck

import (
	"context"
	"errors"

	"github.com/jonathan/review-writer/internal/types"
	"golang.org/x/sync/errgroup"
)

// Task names, in the order their adjustments are reported.
const (
	TaskSections        = "sections"
	TaskFAQs            = "faqs"
	TaskTitle           = "title"
	TaskMetaDescription = "metaDescription"
	TaskExcerpt         = "excerpt"
	TaskCallToAction    = "callToAction"
)

// Result is the corrected article and the ordered list of adjustments.
type Result struct {
	Article     types.CorrectedArticle
	Adjustments []string
}

// Stage runs the six correction tasks of an article concurrently.
type Stage struct {
	Corrector Corrector
}

// NewStage creates a Stage.
func NewStage(c Corrector) *Stage {
	return &Stage{Corrector: c}
}

type task struct {
	name        string
	blocks      []string
	corrected   []string
	adjustments []string
}

// Run corrects section bodies, FAQs, title, meta description, excerpt and
// call-to-action. Tasks run concurrently but adjustments are always reported
// in that order. Any failed task fails the whole stage.
func (s *Stage) Run(ctx context.Context, draft *types.DraftArticle, language string) (*Result, error) {
	if s.Corrector == nil {
		return nil, &CorrectionError{Message: "no corrector configured"}
	}

	bodies := make([]string, len(draft.Sections))
	for i, sec := range draft.Sections {
		bodies[i] = sec.Body
	}
	faqs := make([]string, len(draft.FAQs))
	for i, faq := range draft.FAQs {
		faqs[i] = JoinFAQ(faq)
	}

	tasks := []*task{
		{name: TaskSections, blocks: bodies},
		{name: TaskFAQs, blocks: faqs},
		{name: TaskTitle, blocks: []string{draft.Title}},
		{name: TaskMetaDescription, blocks: []string{draft.MetaDescription}},
		{name: TaskExcerpt, blocks: []string{draft.Excerpt}},
		{name: TaskCallToAction, blocks: []string{draft.CallToAction}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			corrected, adjustments, err := CorrectBlocks(gctx, s.Corrector, t.blocks, language)
			if err != nil {
				var cErr *CorrectionError
				if errors.As(err, &cErr) && cErr.Task == "" {
					tagged := *cErr
					tagged.Task = t.name
					return &tagged
				}
				return &CorrectionError{Task: t.name, Message: "correction failed", Cause: err}
			}
			t.corrected, t.adjustments = corrected, adjustments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	article := *draft
	article.Sections = make([]types.Section, len(draft.Sections))
	for i, sec := range draft.Sections {
		article.Sections[i] = types.Section{Heading: sec.Heading, Body: tasks[0].corrected[i]}
	}
	article.FAQs = make([]types.Section, len(draft.FAQs))
	for i, faq := range draft.FAQs {
		article.FAQs[i] = SplitFAQ(tasks[1].corrected[i], faq)
	}
	article.Title = tasks[2].corrected[0]
	article.MetaDescription = tasks[3].corrected[0]
	article.Excerpt = tasks[4].corrected[0]
	article.CallToAction = tasks[5].corrected[0]

	adjustments := []string{}
	for _, t := range tasks {
		adjustments = append(adjustments, t.adjustments...)
	}

	return &Result{Article: article, Adjustments: adjustments}, nil
}
