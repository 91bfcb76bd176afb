package digest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"newsjolt/internal/activity"
	"newsjolt/internal/model"
	"newsjolt/pkg/llm"
)

// Generator produces the raw model response for one digest request.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (string, error)
	Name() string
}

// HeadlineStore remembers which titles were already reported.
type HeadlineStore interface {
	Load() ([]string, error)
	Append(titles []string) error
}

// DigestStore keeps the recently mailed items.
type DigestStore interface {
	Append(items []model.NewsItem) error
}

// Dispatcher delivers one rendered digest.
type Dispatcher interface {
	Send(subject, htmlBody string) error
}

// Config holds the per-cycle knobs.
type Config struct {
	Language         string
	CountPerCategory int
	Interval         time.Duration
	GenerateTimeout  time.Duration
}

// Runner walks one complete digest cycle: ask the generator for news,
// extract the items, render and mail the digest, persist the histories.
// Failures never escape a cycle; every outcome ends with the next run
// announced on the activity log.
type Runner struct {
	generator Generator
	headlines HeadlineStore
	digests   DigestStore
	mailer    Dispatcher
	activity  *activity.Log
	config    Config

	running atomic.Bool
}

func NewRunner(generator Generator, headlines HeadlineStore, digests DigestStore, mailer Dispatcher, log *activity.Log, cfg Config) *Runner {
	return &Runner{
		generator: generator,
		headlines: headlines,
		digests:   digests,
		mailer:    mailer,
		activity:  log,
		config:    cfg,
	}
}

// Run executes one digest cycle. At most one cycle is in flight at a
// time; a tick that arrives while the previous cycle is still running
// is dropped, never queued.
func (r *Runner) Run(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		r.activity.Warnf("previous digest cycle still running, skipping this tick")
		return
	}
	defer r.running.Store(false)

	defer func() {
		r.activity.SetNextRun(time.Now().Add(r.config.Interval))
	}()

	r.activity.Infof("digest cycle starting")

	exclude, err := r.headlines.Load()
	if err != nil {
		r.activity.Warnf("headline history unreadable, continuing without it: %v", err)
	}

	r.activity.SetGeneration(fmt.Sprintf("waiting for %s...", r.generator.Name()))

	genCtx, cancel := context.WithTimeout(ctx, r.config.GenerateTimeout)
	defer cancel()

	raw, err := r.generator.Generate(genCtx, llm.GenerateRequest{
		Now:              time.Now(),
		Language:         r.config.Language,
		CountPerCategory: r.config.CountPerCategory,
		ExcludeTitles:    exclude,
	})
	if err != nil {
		r.activity.SetGeneration("")
		r.activity.Errorf("news generation failed: %v", err)
		return
	}

	// The raw response stays visible on the dashboard even when
	// extraction fails below.
	r.activity.SetGeneration(raw)

	extracted, err := llm.ExtractNews(raw)
	if err != nil {
		r.activity.Warnf("no usable news in model response: %v", err)
		return
	}
	if len(extracted) == 0 {
		r.activity.Infof("model returned an empty news list, nothing to send")
		return
	}

	items := make([]model.NewsItem, len(extracted))
	for i, e := range extracted {
		items[i] = model.NewsItem{
			Title:    e.Title,
			Summary:  e.Summary,
			Category: model.Category(e.Category),
		}
	}

	doc, err := Render(items, time.Now())
	if err != nil {
		r.activity.Errorf("digest rendering failed: %v", err)
	} else if err := r.mailer.Send(doc.Subject, doc.HTML); err != nil {
		r.activity.Errorf("mail dispatch failed: %v", err)
	} else {
		r.activity.Infof("digest with %d stories sent", len(items))
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	if err := r.headlines.Append(titles); err != nil {
		r.activity.Errorf("saving headline history failed: %v", err)
	}
	if err := r.digests.Append(items); err != nil {
		r.activity.Errorf("saving digest history failed: %v", err)
	}

	r.activity.Infof("digest cycle complete")
}
