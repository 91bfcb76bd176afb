package llm

import (
	"context"
	"time"
)

// GenerateRequest carries everything a provider needs to ask for one
// digest worth of news.
type GenerateRequest struct {
	Now              time.Time
	Language         string
	CountPerCategory int
	ExcludeTitles    []string
}

// NewsItem mirrors the JSON shape the prompt instructs the model to emit.
type NewsItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// Generator returns the raw model response for one digest request.
// Callers run ExtractNews on the result afterwards; the raw text stays
// available for diagnostics.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Name() string
}
