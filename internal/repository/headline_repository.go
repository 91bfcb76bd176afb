package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/natefinch/atomic"
)

const maxHeadlines = 50

// HeadlineRepository keeps the titles of previously reported stories so
// the generator can be told what not to repeat. The backing file is a
// flat JSON array, oldest first, capped at maxHeadlines.
type HeadlineRepository struct {
	path string

	mu     sync.Mutex
	titles []string
	loaded bool
}

func NewHeadlineRepository(path string) *HeadlineRepository {
	return &HeadlineRepository{path: path}
}

// Load returns the known titles, oldest first. A missing history file is
// an empty history. An unreadable or corrupt one is treated as empty
// too, with the cause returned so the caller can log it; the repository
// stays usable either way.
func (r *HeadlineRepository) Load() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.ensureLoaded()

	out := make([]string, len(r.titles))
	copy(out, r.titles)
	return out, err
}

// Append adds titles to the history, evicts the oldest entries beyond
// maxHeadlines and rewrites the whole file in one atomic replace. On a
// write error the in-memory history still holds the new titles; durable
// state catches up on the next successful append.
func (r *HeadlineRepository) Append(titles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A corrupt file is replaced by the fresh state below.
	_ = r.ensureLoaded()

	r.titles = append(r.titles, titles...)
	if len(r.titles) > maxHeadlines {
		r.titles = r.titles[len(r.titles)-maxHeadlines:]
	}

	return r.persist()
}

func (r *HeadlineRepository) ensureLoaded() error {
	if r.loaded {
		return nil
	}
	r.loaded = true

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read headline history: %w", err)
	}

	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		return fmt.Errorf("parse headline history: %w", err)
	}

	r.titles = titles
	return nil
}

func (r *HeadlineRepository) persist() error {
	data, err := json.MarshalIndent(r.titles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode headline history: %w", err)
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write headline history: %w", err)
	}

	return nil
}
