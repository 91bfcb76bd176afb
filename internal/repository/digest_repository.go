package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"newsjolt/internal/model"

	"github.com/natefinch/atomic"
)

const maxDigestItems = 20

// DigestRepository keeps the most recently mailed news items for the
// dashboard. Same file contract as the headline history: a flat JSON
// array, oldest first, capped at maxDigestItems, replaced atomically on
// every write.
type DigestRepository struct {
	path string

	mu     sync.Mutex
	items  []model.NewsItem
	loaded bool
}

func NewDigestRepository(path string) *DigestRepository {
	return &DigestRepository{path: path}
}

func (r *DigestRepository) Load() ([]model.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.ensureLoaded()

	out := make([]model.NewsItem, len(r.items))
	copy(out, r.items)
	return out, err
}

func (r *DigestRepository) Append(items []model.NewsItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.ensureLoaded()

	r.items = append(r.items, items...)
	if len(r.items) > maxDigestItems {
		r.items = r.items[len(r.items)-maxDigestItems:]
	}

	return r.persist()
}

func (r *DigestRepository) ensureLoaded() error {
	if r.loaded {
		return nil
	}
	r.loaded = true

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read digest history: %w", err)
	}

	var items []model.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parse digest history: %w", err)
	}

	r.items = items
	return nil
}

func (r *DigestRepository) persist() error {
	data, err := json.MarshalIndent(r.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode digest history: %w", err)
	}

	if err := atomic.WriteFile(r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write digest history: %w", err)
	}

	return nil
}
