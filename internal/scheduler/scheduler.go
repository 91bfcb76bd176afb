package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers the digest cycle on wall-clock minute boundaries.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entryID cron.EntryID
}

// New creates a Scheduler using the local timezone.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Every schedules task at every wall-clock multiple of the given number
// of minutes ("*/N" cron semantics: no jitter, no catch-up for missed
// ticks). A previous schedule is replaced.
func (s *Scheduler) Every(minutes int, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if minutes < 1 || minutes > 59 {
		return fmt.Errorf("invalid interval %d: minutes must be 1-59", minutes)
	}

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	expr := fmt.Sprintf("*/%d * * * *", minutes)
	entryID, err := s.cron.AddFunc(expr, task)
	if err != nil {
		return fmt.Errorf("adding cron entry: %w", err)
	}

	s.entryID = entryID
	slog.Info("digest scheduled", "interval_minutes", minutes, "cron", expr)
	return nil
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Next reports when the scheduled task fires next. The zero time before
// Every and Start have both been called.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}
