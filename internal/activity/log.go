package activity

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Entries past this count are evicted oldest-first.
const maxEntries = 100

// Entry is one dashboard log line.
type Entry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a point-in-time copy of the volatile run state.
type Snapshot struct {
	Entries    []Entry
	Generation string
	NextRun    *time.Time
}

// Log is the volatile run state shared between the digest cycle and the
// dashboard: a bounded buffer of recent events, the current generation
// text and the next scheduled run. Nothing here is persisted; a restart
// starts empty. Every entry is mirrored to the process logger so no
// failure is visible only on the dashboard.
type Log struct {
	logger *slog.Logger

	mu         sync.RWMutex
	entries    []Entry
	generation string
	nextRun    *time.Time
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Record(severity Severity, message string) {
	switch severity {
	case SeverityError:
		l.logger.Error(message)
	case SeverityWarn:
		l.logger.Warn(message)
	default:
		l.logger.Info(message)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now(),
	})
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
}

func (l *Log) Infof(format string, args ...any) {
	l.Record(SeverityInfo, fmt.Sprintf(format, args...))
}

func (l *Log) Warnf(format string, args ...any) {
	l.Record(SeverityWarn, fmt.Sprintf(format, args...))
}

func (l *Log) Errorf(format string, args ...any) {
	l.Record(SeverityError, fmt.Sprintf(format, args...))
}

func (l *Log) SetGeneration(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation = text
}

func (l *Log) SetNextRun(t time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextRun = &t
}

// Snapshot copies the current state under the read lock. Callers get
// their own slice; a cycle writing concurrently is never half-visible.
func (l *Log) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)

	var next *time.Time
	if l.nextRun != nil {
		t := *l.nextRun
		next = &t
	}

	return Snapshot{
		Entries:    entries,
		Generation: l.generation,
		NextRun:    next,
	}
}
