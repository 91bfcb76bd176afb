package digest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"newsjolt/internal/activity"
	"newsjolt/internal/model"
	"newsjolt/pkg/llm"

	"github.com/go-playground/assert/v2"
)

type fakeGenerator struct {
	response string
	err      error
	block    chan struct{}
	lastReq  llm.GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	f.lastReq = req
	if f.block != nil {
		<-f.block
	}
	return f.response, f.err
}

func (f *fakeGenerator) Name() string { return "Fake" }

type fakeHeadlineStore struct {
	titles    []string
	loadErr   error
	appended  [][]string
	appendErr error
}

func (f *fakeHeadlineStore) Load() ([]string, error) {
	return f.titles, f.loadErr
}

func (f *fakeHeadlineStore) Append(titles []string) error {
	f.appended = append(f.appended, titles)
	return f.appendErr
}

type fakeDigestStore struct {
	appended [][]model.NewsItem
	err      error
}

func (f *fakeDigestStore) Append(items []model.NewsItem) error {
	f.appended = append(f.appended, items)
	return f.err
}

type fakeMailer struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeMailer) Send(subject, htmlBody string) error {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, htmlBody)
	return f.err
}

const goodAndShockingResponse = `{"news":[
	{"title":"Cure approved","summary":"Decade of trials paid off.","category":"good"},
	{"title":"Grid restored","summary":"Power back in every region.","category":"good"},
	{"title":"Dam breach","summary":"Valley flooded within hours.","category":"shocking"}
]}`

func newTestRunner(gen Generator, headlines HeadlineStore, digests DigestStore, mailer Dispatcher) (*Runner, *activity.Log) {
	log := activity.NewLog(slog.Default())
	cfg := Config{
		Language:         "English",
		CountPerCategory: 3,
		Interval:         10 * time.Minute,
		GenerateTimeout:  time.Second,
	}
	return NewRunner(gen, headlines, digests, mailer, log, cfg), log
}

func hasEntry(snap activity.Snapshot, fragment string) bool {
	for _, e := range snap.Entries {
		if strings.Contains(e.Message, fragment) {
			return true
		}
	}
	return false
}

func TestRunner_SuccessfulCycle(t *testing.T) {
	gen := &fakeGenerator{response: goodAndShockingResponse}
	headlines := &fakeHeadlineStore{}
	digests := &fakeDigestStore{}
	mailer := &fakeMailer{}

	r, log := newTestRunner(gen, headlines, digests, mailer)
	r.Run(context.Background())

	assert.Equal(t, 1, len(mailer.subjects))
	assert.Equal(t, 1, len(headlines.appended))
	assert.Equal(t, []string{"Cure approved", "Grid restored", "Dam breach"}, headlines.appended[0])

	assert.Equal(t, 1, len(digests.appended))
	assert.Equal(t, 3, len(digests.appended[0]))
	assert.Equal(t, model.CategoryGood, digests.appended[0][0].Category)
	assert.Equal(t, model.CategoryShocking, digests.appended[0][2].Category)

	snap := log.Snapshot()
	assert.Equal(t, gen.response, snap.Generation)
	if snap.NextRun == nil {
		t.Fatal("next run not scheduled after a successful cycle")
	}
}

func TestRunner_GeneratorFailureLeavesHistoriesAlone(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("api unreachable")}
	headlines := &fakeHeadlineStore{}
	digests := &fakeDigestStore{}
	mailer := &fakeMailer{}

	r, log := newTestRunner(gen, headlines, digests, mailer)
	r.Run(context.Background())

	assert.Equal(t, 0, len(mailer.subjects))
	assert.Equal(t, 0, len(headlines.appended))
	assert.Equal(t, 0, len(digests.appended))

	snap := log.Snapshot()
	assert.Equal(t, "", snap.Generation)
	assert.Equal(t, true, hasEntry(snap, "news generation failed"))
	if snap.NextRun == nil {
		t.Fatal("next run must be scheduled even after a failed cycle")
	}
}

func TestRunner_UnparseableResponseSkipsCycle(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot help with that."}
	headlines := &fakeHeadlineStore{}
	digests := &fakeDigestStore{}
	mailer := &fakeMailer{}

	r, log := newTestRunner(gen, headlines, digests, mailer)
	r.Run(context.Background())

	assert.Equal(t, 0, len(mailer.subjects))
	assert.Equal(t, 0, len(headlines.appended))
	assert.Equal(t, 0, len(digests.appended))

	snap := log.Snapshot()
	// The raw response stays visible for diagnosis.
	assert.Equal(t, "I cannot help with that.", snap.Generation)
	assert.Equal(t, true, hasEntry(snap, "no usable news"))
}

func TestRunner_EmptyNewsListSendsNothing(t *testing.T) {
	gen := &fakeGenerator{response: `{"news": []}`}
	headlines := &fakeHeadlineStore{}
	digests := &fakeDigestStore{}
	mailer := &fakeMailer{}

	r, _ := newTestRunner(gen, headlines, digests, mailer)
	r.Run(context.Background())

	assert.Equal(t, 0, len(mailer.subjects))
	assert.Equal(t, 0, len(headlines.appended))
	assert.Equal(t, 0, len(digests.appended))
}

func TestRunner_MailFailureStillPersists(t *testing.T) {
	gen := &fakeGenerator{response: goodAndShockingResponse}
	headlines := &fakeHeadlineStore{}
	digests := &fakeDigestStore{}
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}

	r, log := newTestRunner(gen, headlines, digests, mailer)
	r.Run(context.Background())

	assert.Equal(t, 1, len(headlines.appended))
	assert.Equal(t, 1, len(digests.appended))
	assert.Equal(t, true, hasEntry(log.Snapshot(), "mail dispatch failed"))
}

func TestRunner_PassesHistoryAsExclusions(t *testing.T) {
	gen := &fakeGenerator{response: goodAndShockingResponse}
	headlines := &fakeHeadlineStore{titles: []string{"Old story", "Older story"}}

	r, _ := newTestRunner(gen, headlines, &fakeDigestStore{}, &fakeMailer{})
	r.Run(context.Background())

	assert.Equal(t, []string{"Old story", "Older story"}, gen.lastReq.ExcludeTitles)
	assert.Equal(t, 3, gen.lastReq.CountPerCategory)
	assert.Equal(t, "English", gen.lastReq.Language)
}

func TestRunner_HeadlineLoadErrorDoesNotBlockCycle(t *testing.T) {
	gen := &fakeGenerator{response: goodAndShockingResponse}
	headlines := &fakeHeadlineStore{loadErr: errors.New("disk gone")}
	mailer := &fakeMailer{}

	r, log := newTestRunner(gen, headlines, &fakeDigestStore{}, mailer)
	r.Run(context.Background())

	assert.Equal(t, 1, len(mailer.subjects))
	assert.Equal(t, true, hasEntry(log.Snapshot(), "headline history unreadable"))
}

func TestRunner_OverlappingTickDropped(t *testing.T) {
	gen := &fakeGenerator{response: goodAndShockingResponse, block: make(chan struct{})}
	mailer := &fakeMailer{}

	r, log := newTestRunner(gen, &fakeHeadlineStore{}, &fakeDigestStore{}, mailer)

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for !r.running.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !r.running.Load() {
		t.Fatal("first cycle never started")
	}

	// Second tick while the first cycle is blocked in the generator.
	r.Run(context.Background())

	close(gen.block)
	<-done

	assert.Equal(t, 1, len(mailer.subjects))
	assert.Equal(t, true, hasEntry(log.Snapshot(), "skipping this tick"))
}
