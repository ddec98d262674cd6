package session

import (
	"context"
	"crypto/rand"
	"sync"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
)

// Enricher turns raw text into lexical entries.
type Enricher interface {
	Enrich(ctx context.Context, text string) ([]lexical.Entry, error)
}

// Controller owns one session's State and runs submissions against an Enricher.
type Controller struct {
	enricher Enricher
	log      *zap.Logger

	mu      sync.Mutex
	state   State
	seq     uint64
	entropy *ulid.MonotonicEntropy

	inflight sync.WaitGroup
}

// NewController creates a controller in the Idle state.
func NewController(e Enricher, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		enricher: e,
		log:      log,
		state:    State{Entries: []lexical.Entry{}},
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Submit starts an enrichment of text and returns immediately. The outcome
// lands in Entries/Error once the enricher returns. A newer Submit or Reset
// makes the outcome of this one stale. ctx must outlive the request.
func (c *Controller) Submit(ctx context.Context, text string) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	id := ulid.MustNew(ulid.Now(), c.entropy).String()
	c.state = Reduce(c.state, Event{Kind: EventSubmitted, Seq: seq, RequestID: id})
	c.inflight.Add(1)
	c.mu.Unlock()

	c.log.Info("submission started",
		zap.String("request_id", id),
		zap.Uint64("seq", seq),
		zap.Int("chars", utf8.RuneCountInString(text)),
	)

	go func() {
		defer c.inflight.Done()
		entries, err := c.enricher.Enrich(ctx, text)
		if err != nil {
			c.apply(Event{Kind: EventFailed, Seq: seq, RequestID: id, Err: err})
			return
		}
		c.apply(Event{Kind: EventSucceeded, Seq: seq, RequestID: id, Entries: entries})
	}()
}

func (c *Controller) apply(ev Event) {
	c.mu.Lock()
	stale := ev.Seq != c.state.Seq
	c.state = Reduce(c.state, ev)
	c.mu.Unlock()

	fields := []zap.Field{zap.String("request_id", ev.RequestID), zap.Uint64("seq", ev.Seq)}
	switch {
	case stale:
		c.log.Debug("discarding stale result", fields...)
	case ev.Kind == EventFailed:
		c.log.Warn("submission failed", append(fields, zap.Error(ev.Err))...)
	default:
		c.log.Info("submission succeeded", append(fields, zap.Int("entries", len(ev.Entries)))...)
	}
}

// Reset clears entries and error and invalidates any in-flight submission.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = Reduce(c.state, Event{Kind: EventReset, Seq: c.seq})
}

// Wait blocks until every started submission has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Entries = append([]lexical.Entry{}, c.state.Entries...)
	return s
}

// Entries returns the current result list; empty before the first success.
func (c *Controller) Entries() []lexical.Entry {
	return c.Snapshot().Entries
}

// Error returns the current user-facing error message, or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Err
}
