package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"brubeckscan/internal/aggregate"
	"brubeckscan/internal/domain"
	"brubeckscan/internal/fetch"
	"brubeckscan/internal/observability"
)

// Outcome of a completed load cycle.
type Outcome string

const (
	// OutcomePublished means the cycle's record became the displayed record.
	OutcomePublished Outcome = "published"

	// OutcomeSuperseded means a newer submission arrived while the cycle was
	// in flight; its record was discarded.
	OutcomeSuperseded Outcome = "superseded"
)

// Stats counts load cycles since process start.
type Stats struct {
	Started    uint64
	Published  uint64
	Superseded uint64
	Rejected   uint64 // submissions that failed address validation
}

// Service runs validated load cycles and publishes their records through the
// cell. It fans accepted publications out to subscribers.
type Service struct {
	fetcher *fetch.Fetcher
	cell    *Cell
	logger  zerolog.Logger
	now     func() time.Time

	mu        sync.Mutex
	listeners map[int]chan Snapshot
	nextID    int
	stats     Stats
}

// Options configures a Service.
type Options struct {
	Fetcher *fetch.Fetcher
	Logger  zerolog.Logger
	Clock   func() time.Time // defaults to time.Now
}

// New creates a Service with an empty cell.
func New(opts Options) *Service {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		fetcher:   opts.Fetcher,
		cell:      NewCell(),
		logger:    opts.Logger,
		now:       now,
		listeners: make(map[int]chan Snapshot),
	}
}

// Load runs one full cycle for the raw address: validate, fetch all
// categories, aggregate, publish. Validation failures abort before any
// network call. The aggregated record is returned even when a newer
// submission superseded it, so one-shot callers always get their own result.
func (s *Service) Load(ctx context.Context, rawAddress string) (*domain.NodeRecord, Outcome, error) {
	address, err := domain.ParseAddress(rawAddress)
	if err != nil {
		s.mu.Lock()
		s.stats.Rejected++
		s.mu.Unlock()
		observability.RecordValidationFailure(validationReason(err))
		return nil, "", err
	}

	gen := s.cell.Begin()
	s.mu.Lock()
	s.stats.Started++
	s.mu.Unlock()

	start := s.now()
	results := s.fetcher.FetchAll(ctx, address)
	record := aggregate.Aggregate(address, results, s.now())
	elapsed := s.now().Sub(start).Seconds()

	if !s.cell.Publish(gen, record) {
		s.mu.Lock()
		s.stats.Superseded++
		s.mu.Unlock()
		observability.RecordLoadCycle(string(OutcomeSuperseded), elapsed)
		s.logger.Debug().
			Str("address", address.Short()).
			Uint64("generation", gen).
			Msg("load cycle superseded by newer submission")
		return record, OutcomeSuperseded, nil
	}

	s.mu.Lock()
	s.stats.Published++
	s.mu.Unlock()
	observability.RecordLoadCycle(string(OutcomePublished), elapsed)
	observability.RecordPublished(float64(record.FetchedAt.Unix()))
	s.notify(Snapshot{Record: record, Generation: gen})

	s.logger.Info().
		Str("address", address.Short()).
		Uint64("generation", gen).
		Int("failures", len(record.Failures)).
		Msg("record published")

	return record, OutcomePublished, nil
}

// Snapshot returns the currently published record, if any.
func (s *Service) Snapshot() (Snapshot, bool) {
	return s.cell.Snapshot()
}

// State reports whether the newest submission is still loading.
func (s *Service) State() State {
	return s.cell.State()
}

// Stats returns a copy of the cycle counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Subscribe registers a listener for accepted publications. Deliveries are
// non-blocking: a listener whose buffer is full misses that snapshot. The
// returned cancel function is idempotent.
func (s *Service) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; ok {
			delete(s.listeners, id)
			close(ch)
		}
	}
	return ch, cancel
}

// notify fans a snapshot out to all listeners. Sends happen under the same
// mutex as Subscribe's close, so a send on a closed channel is impossible.
func (s *Service) notify(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.listeners {
		select {
		case ch <- snap:
		default:
		}
	}
}

// validationReason labels a validation failure for metrics.
func validationReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyAddress):
		return "empty_address"
	case errors.Is(err, domain.ErrMalformedAddress):
		return "malformed_address"
	default:
		return "invalid"
	}
}
