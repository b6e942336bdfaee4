// Package engine hosts concurrently running matches. Each match gets one
// worker goroutine owning all of its mutable state; callers talk to it over
// a command channel, so transitions within a match are strictly serialized
// while independent matches proceed in parallel.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shamavibe/shama/internal/apperrors"
	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/game/match"
	"github.com/shamavibe/shama/internal/game/rule"
	"github.com/shamavibe/shama/internal/game/trump"
	"github.com/shamavibe/shama/internal/records"
)

// FallbackPolicy names the action taken when the acting seat misses the
// per-turn deadline.
type FallbackPolicy string

const (
	// FallbackAutoPlay plays the seat's lowest legal card.
	FallbackAutoPlay FallbackPolicy = "autoplay"
	// FallbackPause suspends the turn timer until the seat reconnects.
	FallbackPause FallbackPolicy = "pause"
	// FallbackForfeit ends the match with the absent seat's team losing.
	FallbackForfeit FallbackPolicy = "forfeit"
)

// PlayerInfo identifies a participant.
type PlayerInfo struct {
	ID   string
	Name string
}

// Config controls engine-wide defaults.
type Config struct {
	// TurnTimeout bounds how long a seat may hold the turn. Zero disables
	// the timer entirely (useful in tests and local play).
	TurnTimeout time.Duration
	Fallback    FallbackPolicy

	Selector trump.Selector
	Rules    rule.Options

	// Sink receives record emissions; defaults to records.NopSink.
	Sink records.Sink

	// Seed produces match seeds; defaults to the wall clock.
	Seed func() int64
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Fallback == "" {
		out.Fallback = FallbackAutoPlay
	}
	if out.Selector == nil {
		out.Selector = trump.NewShamaHolderSelector(0)
	}
	if out.Sink == nil {
		out.Sink = records.NopSink{}
	}
	if out.Seed == nil {
		out.Seed = func() int64 { return time.Now().UnixNano() }
	}
	return out
}

// Engine is the match registry and the only entry point for external
// collaborators: create a match, submit cards, read snapshots.
type Engine struct {
	cfg Config

	mu      sync.RWMutex
	workers map[uuid.UUID]*worker
	closed  bool

	wg sync.WaitGroup
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg.withDefaults(),
		workers: make(map[uuid.UUID]*worker),
	}
}

// CreateMatch registers a new match between the four players, starts its
// worker and deals the first game. Seats follow slice order; seats 0/2 are
// one team, 1/3 the other.
func (e *Engine) CreateMatch(players [4]PlayerInfo) (uuid.UUID, error) {
	var ids [4]string
	for i, p := range players {
		ids[i] = p.ID
	}

	id := uuid.New()
	m := match.New(ids, e.cfg.Seed(), e.cfg.Selector, e.cfg.Rules)
	w := newWorker(id, m, e.cfg)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return uuid.Nil, apperrors.ErrMatchAborted
	}
	e.workers[id] = w
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		w.run()
		e.mu.Lock()
		delete(e.workers, id)
		e.mu.Unlock()
	}()

	return id, nil
}

func (e *Engine) worker(id uuid.UUID) (*worker, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	w, ok := e.workers[id]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	return w, nil
}

// SubmitCard applies one card play for the given match and seat.
func (e *Engine) SubmitCard(ctx context.Context, id uuid.UUID, seat match.Seat, c card.Card) (match.TurnOutcome, error) {
	w, err := e.worker(id)
	if err != nil {
		return match.TurnOutcome{}, err
	}
	return w.submit(ctx, seat, c)
}

// State returns a read-only snapshot of the match.
func (e *Engine) State(ctx context.Context, id uuid.UUID) (match.Snapshot, error) {
	w, err := e.worker(id)
	if err != nil {
		return match.Snapshot{}, err
	}
	return w.state(ctx)
}

// SetSeatConnected reports a transport-level connect/disconnect for a seat.
// Under the pause fallback a disconnect of the acting seat suspends the
// turn timer until the seat returns.
func (e *Engine) SetSeatConnected(ctx context.Context, id uuid.UUID, seat match.Seat, connected bool) error {
	w, err := e.worker(id)
	if err != nil {
		return err
	}
	return w.setConnected(ctx, seat, connected)
}

// CloseMatch stops a match's worker. In-flight commands finish first.
func (e *Engine) CloseMatch(id uuid.UUID) error {
	w, err := e.worker(id)
	if err != nil {
		return err
	}
	w.close()
	return nil
}

// Shutdown stops all workers and waits for them to drain, or until ctx
// expires.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	workers := make([]*worker, 0, len(e.workers))
	for _, w := range e.workers {
		workers = append(workers, w)
	}
	e.mu.Unlock()

	for _, w := range workers {
		w.close()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
