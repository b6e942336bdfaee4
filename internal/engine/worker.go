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
	"github.com/shamavibe/shama/internal/logger"
	"github.com/shamavibe/shama/internal/records"
)

type cmdKind int

const (
	cmdSubmit cmdKind = iota
	cmdState
	cmdConnect
)

type command struct {
	kind      cmdKind
	seat      match.Seat
	card      card.Card
	connected bool
	resp      chan response
}

type response struct {
	out  match.TurnOutcome
	snap match.Snapshot
	err  error
}

// worker owns one match. Its goroutine is the only code that ever touches
// the match state; everything arrives over the command channel.
type worker struct {
	id  uuid.UUID
	m   *match.Match
	cfg Config

	cmds chan command
	quit chan struct{}
	once sync.Once

	timer   *time.Timer
	paused  bool
	offline [4]bool

	startedAt time.Time
}

func newWorker(id uuid.UUID, m *match.Match, cfg Config) *worker {
	return &worker{
		id:        id,
		m:         m,
		cfg:       cfg,
		cmds:      make(chan command),
		quit:      make(chan struct{}),
		startedAt: time.Now(),
	}
}

func (w *worker) close() {
	w.once.Do(func() { close(w.quit) })
}

// --- caller side ---

func (w *worker) submit(ctx context.Context, seat match.Seat, c card.Card) (match.TurnOutcome, error) {
	r, err := w.send(ctx, command{kind: cmdSubmit, seat: seat, card: c})
	if err != nil {
		return match.TurnOutcome{}, err
	}
	return r.out, r.err
}

func (w *worker) state(ctx context.Context) (match.Snapshot, error) {
	r, err := w.send(ctx, command{kind: cmdState})
	if err != nil {
		return match.Snapshot{}, err
	}
	return r.snap, r.err
}

func (w *worker) setConnected(ctx context.Context, seat match.Seat, connected bool) error {
	r, err := w.send(ctx, command{kind: cmdConnect, seat: seat, connected: connected})
	if err != nil {
		return err
	}
	return r.err
}

func (w *worker) send(ctx context.Context, cmd command) (response, error) {
	cmd.resp = make(chan response, 1)
	select {
	case w.cmds <- cmd:
	case <-w.quit:
		return response{}, apperrors.ErrMatchNotFound
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	select {
	case r := <-cmd.resp:
		return r, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// --- worker side ---

func (w *worker) run() {
	defer w.stopTimer()

	w.emitMatchRecord(false)
	w.emitEvent(records.EventMatchCreated, nil)
	w.startGame()

	for {
		select {
		case cmd := <-w.cmds:
			w.handle(cmd)
		case <-w.timerC():
			w.timer = nil
			w.onTimeout()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

// drain answers senders that raced with close.
func (w *worker) drain() {
	for {
		select {
		case cmd := <-w.cmds:
			cmd.resp <- response{err: apperrors.ErrMatchNotFound}
		default:
			return
		}
	}
}

func (w *worker) handle(cmd command) {
	switch cmd.kind {
	case cmdState:
		cmd.resp <- response{snap: w.m.Snapshot()}

	case cmdSubmit:
		gameNum := w.m.GameNumber()
		out, err := w.m.SubmitCard(cmd.seat, cmd.card)
		if err == nil {
			w.paused = false
			w.afterOutcome(gameNum, out)
		} else if apperrors.IsIntegrity(err) {
			w.emitEvent(records.EventMatchAborted, map[string]any{"reason": err.Error()})
			w.stopTimer()
		}
		cmd.resp <- response{out: out, err: err}

	case cmdConnect:
		w.setSeatConnected(cmd.seat, cmd.connected)
		cmd.resp <- response{}
	}
}

func (w *worker) setSeatConnected(seat match.Seat, connected bool) {
	if !seat.Valid() {
		return
	}
	w.offline[seat] = !connected

	kind := records.EventSeatOnline
	if !connected {
		kind = records.EventSeatOffline
	}
	w.emitEvent(kind, map[string]any{"seat": int(seat)})

	acting, ok := w.m.ExpectedSeat()
	if !ok || acting != seat {
		return
	}
	if connected {
		// Acting seat is back: resume the clock.
		w.paused = false
		w.armTimer()
		return
	}
	if w.cfg.Fallback == FallbackPause {
		w.stopTimer()
		w.paused = true
	}
}

// startGame deals the next game. Deal failures are integrity failures and
// abort the match.
func (w *worker) startGame() {
	g, err := w.m.StartNextGame()
	if err != nil {
		logger.LogError("match %s: deal failed: %v", w.id, err)
		w.emitEvent(records.EventMatchAborted, map[string]any{"reason": err.Error()})
		return
	}
	w.emitEvent(records.EventGameStarted, map[string]any{
		"game_number": g.Number,
		"trump":       g.Selection.Trump.String(),
		"shama_seat":  g.Selection.ShamaSeat,
	})
	w.armTimer()
}

// afterOutcome emits records for everything the accepted play sealed, then
// advances the match clock.
func (w *worker) afterOutcome(gameNum int, out match.TurnOutcome) {
	if out.TurnResolved {
		w.emitTurnRecord(gameNum, out.Turn)
	}
	if out.GameComplete {
		w.emitGameRecord()
	}

	switch {
	case out.MatchComplete:
		w.emitMatchRecord(true)
		w.emitMatchStats()
		w.emitEvent(records.EventMatchCompleted, nil)
		w.stopTimer()
	case out.GameComplete:
		w.startGame()
	default:
		w.armTimer()
	}
}

// --- timeout fallback ---

func (w *worker) onTimeout() {
	seat, ok := w.m.ExpectedSeat()
	if !ok {
		return
	}

	switch w.cfg.Fallback {
	case FallbackPause:
		w.paused = true
		w.emitEvent(records.EventFallbackApplied, map[string]any{
			"policy": string(FallbackPause), "seat": int(seat),
		})

	case FallbackForfeit:
		if err := w.m.Forfeit(seat); err != nil {
			logger.LogError("match %s: forfeit: %v", w.id, err)
			return
		}
		w.emitEvent(records.EventFallbackApplied, map[string]any{
			"policy": string(FallbackForfeit), "seat": int(seat),
		})
		w.emitMatchRecord(true)
		w.emitMatchStats()
		w.emitEvent(records.EventMatchCompleted, nil)

	default: // FallbackAutoPlay
		w.autoPlay(seat)
	}
}

// autoPlay submits the seat's lowest legal card, once per expired turn.
func (w *worker) autoPlay(seat match.Seat) {
	snap := w.m.Snapshot()
	hand := snap.Hands[seat]

	var ledSuit card.Suit
	hasLed := len(snap.CurrentTrick) > 0
	if hasLed {
		ledSuit = snap.CurrentTrick[0].Card.Suit
	}

	c, ok := rule.LowestLegal(hand, ledSuit, hasLed, snap.Trump, w.cfg.Rules)
	if !ok {
		logger.LogError("match %s: no legal auto-play for seat %d", w.id, seat)
		return
	}

	gameNum := w.m.GameNumber()
	out, err := w.m.SubmitCard(seat, c)
	if err != nil {
		logger.LogError("match %s: auto-play rejected: %v", w.id, err)
		return
	}
	w.emitEvent(records.EventFallbackApplied, map[string]any{
		"policy": string(FallbackAutoPlay), "seat": int(seat), "card": c.String(),
	})
	w.afterOutcome(gameNum, out)
}

// --- timer plumbing ---

func (w *worker) armTimer() {
	w.stopTimer()
	if w.cfg.TurnTimeout <= 0 || w.paused {
		return
	}
	if seat, ok := w.m.ExpectedSeat(); ok && w.offline[seat] && w.cfg.Fallback == FallbackPause {
		w.paused = true
		return
	}
	w.timer = time.NewTimer(w.cfg.TurnTimeout)
}

func (w *worker) stopTimer() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *worker) timerC() <-chan time.Time {
	if w.timer == nil {
		return nil
	}
	return w.timer.C
}
