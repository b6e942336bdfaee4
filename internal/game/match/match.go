package match

import (
	"github.com/shamavibe/shama/internal/apperrors"
	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/game/rule"
	"github.com/shamavibe/shama/internal/game/trump"
)

// GamesPerMatch is the fixed number of deals in a match.
const GamesPerMatch = 9

// Phase is the match controller state machine:
// Created → InGame(n) → BetweenGames → InGame(n+1) → … → Completed,
// with Aborted reachable from any phase on an integrity failure.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseInGame
	PhaseBetweenGames
	PhaseCompleted
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseInGame:
		return "in_game"
	case PhaseBetweenGames:
		return "between_games"
	case PhaseCompleted:
		return "completed"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// gameSeedStride spaces per-game shuffle seeds derived from the match seed.
const gameSeedStride = 1_000_003

// Match is the authoritative state machine for one full contest: nine
// sequential deals between two fixed teams. All methods are single-threaded;
// the engine serializes access through one worker per match.
type Match struct {
	players [4]string // player IDs by seat
	seed    int64

	selector trump.Selector
	opts     rule.Options

	phase   Phase
	games   []*Game // sealed games
	current *Game

	score  Score
	winner Team
}

// New creates a match in the Created phase. No cards are dealt until the
// first call to StartNextGame.
func New(players [4]string, seed int64, sel trump.Selector, opts rule.Options) *Match {
	if sel == nil {
		sel = trump.NewShamaHolderSelector(0)
	}
	return &Match{
		players:  players,
		seed:     seed,
		selector: sel,
		opts:     opts,
		phase:    PhaseCreated,
	}
}

// Players returns the player IDs by seat.
func (m *Match) Players() [4]string {
	return m.players
}

// Seed returns the match seed from which per-game shuffle seeds derive.
func (m *Match) Seed() int64 {
	return m.seed
}

// Phase returns the current controller phase.
func (m *Match) CurrentPhase() Phase {
	return m.phase
}

// Score exposes the read-only score keeper.
func (m *Match) Score() *Score {
	return &m.score
}

// Winner returns the winning team once the match completes; TeamNone means
// a draw (equal totals after nine games).
func (m *Match) Winner() Team {
	return m.winner
}

// GameNumber returns the 1-based number of the game in progress, or of the
// last sealed game outside InGame. Zero before the first deal.
func (m *Match) GameNumber() int {
	if m.current != nil {
		return m.current.Number
	}
	return len(m.games)
}

// CurrentGame returns the game in progress, or nil.
func (m *Match) CurrentGame() *Game {
	return m.current
}

// Games returns the sealed games.
func (m *Match) Games() []*Game {
	return m.games
}

// StartNextGame deals the next game. Legal only in the Created and
// BetweenGames phases.
func (m *Match) StartNextGame() (*Game, error) {
	switch m.phase {
	case PhaseCreated, PhaseBetweenGames:
	case PhaseCompleted:
		return nil, apperrors.ErrMatchCompleted
	case PhaseAborted:
		return nil, apperrors.ErrMatchAborted
	default:
		return nil, apperrors.ErrNoActiveGame
	}

	number := len(m.games) + 1
	gameSeed := m.seed + int64(number)*gameSeedStride
	g, err := newGame(number, gameSeed, m.selector, m.opts)
	if err != nil {
		m.abort()
		return nil, err
	}

	m.current = g
	m.phase = PhaseInGame
	return g, nil
}

// SubmitCard validates and applies one card play. Validation errors leave
// all state unchanged; integrity errors abort the match.
func (m *Match) SubmitCard(seat Seat, c card.Card) (TurnOutcome, error) {
	switch m.phase {
	case PhaseCompleted:
		return TurnOutcome{}, apperrors.ErrMatchCompleted
	case PhaseAborted:
		return TurnOutcome{}, apperrors.ErrMatchAborted
	case PhaseInGame:
	default:
		return TurnOutcome{}, apperrors.ErrNoActiveGame
	}
	if !seat.Valid() {
		return TurnOutcome{}, apperrors.ErrBadSeat
	}

	sealed, err := m.current.play(seat, c)
	if err != nil {
		if apperrors.IsIntegrity(err) {
			m.abort()
		}
		return TurnOutcome{}, err
	}

	out := TurnOutcome{Seat: seat, Card: c}
	if sealed == nil {
		out.NextSeat = m.current.expectedSeat()
		return out, nil
	}

	out.TurnResolved = true
	out.Turn = sealed.clone()
	m.score.addLoot(sealed.LootingTeam, sealed.LootValue)

	if !m.current.complete() {
		out.NextSeat = m.current.expectedSeat()
		return out, nil
	}

	// Ninth trick resolved: seal the game and fold its score.
	out.GameComplete = true
	m.current.score[0], m.current.score[1] = m.score.GameScore()
	m.games = append(m.games, m.current)
	m.current = nil
	m.score.sealGame()

	if len(m.games) == GamesPerMatch {
		m.phase = PhaseCompleted
		m.winner = m.score.leader()
		out.MatchComplete = true
	} else {
		m.phase = PhaseBetweenGames
	}
	return out, nil
}

// ExpectedSeat returns the seat whose turn it is; ok is false outside
// InGame.
func (m *Match) ExpectedSeat() (Seat, bool) {
	if m.phase != PhaseInGame {
		return 0, false
	}
	return m.current.expectedSeat(), true
}

// Forfeit ends the match immediately with the offending seat's team losing,
// the harshest of the timeout fallback policies.
func (m *Match) Forfeit(seat Seat) error {
	switch m.phase {
	case PhaseCompleted:
		return apperrors.ErrMatchCompleted
	case PhaseAborted:
		return apperrors.ErrMatchAborted
	}
	if !seat.Valid() {
		return apperrors.ErrBadSeat
	}
	m.winner = TeamOf(seat).Other()
	m.phase = PhaseCompleted
	m.current = nil
	return nil
}

// Abort flags the match as unplayable after an integrity failure. Further
// actions are rejected with ErrMatchAborted.
func (m *Match) Abort() {
	m.abort()
}

func (m *Match) abort() {
	m.phase = PhaseAborted
	m.current = nil
}
