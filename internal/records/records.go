// Package records defines the immutable record schema the engine emits to
// its logging/persistence collaborators. The engine owns the schema but
// never persists anything itself; sinks receive sealed copies only.
package records

import (
	"context"
	"time"

	"github.com/shamavibe/shama/internal/game/card"
)

// EventKind identifies free-form engine events.
type EventKind string

const (
	EventMatchCreated    EventKind = "match_created"
	EventGameStarted     EventKind = "game_started"
	EventTurnResolved    EventKind = "turn_resolved"
	EventGameCompleted   EventKind = "game_completed"
	EventMatchCompleted  EventKind = "match_completed"
	EventMatchAborted    EventKind = "match_aborted"
	EventFallbackApplied EventKind = "fallback_applied"
	EventSeatOffline     EventKind = "seat_offline"
	EventSeatOnline      EventKind = "seat_online"
)

// MatchRecord describes a match; written at creation and again at completion.
type MatchRecord struct {
	MatchID     string    `json:"match_id"`
	Players     [4]string `json:"players"`
	Seed        int64     `json:"seed"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
	WinningTeam int       `json:"winning_team"` // 0 = draw / not finished
	TotalScore1 int       `json:"total_score_1"`
	TotalScore2 int       `json:"total_score_2"`
}

// GameRecord describes one sealed deal.
type GameRecord struct {
	MatchID    string       `json:"match_id"`
	GameNumber int          `json:"game_number"` // 1..9
	Seed       int64        `json:"seed"`
	Trump      card.Suit    `json:"trump"`
	ShamaBonus int          `json:"shama_bonus"`
	ShamaSeat  int          `json:"shama_seat"`
	Hands      [4]card.Hand `json:"hands"` // as dealt
	TeamScore1 int          `json:"team_score_1"`
	TeamScore2 int          `json:"team_score_2"`
}

// TurnPlay is one card within a turn record.
type TurnPlay struct {
	Seat int       `json:"seat"`
	Card card.Card `json:"card"`
}

// TurnRecord describes one sealed trick.
type TurnRecord struct {
	MatchID     string     `json:"match_id"`
	GameNumber  int        `json:"game_number"`
	TurnNumber  int        `json:"turn_number"` // 1..9
	FirstTurn   int        `json:"first_turn"`  // lead seat
	Plays       []TurnPlay `json:"plays"`       // in play order
	Winner      int        `json:"winner"`
	LootingTeam int        `json:"looting_team"`
	LootValue   int        `json:"loot_value"`
}

// PlayerStatsDelta is an increment to a player's aggregate counters.
type PlayerStatsDelta struct {
	PlayerID      string `json:"player_id"`
	GamesPlayed   int    `json:"games_played"`
	GamesWon      int    `json:"games_won"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	TricksTaken   int    `json:"tricks_taken"`
}

// EventRecord is a free-form event.
type EventRecord struct {
	MatchID string    `json:"match_id"`
	Kind    EventKind `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Sink consumes engine records after each state transition. Implementations
// must not retain references into live match state; the engine only passes
// sealed copies. Sink errors are logged, never fed back into the match.
type Sink interface {
	SaveMatch(ctx context.Context, rec MatchRecord) error
	SaveGame(ctx context.Context, rec GameRecord) error
	SaveTurn(ctx context.Context, rec TurnRecord) error
	ApplyPlayerStats(ctx context.Context, delta PlayerStatsDelta) error
	LogEvent(ctx context.Context, rec EventRecord) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) SaveMatch(context.Context, MatchRecord) error             { return nil }
func (NopSink) SaveGame(context.Context, GameRecord) error               { return nil }
func (NopSink) SaveTurn(context.Context, TurnRecord) error               { return nil }
func (NopSink) ApplyPlayerStats(context.Context, PlayerStatsDelta) error { return nil }
func (NopSink) LogEvent(context.Context, EventRecord) error              { return nil }
