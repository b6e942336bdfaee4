package records

import (
	"context"
	"sync"
)

// MemorySink collects records in memory, mainly for tests and the local
// simulation binary.
type MemorySink struct {
	mu      sync.Mutex
	Matches []MatchRecord
	Games   []GameRecord
	Turns   []TurnRecord
	Stats   []PlayerStatsDelta
	Events  []EventRecord
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) SaveMatch(_ context.Context, rec MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Matches = append(s.Matches, rec)
	return nil
}

func (s *MemorySink) SaveGame(_ context.Context, rec GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Games = append(s.Games, rec)
	return nil
}

func (s *MemorySink) SaveTurn(_ context.Context, rec TurnRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Turns = append(s.Turns, rec)
	return nil
}

func (s *MemorySink) ApplyPlayerStats(_ context.Context, delta PlayerStatsDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats = append(s.Stats, delta)
	return nil
}

func (s *MemorySink) LogEvent(_ context.Context, rec EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, rec)
	return nil
}

// Snapshot returns copies of the collected records.
func (s *MemorySink) Snapshot() (matches []MatchRecord, games []GameRecord, turns []TurnRecord, events []EventRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches = append(matches, s.Matches...)
	games = append(games, s.Games...)
	turns = append(turns, s.Turns...)
	events = append(events, s.Events...)
	return
}
