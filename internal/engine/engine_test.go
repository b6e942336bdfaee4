package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shamavibe/shama/internal/apperrors"
	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/game/match"
	"github.com/shamavibe/shama/internal/game/rule"
	"github.com/shamavibe/shama/internal/records"
)

func testPlayers(prefix string) [4]PlayerInfo {
	var players [4]PlayerInfo
	for seat := range 4 {
		players[seat] = PlayerInfo{ID: prefix + string(rune('a'+seat)), Name: "Player"}
	}
	return players
}

func fixedSeed(seed int64) func() int64 {
	return func() int64 { return seed }
}

// driveMatch plays every seat's lowest legal card until the match ends.
func driveMatch(t *testing.T, eng *Engine, id uuid.UUID) match.Snapshot {
	t.Helper()
	ctx := context.Background()
	for {
		snap, err := eng.State(ctx, id)
		require.NoError(t, err)
		if snap.Phase == "completed" || snap.Phase == "aborted" {
			return snap
		}

		seat := snap.ExpectedSeat
		var ledSuit card.Suit
		hasLed := len(snap.CurrentTrick) > 0
		if hasLed {
			ledSuit = snap.CurrentTrick[0].Card.Suit
		}
		c, ok := rule.LowestLegal(snap.Hands[seat], ledSuit, hasLed, snap.Trump, rule.Options{})
		require.True(t, ok, "seat %d must have a legal play", seat)

		_, err = eng.SubmitCard(ctx, id, seat, c)
		require.NoError(t, err)
	}
}

func TestEngineFullMatch(t *testing.T) {
	t.Parallel()

	sink := records.NewMemorySink()
	eng := New(Config{Sink: sink, Seed: fixedSeed(1001)})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("m1-"))
	require.NoError(t, err)

	snap := driveMatch(t, eng, id)
	assert.Equal(t, "completed", snap.Phase)

	matches, games, turns, _ := sink.Snapshot()
	require.Len(t, matches, 2, "one record at creation, one at completion")
	assert.True(t, matches[0].FinishedAt.IsZero())
	assert.False(t, matches[1].FinishedAt.IsZero())
	assert.Equal(t, snap.TotalScore1, matches[1].TotalScore1)
	assert.Equal(t, snap.TotalScore2, matches[1].TotalScore2)
	assert.Equal(t, int(snap.WinningTeam), matches[1].WinningTeam)

	require.Len(t, games, match.GamesPerMatch)
	require.Len(t, turns, match.GamesPerMatch*match.TurnsPerGame)

	// Every sealed game accounts for all 120 deck points plus its bonus.
	for _, g := range games {
		assert.Equal(t, card.DeckPoints+g.ShamaBonus, g.TeamScore1+g.TeamScore2,
			"game %d", g.GameNumber)
		for seat := range 4 {
			assert.Len(t, g.Hands[seat], card.HandSize)
		}
	}

	// Per-player aggregates: one delta per player per game plus the match
	// wrap-up.
	_, _, _, events := sink.Snapshot()
	assert.NotEmpty(t, events)
	assert.Len(t, sink.Stats, 4*match.GamesPerMatch+4)
}

func TestEngineDeterministicSeeds(t *testing.T) {
	t.Parallel()

	run := func() (int, int) {
		eng := New(Config{Seed: fixedSeed(31337)})
		defer eng.Shutdown(context.Background())
		id, err := eng.CreateMatch(testPlayers("d-"))
		require.NoError(t, err)
		snap := driveMatch(t, eng, id)
		return snap.TotalScore1, snap.TotalScore2
	}

	a1, a2 := run()
	b1, b2 := run()
	assert.Equal(t, a1, b1)
	assert.Equal(t, a2, b2)
}

func TestEngineConcurrentMatchesAreIsolated(t *testing.T) {
	t.Parallel()

	sink := records.NewMemorySink()
	var next int64 = 5000
	var seedMu sync.Mutex
	eng := New(Config{Sink: sink, Seed: func() int64 {
		seedMu.Lock()
		defer seedMu.Unlock()
		next++
		return next
	}})
	defer eng.Shutdown(context.Background())

	const n = 4
	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := range n {
		id, err := eng.CreateMatch(testPlayers("c-"))
		require.NoError(t, err)
		ids[i] = id

		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := driveMatch(t, eng, id)
			assert.Equal(t, "completed", snap.Phase)
		}()
	}
	wg.Wait()

	_, _, turns, _ := sink.Snapshot()
	perMatch := make(map[string]int)
	for _, tr := range turns {
		perMatch[tr.MatchID]++
	}
	require.Len(t, perMatch, n)
	for _, id := range ids {
		assert.Equal(t, match.GamesPerMatch*match.TurnsPerGame, perMatch[id.String()],
			"match %s must own exactly its own tricks", id)
	}
}

func TestEngineAutoPlayFallback(t *testing.T) {
	t.Parallel()

	sink := records.NewMemorySink()
	eng := New(Config{
		TurnTimeout: 5 * time.Millisecond,
		Fallback:    FallbackAutoPlay,
		Sink:        sink,
		Seed:        fixedSeed(42),
	})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("ap-"))
	require.NoError(t, err)

	// Nobody ever plays; the timeout fallback must finish the whole match.
	require.Eventually(t, func() bool {
		snap, err := eng.State(context.Background(), id)
		return err == nil && snap.Phase == "completed"
	}, 30*time.Second, 20*time.Millisecond)

	_, _, turns, events := sink.Snapshot()
	assert.Len(t, turns, match.GamesPerMatch*match.TurnsPerGame)

	fallbacks := 0
	for _, ev := range events {
		if ev.Kind == records.EventFallbackApplied {
			fallbacks++
		}
	}
	assert.Equal(t, match.GamesPerMatch*match.TurnsPerGame*4, fallbacks,
		"every play must have been a fallback")
}

func TestEnginePauseFallback(t *testing.T) {
	t.Parallel()

	sink := records.NewMemorySink()
	eng := New(Config{
		TurnTimeout: 25 * time.Millisecond,
		Fallback:    FallbackPause,
		Sink:        sink,
		Seed:        fixedSeed(77),
	})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("pa-"))
	require.NoError(t, err)

	countFallbacks := func() int {
		_, _, _, events := sink.Snapshot()
		n := 0
		for _, ev := range events {
			if ev.Kind == records.EventFallbackApplied {
				n++
			}
		}
		return n
	}

	require.Eventually(t, func() bool { return countFallbacks() == 1 },
		5*time.Second, 5*time.Millisecond)

	// Paused: the timer must not re-arm on its own.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, countFallbacks(), "a paused match fires no further timeouts")

	snap, err := eng.State(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "in_game", snap.Phase, "pause must not end the match")
	assert.Equal(t, 1, snap.TurnNumber)

	// The acting seat returns; the clock resumes and expires again.
	require.NoError(t, eng.SetSeatConnected(context.Background(), id, snap.ExpectedSeat, true))
	require.Eventually(t, func() bool { return countFallbacks() >= 2 },
		5*time.Second, 5*time.Millisecond)
}

func TestEngineForfeitFallback(t *testing.T) {
	t.Parallel()

	eng := New(Config{
		TurnTimeout: 10 * time.Millisecond,
		Fallback:    FallbackForfeit,
		Seed:        fixedSeed(88),
	})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("ff-"))
	require.NoError(t, err)

	snap, err := eng.State(context.Background(), id)
	require.NoError(t, err)
	loser := match.TeamOf(snap.ExpectedSeat)

	require.Eventually(t, func() bool {
		s, err := eng.State(context.Background(), id)
		return err == nil && s.Phase == "completed"
	}, 5*time.Second, 5*time.Millisecond)

	final, err := eng.State(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, loser.Other(), final.WinningTeam)
}

func TestEngineRejectsUnknownMatch(t *testing.T) {
	t.Parallel()

	eng := New(Config{})
	defer eng.Shutdown(context.Background())

	_, err := eng.State(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrMatchNotFound)
	_, err = eng.SubmitCard(context.Background(), uuid.New(), 0, card.Shama)
	assert.ErrorIs(t, err, apperrors.ErrMatchNotFound)
	assert.ErrorIs(t, eng.CloseMatch(uuid.New()), apperrors.ErrMatchNotFound)
}

func TestEngineCloseMatch(t *testing.T) {
	t.Parallel()

	eng := New(Config{})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("cl-"))
	require.NoError(t, err)
	require.NoError(t, eng.CloseMatch(id))

	require.Eventually(t, func() bool {
		_, err := eng.State(context.Background(), id)
		return err != nil
	}, 5*time.Second, 5*time.Millisecond)
}

func TestEngineShutdown(t *testing.T) {
	t.Parallel()

	eng := New(Config{})
	_, err := eng.CreateMatch(testPlayers("sd-"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, eng.Shutdown(ctx))

	_, err = eng.CreateMatch(testPlayers("sd2-"))
	assert.ErrorIs(t, err, apperrors.ErrMatchAborted)
}

func TestEngineValidationErrorsSurface(t *testing.T) {
	t.Parallel()

	eng := New(Config{Seed: fixedSeed(64)})
	defer eng.Shutdown(context.Background())

	id, err := eng.CreateMatch(testPlayers("v-"))
	require.NoError(t, err)

	snap, err := eng.State(context.Background(), id)
	require.NoError(t, err)

	wrongSeat := snap.ExpectedSeat.Next()
	_, err = eng.SubmitCard(context.Background(), id, wrongSeat, snap.Hands[wrongSeat][0])
	assert.ErrorIs(t, err, apperrors.ErrNotPlayersTurn)
	assert.True(t, apperrors.IsValidation(err))

	// The rejection must leave the match where it was.
	after, err := eng.State(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, snap.ExpectedSeat, after.ExpectedSeat)
	assert.Empty(t, after.CurrentTrick)
}
