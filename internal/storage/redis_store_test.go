package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/records"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadMatch(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := records.MatchRecord{
		MatchID:     "m-1",
		Players:     [4]string{"a", "b", "c", "d"},
		Seed:        1234,
		StartedAt:   time.Now().UTC().Truncate(time.Second),
		TotalScore1: 700,
		TotalScore2: 470,
		WinningTeam: 1,
	}

	require.NoError(t, store.SaveMatch(ctx, rec))

	loaded, err := store.LoadMatch(ctx, "m-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec.MatchID, loaded.MatchID)
	assert.Equal(t, rec.Players, loaded.Players)
	assert.Equal(t, rec.Seed, loaded.Seed)
	assert.Equal(t, rec.TotalScore1, loaded.TotalScore1)
	assert.Equal(t, rec.WinningTeam, loaded.WinningTeam)

	// Completion overwrites the creation record under the same key.
	rec.WinningTeam = 2
	require.NoError(t, store.SaveMatch(ctx, rec))
	loaded, err = store.LoadMatch(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.WinningTeam)
}

func TestRedisStore_LoadMatchMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	loaded, err := store.LoadMatch(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GamesKeepOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for n := 1; n <= 3; n++ {
		rec := records.GameRecord{
			MatchID:    "m-2",
			GameNumber: n,
			Seed:       int64(n) * 100,
			Trump:      card.Hearts,
			ShamaBonus: 10,
			TeamScore1: 65,
			TeamScore2: 65,
		}
		require.NoError(t, store.SaveGame(ctx, rec))
	}

	games, err := store.ListGames(ctx, "m-2")
	require.NoError(t, err)
	require.Len(t, games, 3)
	for i, g := range games {
		assert.Equal(t, i+1, g.GameNumber)
		assert.Equal(t, card.Hearts, g.Trump)
	}

	games, err = store.ListGames(ctx, "absent")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRedisStore_TurnsKeepOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for n := 1; n <= 9; n++ {
		rec := records.TurnRecord{
			MatchID:    "m-3",
			GameNumber: 1,
			TurnNumber: n,
			Plays: []records.TurnPlay{
				{Seat: 0, Card: card.Shama},
			},
			Winner:      0,
			LootingTeam: 1,
			LootValue:   n,
		}
		require.NoError(t, store.SaveTurn(ctx, rec))
	}

	turns, err := store.ListTurns(ctx, "m-3")
	require.NoError(t, err)
	require.Len(t, turns, 9)
	for i, tr := range turns {
		assert.Equal(t, i+1, tr.TurnNumber)
		require.Len(t, tr.Plays, 1)
		assert.Equal(t, card.Shama, tr.Plays[0].Card)
	}
}

func TestRedisStore_PlayerStatsAccumulate(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	deltas := []records.PlayerStatsDelta{
		{PlayerID: "alice", GamesPlayed: 1, GamesWon: 1, TricksTaken: 5},
		{PlayerID: "alice", GamesPlayed: 1, TricksTaken: 3},
		{PlayerID: "alice", MatchesPlayed: 1, MatchesWon: 1},
	}
	for _, d := range deltas {
		require.NoError(t, store.ApplyPlayerStats(ctx, d))
	}

	stats, err := store.GetPlayerStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.GamesPlayed)
	assert.Equal(t, int64(1), stats.GamesWon)
	assert.Equal(t, int64(1), stats.MatchesPlayed)
	assert.Equal(t, int64(1), stats.MatchesWon)
	assert.Equal(t, int64(8), stats.TricksTaken)

	// An unknown player reads as all zeroes.
	stats, err = store.GetPlayerStats(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.GamesPlayed)
	assert.Zero(t, stats.TricksTaken)
}

func TestRedisStore_LogEvent(t *testing.T) {
	t.Parallel()

	store, mr := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := records.EventRecord{
			MatchID: "m-4",
			Kind:    records.EventTurnResolved,
			At:      time.Now(),
			Payload: map[string]any{"turn_number": i + 1},
		}
		require.NoError(t, store.LogEvent(ctx, rec))
	}

	items, err := mr.List(eventsKeyPrefix + "m-4")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
