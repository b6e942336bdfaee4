// Package storage provides the reference persistence collaborator: a redis
// implementation of records.Sink. The engine itself never imports this; it
// is wired in at the binary level.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shamavibe/shama/internal/records"
)

const (
	// Redis key prefixes.
	matchKeyPrefix  = "match:"
	gamesKeyPrefix  = "games:"
	turnsKeyPrefix  = "turns:"
	eventsKeyPrefix = "events:"
	statsKeyPrefix  = "player:stats:"
)

// PlayerStats are a player's lifetime aggregates.
type PlayerStats struct {
	PlayerID      string `json:"player_id"`
	GamesPlayed   int64  `json:"games_played"`
	GamesWon      int64  `json:"games_won"`
	MatchesPlayed int64  `json:"matches_played"`
	MatchesWon    int64  `json:"matches_won"`
	TricksTaken   int64  `json:"tricks_taken"`
}

// RedisStore persists engine records in redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ records.Sink = (*RedisStore)(nil)

// SaveMatch upserts the match record; called at creation and completion.
func (rs *RedisStore) SaveMatch(ctx context.Context, rec records.MatchRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal match record: %w", err)
	}
	return rs.client.Set(ctx, matchKeyPrefix+rec.MatchID, data, 0).Err()
}

// LoadMatch fetches a match record; nil when absent.
func (rs *RedisStore) LoadMatch(ctx context.Context, matchID string) (*records.MatchRecord, error) {
	data, err := rs.client.Get(ctx, matchKeyPrefix+matchID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec records.MatchRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal match record: %w", err)
	}
	return &rec, nil
}

// SaveGame appends a sealed deal to the match's game list.
func (rs *RedisStore) SaveGame(ctx context.Context, rec records.GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal game record: %w", err)
	}
	return rs.client.RPush(ctx, gamesKeyPrefix+rec.MatchID, data).Err()
}

// ListGames returns the sealed deals of a match in order.
func (rs *RedisStore) ListGames(ctx context.Context, matchID string) ([]records.GameRecord, error) {
	items, err := rs.client.LRange(ctx, gamesKeyPrefix+matchID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]records.GameRecord, 0, len(items))
	for _, item := range items {
		var rec records.GameRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal game record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// SaveTurn appends a sealed trick to the match's turn list.
func (rs *RedisStore) SaveTurn(ctx context.Context, rec records.TurnRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal turn record: %w", err)
	}
	return rs.client.RPush(ctx, turnsKeyPrefix+rec.MatchID, data).Err()
}

// ListTurns returns the sealed tricks of a match in play order.
func (rs *RedisStore) ListTurns(ctx context.Context, matchID string) ([]records.TurnRecord, error) {
	items, err := rs.client.LRange(ctx, turnsKeyPrefix+matchID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]records.TurnRecord, 0, len(items))
	for _, item := range items {
		var rec records.TurnRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal turn record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ApplyPlayerStats increments the player's aggregate counters.
func (rs *RedisStore) ApplyPlayerStats(ctx context.Context, delta records.PlayerStatsDelta) error {
	key := statsKeyPrefix + delta.PlayerID
	pipe := rs.client.Pipeline()
	if delta.GamesPlayed != 0 {
		pipe.HIncrBy(ctx, key, "games_played", int64(delta.GamesPlayed))
	}
	if delta.GamesWon != 0 {
		pipe.HIncrBy(ctx, key, "games_won", int64(delta.GamesWon))
	}
	if delta.MatchesPlayed != 0 {
		pipe.HIncrBy(ctx, key, "matches_played", int64(delta.MatchesPlayed))
	}
	if delta.MatchesWon != 0 {
		pipe.HIncrBy(ctx, key, "matches_won", int64(delta.MatchesWon))
	}
	if delta.TricksTaken != 0 {
		pipe.HIncrBy(ctx, key, "tricks_taken", int64(delta.TricksTaken))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetPlayerStats reads a player's aggregates; zero stats when absent.
func (rs *RedisStore) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	fields, err := rs.client.HGetAll(ctx, statsKeyPrefix+playerID).Result()
	if err != nil {
		return nil, err
	}

	stats := &PlayerStats{PlayerID: playerID}
	assign := map[string]*int64{
		"games_played":   &stats.GamesPlayed,
		"games_won":      &stats.GamesWon,
		"matches_played": &stats.MatchesPlayed,
		"matches_won":    &stats.MatchesWon,
		"tricks_taken":   &stats.TricksTaken,
	}
	for field, dst := range assign {
		if raw, ok := fields[field]; ok {
			if _, err := fmt.Sscan(raw, dst); err != nil {
				return nil, fmt.Errorf("parse %s: %w", field, err)
			}
		}
	}
	return stats, nil
}

// LogEvent appends a free-form event to the match's event list.
func (rs *RedisStore) LogEvent(ctx context.Context, rec records.EventRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	return rs.client.RPush(ctx, eventsKeyPrefix+rec.MatchID, data).Err()
}
