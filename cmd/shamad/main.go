package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shamavibe/shama/internal/config"
	"github.com/shamavibe/shama/internal/engine"
	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/game/rule"
	"github.com/shamavibe/shama/internal/game/trump"
	"github.com/shamavibe/shama/internal/logger"
	"github.com/shamavibe/shama/internal/records"
	"github.com/shamavibe/shama/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	matches := flag.Int("matches", 1, "number of matches to simulate")
	seed := flag.Int64("seed", 0, "base seed (0 = wall clock)")
	useRedis := flag.Bool("redis", false, "persist records to redis")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = config.Default()
	}

	if err := logger.Init(); err != nil {
		log.Printf("logger init failed: %v", err)
	}
	defer logger.Close()

	var sink records.Sink = records.NewMemorySink()
	if *useRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis unreachable at %s: %v", cfg.Redis.Addr, err)
		}
		sink = storage.NewRedisStore(client)
	}

	base := *seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	next := base
	eng := engine.New(engine.Config{
		// The simulator drives every seat itself; no timers needed.
		TurnTimeout: 0,
		Selector:    trump.NewShamaHolderSelector(cfg.Rules.ShamaBonus),
		Rules:       rule.Options{MustTrumpIfVoid: cfg.Rules.MustTrumpIfVoid},
		Sink:        sink,
		Seed: func() int64 {
			next++
			return next
		},
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = eng.Shutdown(ctx)
	}()

	opts := rule.Options{MustTrumpIfVoid: cfg.Rules.MustTrumpIfVoid}
	for i := range *matches {
		if err := simulate(eng, i, opts); err != nil {
			log.Fatalf("match %d failed: %v", i+1, err)
		}
	}
}

// simulate runs one full match with every seat playing its lowest legal
// card, and prints the result.
func simulate(eng *engine.Engine, n int, opts rule.Options) error {
	ctx := context.Background()

	players := [4]engine.PlayerInfo{}
	for seat := range 4 {
		players[seat] = engine.PlayerInfo{
			ID:   fmt.Sprintf("sim-%d-%d", n, seat),
			Name: fmt.Sprintf("Bot %d", seat),
		}
	}

	id, err := eng.CreateMatch(players)
	if err != nil {
		return err
	}

	for {
		snap, err := eng.State(ctx, id)
		if err != nil {
			return err
		}
		if snap.Phase == "completed" || snap.Phase == "aborted" {
			fmt.Printf("match %s: %s  team1=%d team2=%d winner=%d\n",
				id, snap.Phase, snap.TotalScore1, snap.TotalScore2, snap.WinningTeam)
			return nil
		}

		seat := snap.ExpectedSeat
		var ledSuit card.Suit
		hasLed := len(snap.CurrentTrick) > 0
		if hasLed {
			ledSuit = snap.CurrentTrick[0].Card.Suit
		}
		c, ok := rule.LowestLegal(snap.Hands[seat], ledSuit, hasLed, snap.Trump, opts)
		if !ok {
			return fmt.Errorf("seat %d has no legal play", seat)
		}
		if _, err := eng.SubmitCard(ctx, id, seat, c); err != nil {
			return err
		}
	}
}
