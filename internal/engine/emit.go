package engine

import (
	"context"
	"time"

	"github.com/shamavibe/shama/internal/game/match"
	"github.com/shamavibe/shama/internal/logger"
	"github.com/shamavibe/shama/internal/records"
)

// sinkTimeout bounds each sink call so a slow collaborator cannot stall a
// match worker for long. Sink failures are logged and otherwise ignored.
const sinkTimeout = 5 * time.Second

func (w *worker) sinkCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sinkTimeout)
}

func (w *worker) emitEvent(kind records.EventKind, payload any) {
	ctx, cancel := w.sinkCtx()
	defer cancel()
	err := w.cfg.Sink.LogEvent(ctx, records.EventRecord{
		MatchID: w.id.String(),
		Kind:    kind,
		At:      time.Now(),
		Payload: payload,
	})
	if err != nil {
		logger.LogError("match %s: event sink: %v", w.id, err)
	}
}

func (w *worker) emitMatchRecord(finished bool) {
	rec := records.MatchRecord{
		MatchID:   w.id.String(),
		Players:   w.m.Players(),
		Seed:      w.m.Seed(),
		StartedAt: w.startedAt,
	}
	if finished {
		rec.FinishedAt = time.Now()
		rec.WinningTeam = int(w.m.Winner())
		rec.TotalScore1, rec.TotalScore2 = w.m.Score().MatchTotals()
	}

	ctx, cancel := w.sinkCtx()
	defer cancel()
	if err := w.cfg.Sink.SaveMatch(ctx, rec); err != nil {
		logger.LogError("match %s: match sink: %v", w.id, err)
	}
}

func (w *worker) emitTurnRecord(gameNum int, t *match.Turn) {
	rec := records.TurnRecord{
		MatchID:     w.id.String(),
		GameNumber:  gameNum,
		TurnNumber:  t.Number,
		FirstTurn:   int(t.Lead),
		Winner:      int(t.Winner),
		LootingTeam: int(t.LootingTeam),
		LootValue:   t.LootValue,
	}
	for _, p := range t.Plays {
		rec.Plays = append(rec.Plays, records.TurnPlay{Seat: int(p.Seat), Card: p.Card})
	}

	ctx, cancel := w.sinkCtx()
	defer cancel()
	if err := w.cfg.Sink.SaveTurn(ctx, rec); err != nil {
		logger.LogError("match %s: turn sink: %v", w.id, err)
	}
	w.emitEvent(records.EventTurnResolved, map[string]any{
		"game_number": gameNum,
		"turn_number": t.Number,
		"loot_value":  t.LootValue,
		"winner":      int(t.Winner),
	})
}

// emitGameRecord records the most recently sealed game along with the
// per-player aggregates it changes.
func (w *worker) emitGameRecord() {
	games := w.m.Games()
	if len(games) == 0 {
		return
	}
	g := games[len(games)-1]

	rec := records.GameRecord{
		MatchID:    w.id.String(),
		GameNumber: g.Number,
		Seed:       g.Seed,
		Trump:      g.Selection.Trump,
		ShamaBonus: g.Selection.Bonus,
		ShamaSeat:  g.Selection.ShamaSeat,
	}
	rec.TeamScore1, rec.TeamScore2 = g.Scores()
	for seat := range 4 {
		rec.Hands[seat] = g.InitialHand(match.Seat(seat))
	}

	ctx, cancel := w.sinkCtx()
	if err := w.cfg.Sink.SaveGame(ctx, rec); err != nil {
		logger.LogError("match %s: game sink: %v", w.id, err)
	}
	cancel()

	winner := match.TeamNone
	if rec.TeamScore1 > rec.TeamScore2 {
		winner = match.Team1
	} else if rec.TeamScore2 > rec.TeamScore1 {
		winner = match.Team2
	}

	tricks := [4]int{}
	for _, t := range g.Turns() {
		tricks[t.Winner]++
	}

	players := w.m.Players()
	for seat, id := range players {
		delta := records.PlayerStatsDelta{
			PlayerID:    id,
			GamesPlayed: 1,
			TricksTaken: tricks[seat],
		}
		if winner != match.TeamNone && match.TeamOf(match.Seat(seat)) == winner {
			delta.GamesWon = 1
		}
		w.applyStats(delta)
	}

	w.emitEvent(records.EventGameCompleted, map[string]any{
		"game_number":  g.Number,
		"team_score_1": rec.TeamScore1,
		"team_score_2": rec.TeamScore2,
	})
}

func (w *worker) emitMatchStats() {
	winner := w.m.Winner()
	for seat, id := range w.m.Players() {
		delta := records.PlayerStatsDelta{
			PlayerID:      id,
			MatchesPlayed: 1,
		}
		if winner != match.TeamNone && match.TeamOf(match.Seat(seat)) == winner {
			delta.MatchesWon = 1
		}
		w.applyStats(delta)
	}
}

func (w *worker) applyStats(delta records.PlayerStatsDelta) {
	ctx, cancel := w.sinkCtx()
	defer cancel()
	if err := w.cfg.Sink.ApplyPlayerStats(ctx, delta); err != nil {
		logger.LogError("match %s: stats sink: %v", w.id, err)
	}
}
