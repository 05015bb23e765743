package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmarcal/futmeet-sub000/internal/dependencies/clock"
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Hydrate loads the cached snapshot and repairs anything an older or
// damaged cache may contain. It never fails: a missing, unreadable or
// corrupt cache yields an empty snapshot, logged and carried on.
func Hydrate(ctx context.Context, c Cache, clk clock.Clock, logger *slog.Logger) *model.Snapshot {
	logger = logger.With(slog.String("component", "cache"))

	if c == nil {
		return emptySnapshot()
	}

	snap, err := c.Load(ctx)
	if err != nil {
		if errors.Is(err, model.ErrCacheMiss) {
			logger.Info("no cached snapshot, starting empty")
		} else {
			logger.Warn("discarding unusable cached snapshot", slog.Any("error", err))
		}
		return emptySnapshot()
	}

	repairs := migrate(snap, clk.Now())
	if repairs > 0 {
		logger.Warn("cached snapshot needed repairs", slog.Int("repairs", repairs))
	}
	logger.Info("cached snapshot loaded",
		slog.Int("games", len(snap.Games)),
		slog.Int("rooms", len(snap.Rooms)),
		slog.Time("saved_at", snap.SavedAt))
	return snap
}

func emptySnapshot() *model.Snapshot {
	return &model.Snapshot{
		Games: make(map[model.SessionID]*model.GameSession),
		Rooms: make(map[model.SessionID]*model.WaitingRoom),
	}
}

// migrate normalizes a loaded snapshot in place: team counts are
// re-clamped in case the valid range changed between versions, zero
// timestamps are restored from the clock, players that lost their ids
// are dropped, and nil slices and maps become empty ones. Returns the
// number of repairs applied.
func migrate(snap *model.Snapshot, now time.Time) int {
	repairs := 0

	if snap.Games == nil {
		snap.Games = make(map[model.SessionID]*model.GameSession)
	}
	if snap.Rooms == nil {
		snap.Rooms = make(map[model.SessionID]*model.WaitingRoom)
	}

	for id, g := range snap.Games {
		if g == nil {
			delete(snap.Games, id)
			repairs++
			continue
		}
		g.ID = id
		if clamped := model.ClampTeamCount(g.TeamCount); clamped != g.TeamCount {
			g.TeamCount = clamped
			repairs++
		}
		if g.Status != model.StatusSetup && g.Status != model.StatusSorting && g.Status != model.StatusComplete {
			g.Status = model.StatusSetup
			repairs++
		}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
			repairs++
		}
		if g.UpdatedAt.IsZero() {
			g.UpdatedAt = g.CreatedAt
			repairs++
		}
		g.Players, repairs = repairPlayers(g.Players, repairs)
		if g.Teams == nil {
			g.Teams = []model.Team{}
			repairs++
		}
		for i := range g.Teams {
			g.Teams[i].Players, repairs = repairPlayers(g.Teams[i].Players, repairs)
		}
	}

	for id, r := range snap.Rooms {
		if r == nil {
			delete(snap.Rooms, id)
			repairs++
			continue
		}
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
			repairs++
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = r.CreatedAt
			repairs++
		}
		r.Players, repairs = repairPlayers(r.Players, repairs)
	}

	return repairs
}

// repairPlayers drops players without ids and turns nil rosters into
// empty ones
func repairPlayers(players []model.Player, repairs int) ([]model.Player, int) {
	if players == nil {
		return []model.Player{}, repairs + 1
	}
	kept := players[:0]
	for _, p := range players {
		if p.ID == "" {
			repairs++
			continue
		}
		kept = append(kept, p)
	}
	return kept, repairs
}
