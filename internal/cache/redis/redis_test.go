package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

type CacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *Cache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SnapshotTTL = time.Hour

	s.cache = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *CacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *CacheSuite) sampleSnapshot() *model.Snapshot {
	now := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	game := model.NewGameSession("V1StGXR8Z5jdHi6BmyT91", now)
	game.Players = append(game.Players, model.NewPlayer("Ana", now))
	room := model.NewWaitingRoom("aaaaaaaaaaaaaaaaaaaaa", now)
	return &model.Snapshot{
		Games:   map[model.SessionID]*model.GameSession{game.ID: game},
		Rooms:   map[model.SessionID]*model.WaitingRoom{room.ID: room},
		SavedAt: now,
	}
}

func (s *CacheSuite) TestSaveAndLoadSnapshot() {
	snap := s.sampleSnapshot()

	err := s.cache.Save(s.ctx, snap)
	s.Require().NoError(err)

	loaded, err := s.cache.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Contains(loaded.Games, model.SessionID("V1StGXR8Z5jdHi6BmyT91"))
	game := loaded.Games["V1StGXR8Z5jdHi6BmyT91"]
	s.Len(game.Players, 1)
	s.Equal("Ana", game.Players[0].Name)
	s.Equal(model.StatusSetup, game.Status)
	s.Contains(loaded.Rooms, model.SessionID("aaaaaaaaaaaaaaaaaaaaa"))
}

func (s *CacheSuite) TestLoadMissingSnapshot() {
	_, err := s.cache.Load(s.ctx)
	s.ErrorIs(err, model.ErrCacheMiss)
}

func (s *CacheSuite) TestLoadCorruptSnapshot() {
	s.Require().NoError(s.mini.Set(snapshotKey, "{not json"))

	_, err := s.cache.Load(s.ctx)
	s.ErrorIs(err, model.ErrCacheCorrupt)
}

func (s *CacheSuite) TestSaveAppliesTTL() {
	err := s.cache.Save(s.ctx, s.sampleSnapshot())
	s.Require().NoError(err)

	s.Equal(time.Hour, s.mini.TTL(snapshotKey))
}

func (s *CacheSuite) TestSaveReplacesPreviousSnapshot() {
	first := s.sampleSnapshot()
	s.Require().NoError(s.cache.Save(s.ctx, first))

	second := s.sampleSnapshot()
	for _, g := range second.Games {
		g.TeamCount = 4
	}
	s.Require().NoError(s.cache.Save(s.ctx, second))

	loaded, err := s.cache.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, loaded.Games["V1StGXR8Z5jdHi6BmyT91"].TeamCount)
}

func (s *CacheSuite) TestSnapshotExpires() {
	s.Require().NoError(s.cache.Save(s.ctx, s.sampleSnapshot()))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.cache.Load(s.ctx)
	s.ErrorIs(err, model.ErrCacheMiss)
}
