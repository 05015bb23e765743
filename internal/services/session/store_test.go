package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cmarcal/futmeet-sub000/internal/dependencies/mocks"
	"github.com/cmarcal/futmeet-sub000/internal/model"
	"github.com/cmarcal/futmeet-sub000/internal/services/sorter"
	"github.com/cmarcal/futmeet-sub000/internal/testutil"
)

const (
	gameSID = model.SessionID("V1StGXR8Z5jdHi6BmyT91")
	roomSID = model.SessionID("aaaaaaaaaaaaaaaaaaaaa")
)

// eventRecorder captures published events for assertions
type eventRecorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *eventRecorder) Publish(ev model.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *eventRecorder) types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, 0, len(r.events))
	for _, ev := range r.events {
		types = append(types, ev.Type)
	}
	return types
}

func (r *eventRecorder) clear() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type StoreSuite struct {
	suite.Suite
	store  *Store
	clock  *mocks.MockClock
	events *eventRecorder
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
	s.events = &eventRecorder{}
	s.store = NewStore(sorter.New(), s.clock, s.events, testutil.NopLogger())
}

func (s *StoreSuite) addPlayers(id model.SessionID, names ...string) []model.Player {
	players := make([]model.Player, 0, len(names))
	for _, name := range names {
		p, ok := s.store.AddPlayer(id, name)
		s.Require().True(ok)
		players = append(players, p)
	}
	return players
}

func (s *StoreSuite) rosterNames(id model.SessionID) []string {
	g, ok := s.store.Game(id)
	s.Require().True(ok)
	names := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		names = append(names, p.Name)
	}
	return names
}

// InitGame tests

func (s *StoreSuite) TestInitGameCreatesEmptySession() {
	g := s.store.InitGame(gameSID)

	s.Equal(gameSID, g.ID)
	s.Empty(g.Players)
	s.Equal(model.MinTeamCount, g.TeamCount)
	s.Equal(model.StatusSetup, g.Status)
	s.Empty(g.Teams)
	s.Equal(s.clock.Now(), g.CreatedAt)
	s.Equal(s.clock.Now(), g.UpdatedAt)
}

func (s *StoreSuite) TestInitGameIsIdempotent() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea")
	s.store.SetTeamCount(gameSID, 4)
	s.events.clear()

	g := s.store.InitGame(gameSID)

	s.Len(g.Players, 2)
	s.Equal(4, g.TeamCount)
	s.Empty(s.events.types(), "re-init must not publish a create event")
}

func (s *StoreSuite) TestGameNotFound() {
	g, ok := s.store.Game(gameSID)
	s.False(ok)
	s.Nil(g)
}

// AddPlayer tests

func (s *StoreSuite) TestAddPlayerAppendsInOrder() {
	s.store.InitGame(gameSID)

	added := s.addPlayers(gameSID, "Ana", "Bea", "Caio")

	s.Equal([]string{"Ana", "Bea", "Caio"}, s.rosterNames(gameSID))
	seen := map[model.PlayerID]bool{}
	for _, p := range added {
		s.False(p.Priority)
		s.NotEmpty(p.ID)
		s.False(seen[p.ID], "player ids must be unique")
		seen[p.ID] = true
	}
}

func (s *StoreSuite) TestAddPlayerTrimsName() {
	s.store.InitGame(gameSID)

	p, ok := s.store.AddPlayer(gameSID, "   Duda \t")

	s.Require().True(ok)
	s.Equal("Duda", p.Name)
	s.Equal([]string{"Duda"}, s.rosterNames(gameSID))
}

func (s *StoreSuite) TestAddPlayerToMissingSession() {
	p, ok := s.store.AddPlayer(gameSID, "Ana")

	s.False(ok)
	s.Empty(p.ID)
	s.Empty(s.events.types())
}

// RemovePlayer tests

func (s *StoreSuite) TestRemovePlayer() {
	s.store.InitGame(gameSID)
	players := s.addPlayers(gameSID, "Ana", "Bea", "Caio")

	ok := s.store.RemovePlayer(gameSID, players[1].ID)

	s.True(ok)
	s.Equal([]string{"Ana", "Caio"}, s.rosterNames(gameSID))
}

func (s *StoreSuite) TestRemovePlayerAlsoLeavesTeams() {
	s.store.InitGame(gameSID)
	players := s.addPlayers(gameSID, "Ana", "Bea", "Caio", "Duda")
	s.store.SortTeams(gameSID)

	ok := s.store.RemovePlayer(gameSID, players[0].ID)
	s.Require().True(ok)

	g, _ := s.store.Game(gameSID)
	s.Len(g.Players, 3)
	for _, team := range g.Teams {
		for _, p := range team.Players {
			s.NotEqual(players[0].ID, p.ID, "removed player still present in %s", team.Name)
		}
	}
}

func (s *StoreSuite) TestRemoveMissingPlayer() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana")

	s.False(s.store.RemovePlayer(gameSID, "nope"))
	s.Equal([]string{"Ana"}, s.rosterNames(gameSID))
}

func (s *StoreSuite) TestRemovePlayerFromMissingSession() {
	s.False(s.store.RemovePlayer(gameSID, "nope"))
}

// TogglePriority tests

func (s *StoreSuite) TestTogglePriorityRoundTrips() {
	s.store.InitGame(gameSID)
	players := s.addPlayers(gameSID, "Ana")

	p, ok := s.store.TogglePriority(gameSID, players[0].ID)
	s.Require().True(ok)
	s.True(p.Priority)

	p, ok = s.store.TogglePriority(gameSID, players[0].ID)
	s.Require().True(ok)
	s.False(p.Priority)
}

func (s *StoreSuite) TestTogglePriorityMissingPlayer() {
	s.store.InitGame(gameSID)

	_, ok := s.store.TogglePriority(gameSID, "nope")
	s.False(ok)
}

// ReorderPlayers tests

func (s *StoreSuite) TestReorderPlayersForward() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio", "Duda")

	roster, ok := s.store.ReorderPlayers(gameSID, 0, 2)

	s.Require().True(ok)
	s.Equal([]string{"Bea", "Caio", "Ana", "Duda"}, playerNames(roster))
	s.Equal([]string{"Bea", "Caio", "Ana", "Duda"}, s.rosterNames(gameSID))
}

func (s *StoreSuite) TestReorderPlayersBackward() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio", "Duda")

	roster, ok := s.store.ReorderPlayers(gameSID, 3, 1)

	s.Require().True(ok)
	s.Equal([]string{"Ana", "Duda", "Bea", "Caio"}, playerNames(roster))
}

func (s *StoreSuite) TestReorderPlayersClampsOutOfRange() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio")

	roster, ok := s.store.ReorderPlayers(gameSID, -5, 99)

	s.Require().True(ok)
	s.Equal([]string{"Bea", "Caio", "Ana"}, playerNames(roster))
}

func (s *StoreSuite) TestReorderPlayersEmptyRoster() {
	s.store.InitGame(gameSID)

	roster, ok := s.store.ReorderPlayers(gameSID, 0, 3)

	s.True(ok)
	s.Empty(roster)
}

func (s *StoreSuite) TestReorderToSamePositionPublishesNothing() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea")
	s.events.clear()

	_, ok := s.store.ReorderPlayers(gameSID, 1, 1)

	s.True(ok)
	s.Empty(s.events.types())
}

func (s *StoreSuite) TestReorderPlayersMissingSession() {
	_, ok := s.store.ReorderPlayers(gameSID, 0, 1)
	s.False(ok)
}

// SetTeamCount tests

func (s *StoreSuite) TestSetTeamCountClamps() {
	s.store.InitGame(gameSID)

	count, ok := s.store.SetTeamCount(gameSID, 1)
	s.Require().True(ok)
	s.Equal(model.MinTeamCount, count)

	count, _ = s.store.SetTeamCount(gameSID, 42)
	s.Equal(model.MaxTeamCount, count)

	count, _ = s.store.SetTeamCount(gameSID, 5)
	s.Equal(5, count)

	g, _ := s.store.Game(gameSID)
	s.Equal(5, g.TeamCount)
}

func (s *StoreSuite) TestSetTeamCountMissingSession() {
	_, ok := s.store.SetTeamCount(gameSID, 4)
	s.False(ok)
}

func (s *StoreSuite) TestSetTeamCountKeepsStaleTeams() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio")
	s.store.SortTeams(gameSID)

	s.store.SetTeamCount(gameSID, 3)

	g, _ := s.store.Game(gameSID)
	s.Len(g.Teams, 2, "teams are only replaced by the next sort")
	s.Equal(3, g.TeamCount)
}

// SortTeams tests

func (s *StoreSuite) TestSortTeamsLifecycle() {
	s.store.InitGame(gameSID)
	players := s.addPlayers(gameSID, "Ana", "Bea", "Caio", "Duda", "Edu")
	s.store.SetTeamCount(gameSID, 2)

	teams, ok := s.store.SortTeams(gameSID)
	s.Require().True(ok)

	s.Len(teams, 2)
	g, _ := s.store.Game(gameSID)
	s.Equal(model.StatusComplete, g.Status)

	// Union of the teams is exactly the roster
	placed := map[model.PlayerID]int{}
	for _, team := range teams {
		for _, p := range team.Players {
			placed[p.ID]++
		}
	}
	s.Len(placed, len(players))
	for _, p := range players {
		s.Equal(1, placed[p.ID])
	}
}

func (s *StoreSuite) TestSortTeamsReplacesPreviousResult() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio")

	first, _ := s.store.SortTeams(gameSID)
	second, ok := s.store.SortTeams(gameSID)

	s.Require().True(ok)
	s.Require().Len(second, len(first))
	for i := range first {
		s.NotEqual(first[i].ID, second[i].ID, "each sort mints fresh team ids")
	}
}

func (s *StoreSuite) TestSortTeamsEmptyRoster() {
	s.store.InitGame(gameSID)

	teams, ok := s.store.SortTeams(gameSID)

	s.Require().True(ok)
	s.Len(teams, model.MinTeamCount)
	for _, team := range teams {
		s.Empty(team.Players)
	}
}

func (s *StoreSuite) TestSortTeamsMissingSession() {
	_, ok := s.store.SortTeams(gameSID)
	s.False(ok)
}

func (s *StoreSuite) TestSortTeamsPublishesBothStatuses() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea")
	s.events.clear()

	s.store.SortTeams(gameSID)

	types := s.events.types()
	s.Require().Len(types, 2)
	s.Equal(model.EventStatusChanged, types[0])
	s.Equal(model.EventTeamsSorted, types[1])
}

// Copy semantics

func (s *StoreSuite) TestReturnedViewsAreCopies() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea")
	s.store.SortTeams(gameSID)

	g, _ := s.store.Game(gameSID)
	g.Players[0].Name = "hacked"
	g.Teams[0].Players[0].Name = "hacked"
	g.TeamCount = 99

	fresh, _ := s.store.Game(gameSID)
	s.Equal("Ana", fresh.Players[0].Name)
	s.NotEqual("hacked", fresh.Teams[0].Players[0].Name)
	s.Equal(model.MinTeamCount, fresh.TeamCount)
}

func (s *StoreSuite) TestMutationsTouchUpdatedAt() {
	created := s.clock.Now()
	s.store.InitGame(gameSID)

	s.clock.Advance(10 * time.Minute)
	s.addPlayers(gameSID, "Ana")

	g, _ := s.store.Game(gameSID)
	s.Equal(created, g.CreatedAt)
	s.Equal(created.Add(10*time.Minute), g.UpdatedAt)
}

// Waiting room tests

func (s *StoreSuite) TestInitRoomIsIdempotent() {
	s.store.InitRoom(roomSID)
	p, ok := s.store.AddRoomPlayer(roomSID, "Ana")
	s.Require().True(ok)
	s.False(p.Priority)

	r := s.store.InitRoom(roomSID)
	s.Len(r.Players, 1)
}

func (s *StoreSuite) TestRoomRosterOperations() {
	s.store.InitRoom(roomSID)
	var ids []model.PlayerID
	for _, name := range []string{"Ana", "Bea", "Caio"} {
		p, ok := s.store.AddRoomPlayer(roomSID, "  "+name+"  ")
		s.Require().True(ok)
		s.Equal(name, p.Name)
		ids = append(ids, p.ID)
	}

	p, ok := s.store.ToggleRoomPriority(roomSID, ids[2])
	s.Require().True(ok)
	s.True(p.Priority)

	roster, ok := s.store.ReorderRoomPlayers(roomSID, 2, 0)
	s.Require().True(ok)
	s.Equal([]string{"Caio", "Ana", "Bea"}, playerNames(roster))

	s.True(s.store.RemoveRoomPlayer(roomSID, ids[0]))
	r, _ := s.store.Room(roomSID)
	s.Equal([]string{"Caio", "Bea"}, playerNames(r.Players))
}

func (s *StoreSuite) TestRoomOpsOnMissingRoom() {
	_, ok := s.store.AddRoomPlayer(roomSID, "Ana")
	s.False(ok)
	s.False(s.store.RemoveRoomPlayer(roomSID, "nope"))
	_, ok = s.store.ToggleRoomPriority(roomSID, "nope")
	s.False(ok)
	_, ok = s.store.ReorderRoomPlayers(roomSID, 0, 1)
	s.False(ok)
	_, ok = s.store.Room(roomSID)
	s.False(ok)
}

func (s *StoreSuite) TestGameAndRoomNamespacesAreIndependent() {
	s.store.InitGame(gameSID)
	s.store.InitRoom(gameSID)
	s.addPlayers(gameSID, "Ana")
	s.store.AddRoomPlayer(gameSID, "Bea")

	g, _ := s.store.Game(gameSID)
	r, _ := s.store.Room(gameSID)
	s.Equal([]string{"Ana"}, playerNames(g.Players))
	s.Equal([]string{"Bea"}, playerNames(r.Players))
}

// MaterializeGame tests

func (s *StoreSuite) TestMaterializeCopiesRosterWithFreshIDs() {
	s.store.InitRoom(roomSID)
	s.store.AddRoomPlayer(roomSID, "Ana")
	bea, _ := s.store.AddRoomPlayer(roomSID, "Bea")
	s.store.ToggleRoomPriority(roomSID, bea.ID)

	g := s.store.MaterializeGame(roomSID)

	s.Equal(roomSID, g.ID)
	s.Equal(model.StatusSetup, g.Status)
	s.Equal(model.MinTeamCount, g.TeamCount)
	s.Empty(g.Teams)
	s.Require().Len(g.Players, 2)
	s.Equal([]string{"Ana", "Bea"}, playerNames(g.Players))
	s.True(g.Players[1].Priority, "priority flags carry over")

	r, _ := s.store.Room(roomSID)
	for i := range g.Players {
		s.NotEqual(r.Players[i].ID, g.Players[i].ID, "materialized players get fresh ids")
	}
}

func (s *StoreSuite) TestMaterializeMissingRoomCreatesEmptyGame() {
	g := s.store.MaterializeGame(roomSID)

	s.Empty(g.Players)
	s.Equal(model.StatusSetup, g.Status)

	stored, ok := s.store.Game(roomSID)
	s.Require().True(ok)
	s.Empty(stored.Players)
}

func (s *StoreSuite) TestMaterializeOverwritesExistingGame() {
	s.store.InitGame(roomSID)
	s.addPlayers(roomSID, "Old")
	s.store.InitRoom(roomSID)
	s.store.AddRoomPlayer(roomSID, "New")

	g := s.store.MaterializeGame(roomSID)

	s.Equal([]string{"New"}, playerNames(g.Players))
	stored, _ := s.store.Game(roomSID)
	s.Equal([]string{"New"}, playerNames(stored.Players))
}

func (s *StoreSuite) TestMaterializedGameIsIndependentOfRoom() {
	s.store.InitRoom(roomSID)
	s.store.AddRoomPlayer(roomSID, "Ana")
	s.store.MaterializeGame(roomSID)

	s.store.AddRoomPlayer(roomSID, "Bea")
	g, _ := s.store.Game(roomSID)
	s.Equal([]string{"Ana"}, playerNames(g.Players))

	s.store.AddPlayer(roomSID, "Caio")
	r, _ := s.store.Room(roomSID)
	s.Equal([]string{"Ana", "Bea"}, playerNames(r.Players))
}

// Whole-store operations

func (s *StoreSuite) TestSnapshotRestoreRoundTrip() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana", "Bea", "Caio")
	s.store.SetTeamCount(gameSID, 3)
	s.store.SortTeams(gameSID)
	s.store.InitRoom(roomSID)
	s.store.AddRoomPlayer(roomSID, "Duda")
	before, _ := s.store.Game(gameSID)

	snap := s.store.Snapshot()
	s.store.Reset()
	games, rooms := s.store.Counts()
	s.Equal(0, games)
	s.Equal(0, rooms)

	s.store.Restore(snap)

	after, ok := s.store.Game(gameSID)
	s.Require().True(ok)
	s.Equal(before, after)
	r, ok := s.store.Room(roomSID)
	s.Require().True(ok)
	s.Equal([]string{"Duda"}, playerNames(r.Players))
}

func (s *StoreSuite) TestSnapshotIsDeepCopy() {
	s.store.InitGame(gameSID)
	s.addPlayers(gameSID, "Ana")

	snap := s.store.Snapshot()
	s.addPlayers(gameSID, "Bea")

	s.Len(snap.Games[gameSID].Players, 1)
}

func (s *StoreSuite) TestRestoreNilSnapshotIsNoOp() {
	s.store.InitGame(gameSID)
	s.store.Restore(nil)

	games, _ := s.store.Counts()
	s.Equal(1, games)
}

// Event stream

func (s *StoreSuite) TestMutationsPublishEvents() {
	s.store.InitGame(gameSID)
	players := s.addPlayers(gameSID, "Ana", "Bea")
	s.store.TogglePriority(gameSID, players[0].ID)
	s.store.ReorderPlayers(gameSID, 0, 1)
	s.store.SetTeamCount(gameSID, 3)
	s.store.SortTeams(gameSID)
	s.store.RemovePlayer(gameSID, players[1].ID)
	s.store.Reset()

	s.Equal([]model.EventType{
		model.EventSessionCreated,
		model.EventPlayerAdded,
		model.EventPlayerAdded,
		model.EventPriorityToggled,
		model.EventPlayersReordered,
		model.EventTeamCountChanged,
		model.EventStatusChanged,
		model.EventTeamsSorted,
		model.EventPlayerRemoved,
		model.EventStoreReset,
	}, s.events.types())
}

func (s *StoreSuite) TestEventsCarrySessionKind() {
	s.store.InitRoom(roomSID)
	s.store.AddRoomPlayer(roomSID, "Ana")

	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	s.Require().Len(s.events.events, 2)
	for _, ev := range s.events.events {
		s.Equal(model.KindRoom, ev.Kind)
		s.Equal(roomSID, ev.SessionID)
	}
}

// Concurrency

func (s *StoreSuite) TestConcurrentMutationsAreSerialized() {
	s.store.InitGame(gameSID)
	s.store.InitRoom(roomSID)

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := fmt.Sprintf("p-%d-%d", w, i)
				s.store.AddPlayer(gameSID, name)
				s.store.AddRoomPlayer(roomSID, name)
				s.store.SortTeams(gameSID)
				s.store.ReorderPlayers(gameSID, i, w)
			}
		}(w)
	}
	wg.Wait()

	g, _ := s.store.Game(gameSID)
	s.Len(g.Players, workers*perWorker)
	seen := map[model.PlayerID]bool{}
	for _, p := range g.Players {
		s.False(seen[p.ID])
		seen[p.ID] = true
	}

	r, _ := s.store.Room(roomSID)
	s.Len(r.Players, workers*perWorker)
}

func playerNames(players []model.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}
