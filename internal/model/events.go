package model

import "time"

// SessionKind distinguishes the two session flavors carried by events.
type SessionKind string

const (
	KindGame SessionKind = "game"
	KindRoom SessionKind = "room"
)

// EventType identifies a state change in the session store.
type EventType string

const (
	EventSessionCreated   EventType = "session_created"
	EventPlayerAdded      EventType = "player_added"
	EventPlayerRemoved    EventType = "player_removed"
	EventPriorityToggled  EventType = "priority_toggled"
	EventPlayersReordered EventType = "players_reordered"
	EventTeamCountChanged EventType = "team_count_changed"
	EventStatusChanged    EventType = "status_changed"
	EventTeamsSorted      EventType = "teams_sorted"
	EventGameMaterialized EventType = "game_materialized"
	EventStoreRestored    EventType = "store_restored"
	EventStoreReset       EventType = "store_reset"
)

// Event describes a single state change. Events are emitted after the
// change is applied, outside the store lock.
type Event struct {
	Type      EventType
	Kind      SessionKind
	SessionID SessionID
	Timestamp time.Time
	Data      any
}

// Event data payloads. Data is nil for event types without one.

type PlayerAddedData struct {
	Player Player
}

type PlayerRemovedData struct {
	PlayerID PlayerID
}

type PriorityToggledData struct {
	PlayerID PlayerID
	Priority bool
}

type PlayersReorderedData struct {
	From int
	To   int
}

type TeamCountChangedData struct {
	TeamCount int
}

type StatusChangedData struct {
	Status Status
}

type TeamsSortedData struct {
	TeamCount int
	Status    Status
}

type GameMaterializedData struct {
	RoomID  SessionID
	Players int
}
