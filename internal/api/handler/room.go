package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cmarcal/futmeet-sub000/internal/api/request"
	"github.com/cmarcal/futmeet-sub000/internal/api/response"
	"github.com/cmarcal/futmeet-sub000/internal/model"
	"github.com/cmarcal/futmeet-sub000/internal/services/session"
	"github.com/cmarcal/futmeet-sub000/internal/share"
)

// RoomHandler handles waiting room endpoints
type RoomHandler struct {
	store        *session.Store
	shareService *share.Service
}

// NewRoomHandler creates a new waiting room handler
func NewRoomHandler(store *session.Store, shareService *share.Service) *RoomHandler {
	return &RoomHandler{
		store:        store,
		shareService: shareService,
	}
}

// Init handles PUT /api/v1/rooms/{sid}
func (h *RoomHandler) Init(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	room := h.store.InitRoom(sid)
	response.JSON(w, http.StatusOK, response.WaitingRoomFromModel(room))
}

// Get handles GET /api/v1/rooms/{sid}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	room, ok := h.store.Room(sid)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.WaitingRoomFromModel(room))
}

// AddPlayer handles POST /api/v1/rooms/{sid}/players
func (h *RoomHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := model.ValidatePlayerName(req.Name); err != nil {
		WriteError(w, err)
		return
	}

	p, ok := h.store.AddRoomPlayer(sid, req.Name)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// RemovePlayer handles DELETE /api/v1/rooms/{sid}/players/{player_id}
func (h *RoomHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if ok := h.store.RemoveRoomPlayer(sid, playerIDVar(r)); !ok {
		WriteError(w, h.lookupError(sid))
		return
	}

	response.NoContent(w)
}

// TogglePriority handles POST /api/v1/rooms/{sid}/players/{player_id}/priority
func (h *RoomHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, ok := h.store.ToggleRoomPriority(sid, playerIDVar(r))
	if !ok {
		WriteError(w, h.lookupError(sid))
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Reorder handles POST /api/v1/rooms/{sid}/players/reorder
func (h *RoomHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	players, ok := h.store.ReorderRoomPlayers(sid, req.From, req.To)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.Roster{Players: response.PlayersFromModel(players)})
}

// Materialize handles POST /api/v1/rooms/{sid}/materialize.
// It promotes the room roster into a full game session under the same id.
func (h *RoomHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g := h.store.MaterializeGame(sid)
	response.JSON(w, http.StatusCreated, response.GameSessionFromModel(g))
}

// Share handles GET /api/v1/rooms/{sid}/share
func (h *RoomHandler) Share(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	room, ok := h.store.Room(sid)
	if !ok {
		WriteError(w, model.ErrRoomNotFound)
		return
	}

	text := h.shareService.RoomSummary(room)
	response.JSON(w, http.StatusOK, response.Share{
		Text:        text,
		WhatsAppURL: h.shareService.WhatsAppURL(text),
	})
}

// lookupError distinguishes a missing room from a missing player after
// a player-scoped operation reported no match.
func (h *RoomHandler) lookupError(sid model.SessionID) error {
	if _, ok := h.store.Room(sid); !ok {
		return model.ErrRoomNotFound
	}
	return model.ErrPlayerNotFound
}
