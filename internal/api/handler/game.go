package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/cmarcal/futmeet-sub000/internal/api/request"
	"github.com/cmarcal/futmeet-sub000/internal/api/response"
	"github.com/cmarcal/futmeet-sub000/internal/model"
	"github.com/cmarcal/futmeet-sub000/internal/services/session"
	"github.com/cmarcal/futmeet-sub000/internal/share"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	store        *session.Store
	shareService *share.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(store *session.Store, shareService *share.Service) *GameHandler {
	return &GameHandler{
		store:        store,
		shareService: shareService,
	}
}

// Init handles PUT /api/v1/games/{sid}
func (h *GameHandler) Init(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g := h.store.InitGame(sid)
	response.JSON(w, http.StatusOK, response.GameSessionFromModel(g))
}

// Get handles GET /api/v1/games/{sid}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, ok := h.store.Game(sid)
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSessionFromModel(g))
}

// AddPlayer handles POST /api/v1/games/{sid}/players
func (h *GameHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
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

	p, ok := h.store.AddPlayer(sid, req.Name)
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// RemovePlayer handles DELETE /api/v1/games/{sid}/players/{player_id}
func (h *GameHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if ok := h.store.RemovePlayer(sid, playerIDVar(r)); !ok {
		WriteError(w, h.lookupError(sid))
		return
	}

	response.NoContent(w)
}

// TogglePriority handles POST /api/v1/games/{sid}/players/{player_id}/priority
func (h *GameHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	p, ok := h.store.TogglePriority(sid, playerIDVar(r))
	if !ok {
		WriteError(w, h.lookupError(sid))
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Reorder handles POST /api/v1/games/{sid}/players/reorder
func (h *GameHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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

	players, ok := h.store.ReorderPlayers(sid, req.From, req.To)
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.Roster{Players: response.PlayersFromModel(players)})
}

// SetTeamCount handles PATCH /api/v1/games/{sid}/team-count
func (h *GameHandler) SetTeamCount(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetTeamCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	count, ok := h.store.SetTeamCount(sid, int(math.Round(req.Count)))
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamCount{TeamCount: count})
}

// Sort handles POST /api/v1/games/{sid}/sort
func (h *GameHandler) Sort(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	teams, ok := h.store.SortTeams(sid)
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.SortResult{
		Status: string(model.StatusComplete),
		Teams:  response.TeamsFromModel(teams),
	})
}

// Share handles GET /api/v1/games/{sid}/share
func (h *GameHandler) Share(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, ok := h.store.Game(sid)
	if !ok {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	text := h.shareService.Summary(g)
	response.JSON(w, http.StatusOK, response.Share{
		Text:        text,
		WhatsAppURL: h.shareService.WhatsAppURL(text),
	})
}

// lookupError distinguishes a missing game from a missing player after
// a player-scoped operation reported no match.
func (h *GameHandler) lookupError(sid model.SessionID) error {
	if _, ok := h.store.Game(sid); !ok {
		return model.ErrGameNotFound
	}
	return model.ErrPlayerNotFound
}
