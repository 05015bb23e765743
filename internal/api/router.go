package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cmarcal/futmeet-sub000/internal/api/apierr"
	"github.com/cmarcal/futmeet-sub000/internal/api/handler"
	"github.com/cmarcal/futmeet-sub000/internal/middleware"
	"github.com/cmarcal/futmeet-sub000/internal/services/session"
	"github.com/cmarcal/futmeet-sub000/internal/share"
)

// RouterConfig holds the dependencies for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Store        *session.Store
	ShareService *share.Service
}

// NewRouter creates the API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.Store, cfg.ShareService)
	roomHandler := handler.NewRoomHandler(cfg.Store, cfg.ShareService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, panicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("/{sid}", gameHandler.Init).Methods(http.MethodPut)
	games.HandleFunc("/{sid}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{sid}/players", gameHandler.AddPlayer).Methods(http.MethodPost)
	// reorder must be registered before the {player_id} routes
	games.HandleFunc("/{sid}/players/reorder", gameHandler.Reorder).Methods(http.MethodPost)
	games.HandleFunc("/{sid}/players/{player_id}", gameHandler.RemovePlayer).Methods(http.MethodDelete)
	games.HandleFunc("/{sid}/players/{player_id}/priority", gameHandler.TogglePriority).Methods(http.MethodPost)
	games.HandleFunc("/{sid}/team-count", gameHandler.SetTeamCount).Methods(http.MethodPatch)
	games.HandleFunc("/{sid}/sort", gameHandler.Sort).Methods(http.MethodPost)
	games.HandleFunc("/{sid}/share", gameHandler.Share).Methods(http.MethodGet)

	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.HandleFunc("/{sid}", roomHandler.Init).Methods(http.MethodPut)
	rooms.HandleFunc("/{sid}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{sid}/players", roomHandler.AddPlayer).Methods(http.MethodPost)
	rooms.HandleFunc("/{sid}/players/reorder", roomHandler.Reorder).Methods(http.MethodPost)
	rooms.HandleFunc("/{sid}/players/{player_id}", roomHandler.RemovePlayer).Methods(http.MethodDelete)
	rooms.HandleFunc("/{sid}/players/{player_id}/priority", roomHandler.TogglePriority).Methods(http.MethodPost)
	rooms.HandleFunc("/{sid}/materialize", roomHandler.Materialize).Methods(http.MethodPost)
	rooms.HandleFunc("/{sid}/share", roomHandler.Share).Methods(http.MethodGet)

	return r
}

// healthHandler handles GET /api/v1/health
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// panicHandler reports a recovered panic as an internal error
func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
