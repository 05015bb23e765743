// Package handler implements the HTTP handlers for the FutMeet API.
package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// sessionIDVar extracts and validates the {sid} path variable
func sessionIDVar(r *http.Request) (model.SessionID, error) {
	raw := mux.Vars(r)["sid"]
	if err := model.ValidateSessionID(raw); err != nil {
		return "", err
	}
	return model.SessionID(raw), nil
}

// playerIDVar extracts the {player_id} path variable. Unknown ids are
// not an error here; they surface as a 404 from the store lookup.
func playerIDVar(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["player_id"])
}
