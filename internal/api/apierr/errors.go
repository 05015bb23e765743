package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// APIError is the error payload returned to clients
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the top-level error response body
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes returned by the API
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidSessionID = "INVALID_SESSION_ID"
	CodeInvalidName      = "INVALID_NAME"
	CodeNameTooLong      = "NAME_TOO_LONG"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError pairs an API error with an HTTP status code
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response based on the error type
func WriteError(w http.ResponseWriter, err error) {
	httpErr := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: httpErr.apiError})
}

// toHTTPError maps domain errors to HTTP errors
func toHTTPError(err error) *httpError {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, model.ErrInvalidSessionID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSessionID, "Session id must be 21 alphanumeric characters"}}
	case errors.Is(err, model.ErrEmptyName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrNameInvalidChars):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player name contains forbidden characters"}}
	case errors.Is(err, model.ErrNameTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeNameTooLong, "Player name must be at most 50 characters"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Game session not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Waiting room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "An internal error occurred"}}
	}
}

// NewInvalidRequestError creates an invalid request error with a custom message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "An internal error occurred"}}
}
