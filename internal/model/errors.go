package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrGameNotFound   = errors.New("game session not found")
	ErrRoomNotFound   = errors.New("waiting room not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Boundary validation errors
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNameTooLong      = errors.New("name exceeds maximum length")
	ErrNameInvalidChars = errors.New("name contains forbidden characters")

	// Cache errors
	ErrCacheMiss    = errors.New("no cached snapshot")
	ErrCacheCorrupt = errors.New("cached snapshot is corrupt")
)
