package model

import (
	"fmt"
	"strings"
)

const (
	// SessionIDLength is the exact length of client-generated session ids.
	SessionIDLength = 21

	// SessionIDAlphabet holds the characters clients may use in session ids.
	SessionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// MaxNameLength is the longest player name accepted after trimming.
	MaxNameLength = 50
)

// ValidateSessionID checks that an id is exactly SessionIDLength
// alphanumeric characters. Ids are minted by clients, so the server
// only ever validates them.
func ValidateSessionID(raw string) error {
	if len(raw) != SessionIDLength {
		return fmt.Errorf("%w: must be %d characters, got %d", ErrInvalidSessionID, SessionIDLength, len(raw))
	}
	for _, c := range raw {
		if !isAlphanumeric(c) {
			return fmt.Errorf("%w: character %q is not alphanumeric", ErrInvalidSessionID, c)
		}
	}
	return nil
}

// ValidatePlayerName checks a raw player name as submitted. The name is
// trimmed before checking, matching how it will be stored.
func ValidatePlayerName(raw string) error {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d characters, maximum is %d", ErrNameTooLong, len(name), MaxNameLength)
	}
	if strings.ContainsAny(name, "<>") {
		return fmt.Errorf("%w: angle brackets are not allowed", ErrNameInvalidChars)
	}
	return nil
}

func isAlphanumeric(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
