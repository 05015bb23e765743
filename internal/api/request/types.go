package request

// AddPlayerRequest is the body for adding a player to a session
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// ReorderRequest is the body for moving a player within the roster.
// To is the index the player lands on after From is removed.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SetTeamCountRequest is the body for changing the number of teams.
// Count is a float so fractional values are accepted and rounded
// instead of failing to decode.
type SetTeamCountRequest struct {
	Count float64 `json:"count"`
}
