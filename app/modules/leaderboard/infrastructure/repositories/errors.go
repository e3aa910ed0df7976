package leaderboarddb

import "errors"

// Sentinel errors for the leader repository layer. These indicate
// infrastructure-level outcomes (presence/absence of rows), not domain
// validation failures; the service layer decides how to surface them.
var (
	// ErrNotFound indicates the requested leader row does not exist.
	ErrNotFound = errors.New("leader not found")

	// ErrUsernameTaken indicates a write collided with the unique
	// constraint on username.
	ErrUsernameTaken = errors.New("username already taken")
)
