package services

import "context"

// Existence is the tri-state outcome of a user-existence check. Absent
// means the user registry positively reported no such user; Unknown means
// the check could not be completed (unreachable dependency, timeout, or a
// non-committal response) and proves nothing either way.
type Existence int

const (
	ExistenceConfirmed Existence = iota
	ExistenceAbsent
	ExistenceUnknown
)

// UserVerifier confirms whether a user exists in the user registry. A
// single bounded attempt per call; retry and circuit-breaking strategies
// layer on top of this interface without touching order-creation logic.
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID string) Existence
}
