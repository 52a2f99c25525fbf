package services

import "errors"

// Domain errors returned by the services. Handlers translate these into
// HTTP statuses with errors.Is; no other layer inspects error text.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrUserUnverified = errors.New("user existence could not be verified")
)
