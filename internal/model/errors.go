package model

import "errors"

// Error kinds. Every domain error below wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrAuthFailure  = errors.New("authentication failure")
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound       = newError(ErrNotFound, "Player not found")
	ErrNotRegistered        = newError(ErrAuthFailure, "Player not registered")
	ErrIncorrectCredentials = newError(ErrAuthFailure, "Incorrect password")
	ErrInvalidName          = newError(ErrInvalidInput, "Name must not be empty")

	// Room errors
	ErrRoomNotFound         = newError(ErrNotFound, "Room not found")
	ErrRoomFull             = newError(ErrConflict, "Room is full")
	ErrAlreadyInRoom        = newError(ErrConflict, "Player already in a room")
	ErrAlreadyInAnotherRoom = newError(ErrConflict, "Player already in another room")

	// Game errors
	ErrGameNotFound     = newError(ErrNotFound, "Game not found")
	ErrPlayerNotInGame  = newError(ErrNotFound, "Player not found in the game")
	ErrInvalidFleet     = newError(ErrInvalidInput, "Invalid ships configuration")
	ErrFleetLocked      = newError(ErrInvalidState, "Ships can only be placed before the game starts")
	ErrNotPlaying       = newError(ErrInvalidState, "Game is not in playing state")
	ErrNotYourTurn      = newError(ErrConflict, "Not your turn")
	ErrOutOfBounds      = newError(ErrInvalidInput, "Invalid coordinates")
	ErrAlreadyAttacked  = newError(ErrConflict, "Cell already attacked")
	ErrNoAvailableCells = newError(ErrInvalidState, "No available cells to attack")
)

// kindedError carries a client-facing message and unwraps to its kind
type kindedError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &kindedError{kind: kind, msg: msg}
}

func (e *kindedError) Error() string {
	return e.msg
}

func (e *kindedError) Unwrap() error {
	return e.kind
}

// KindOf returns the kind a domain error belongs to, or nil for unexpected errors
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalidState, ErrInvalidInput, ErrConflict, ErrAuthFailure} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns the client-facing text of a domain error, stripped of any
// wrapped detail, or "" if err is not a domain error
func Message(err error) string {
	var ke *kindedError
	if errors.As(err, &ke) {
		return ke.msg
	}
	return ""
}
