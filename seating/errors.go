package seating

import "errors"

var (
	// ErrInvalidArgument is returned for a malformed seat count or seat list.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientCapacity is returned when fewer seats are available than requested.
	ErrInsufficientCapacity = errors.New("not enough seats available")
)
