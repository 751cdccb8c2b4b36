package airport

import (
	"errors"
)

var (
	ErrForeignReservation  = errors.New("reservation belongs to another airport")
	ErrInvalidReservation  = errors.New("invalid reservation")
	ErrNilAircraft         = errors.New("nil aircraft")
	ErrRefillTimerNegative = errors.New("refill timer is negative")
	ErrStaleReservation    = errors.New("stale reservation")
	ErrTerminalNotOccupied = errors.New("terminal is not occupied")
	ErrTerminalOccupied    = errors.New("terminal is already occupied")
	ErrTerminalOutOfRange  = errors.New("terminal index out of range")
)
