package catalog

import "errors"

// Sentinel kinds for catalog load errors. These allow errors.Is/As from callers.
var (
	// ErrChargingTimeFormat marks a charging-time field whose hour or minute
	// component failed numeric parsing. Load treats this as fatal.
	ErrChargingTimeFormat = errors.New("malformed charging time")
)
