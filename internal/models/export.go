package models

import (
	"errors"
	"time"
)

// ErrUnknownField is returned when a caller requests a field name that an
// entity's structured export does not define.
var ErrUnknownField = errors.New("unknown field")

// epoch renders a timestamp the way exports carry it: seconds since the Unix
// epoch, fractional.
func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
