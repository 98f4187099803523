package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks persistence-layer failures (disk, corruption).
// Callers backing safety-critical lookups treat it as "return empty",
// never as a reason to crash; consumers can detect it with errors.Is and
// prompt for a data reimport.
var ErrUnavailable = errors.New("store unavailable")

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
