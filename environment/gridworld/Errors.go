package gridworld

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every error caused by an invalid
// grid or invalid training parameters. Such errors are fatal and
// prevent training from starting.
var ErrConfiguration = errors.New("configuration error")

// OutOfBoundsError is returned when a cell outside of the grid is
// accessed. Inside the learning engine it indicates a bug.
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position [%d,%d] out of bounds for %dx%d grid",
		e.Row, e.Col, e.Rows, e.Cols)
}

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
