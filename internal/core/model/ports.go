package model

import (
	"errors"
	"fmt"
)

// ErrMissingDependency indicates a panel controller was built without a required port.
var ErrMissingDependency = errors.New("missing dependency")

// MissingDependency wraps ErrMissingDependency with the name of the absent port.
func MissingDependency(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingDependency, name)
}

// Sound is a looping audible alert.
type Sound interface {
	Play() error
	Pause()
	Rewind()
	SetLoop(loop bool)
}
