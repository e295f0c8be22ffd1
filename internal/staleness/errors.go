package staleness

import (
	"errors"
	"fmt"
)

// ErrMissingSource is the kind wrapped by every MissingSourceError.
var ErrMissingSource = errors.New("missing source file")

// MissingSourceError reports a leaf artifact that does not exist on disk and
// therefore cannot be regenerated.
type MissingSourceError struct {
	Path string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingSource, e.Path)
}

func (e *MissingSourceError) Unwrap() error { return ErrMissingSource }
