package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalid marks a malformed graph definition (unknown references,
	// duplicate names, missing paths).
	ErrInvalid = errors.New("invalid build graph")
	// ErrCycle marks a dependency cycle.
	ErrCycle = errors.New("dependency cycle detected")
)

// ConfigurationError reports a graph that cannot be built or traversed.
type ConfigurationError struct {
	Kind error
	Msg  string
	// Cycle holds the artifact paths of a detected cycle, first and last equal.
	Cycle []string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return e.Kind }

// Invalidf builds a ConfigurationError of kind ErrInvalid.
func Invalidf(format string, args ...any) error {
	return &ConfigurationError{Kind: ErrInvalid, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	return &ConfigurationError{
		Kind:  ErrCycle,
		Msg:   strings.Join(path, " -> "),
		Cycle: path,
	}
}
