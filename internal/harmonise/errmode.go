package harmonise

import (
	"errors"
	"fmt"
)

// ErrorMode controls what happens when a harmonisation step fails:
// conversion errors are ignored, logged as warnings, or returned as errors.
type ErrorMode int

const (
	// Warn logs failures and continues. This is the default.
	Warn ErrorMode = iota
	// Raise stops at the first failure.
	Raise
	// Ignore silently continues.
	Ignore
)

// ParseErrorMode parses an error mode name.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "warn":
		return Warn, nil
	case "raise":
		return Raise, nil
	case "ignore":
		return Ignore, nil
	}
	return Warn, fmt.Errorf("unknown error mode %q, options are: warn, raise, ignore", s)
}

func (m ErrorMode) String() string {
	switch m {
	case Raise:
		return "raise"
	case Ignore:
		return "ignore"
	}
	return "warn"
}

// handle dispatches a failure according to the error mode. warnExtra is
// only appended to warning messages.
func (o Options) handle(message string, cause error, warnExtra string) error {
	switch o.Mode {
	case Ignore:
		return nil
	case Raise:
		if cause != nil {
			return fmt.Errorf("%s: %w", message, cause)
		}
		return errors.New(message)
	default:
		if warnExtra != "" {
			message = message + ", " + warnExtra
		}
		if cause != nil {
			o.logger().Warn(message, "cause", cause)
		} else {
			o.logger().Warn(message)
		}
		return nil
	}
}
