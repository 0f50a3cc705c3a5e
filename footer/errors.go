package footer

import "errors"

var (
	// ErrUnavailable wraps every reason the fetched fragment could not be
	// used: transport failure, unreadable body, strict status rejection.
	ErrUnavailable = errors.New("footer fragment unavailable or malformed")

	// ErrEmptyFragment is wrapped when a source returns no fragment and
	// no error.
	ErrEmptyFragment = errors.New("source returned no fragment")
)
