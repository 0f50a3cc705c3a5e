package fragment

import "errors"

var (
	// ErrStatus is returned by CheckStatus for non-2xx responses.
	ErrStatus = errors.New("fragment: non-success status")

	// ErrTooLarge is returned when a fragment body exceeds the read cap.
	ErrTooLarge = errors.New("fragment: body too large")

	// ErrEmptyRef is returned by Resolve for an empty reference.
	ErrEmptyRef = errors.New("fragment: empty reference")
)
