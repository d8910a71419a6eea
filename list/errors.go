package list

import "errors"

var (
	// ErrNilSequence is returned by SetSequence when the caller passes a nil
	// slice. Callers must supply at least an empty sequence so that "no data
	// yet" and "empty result" stay distinguishable.
	ErrNilSequence = errors.New("list: nil sequence")
)
