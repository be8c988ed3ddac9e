package tune

import "fmt"

// MissingInstanceError indicates that the engine referenced an instance
// index the dispatch layer could not resolve: the index is out of range,
// or the entry at that slot was registered under a different problem type.
// Either way it is a programming error on the host side; the error fails
// the single invocation that hit it.
type MissingInstanceError struct {
	Index int
	Tag   string
}

func (e *MissingInstanceError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("instance %d has unexpected type %s", e.Index, e.Tag)
	}
	return fmt.Sprintf("instance index %d out of range", e.Index)
}
