package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned for navigation outside the catalog,
	// including any navigation while the catalog is empty.
	ErrInvalidIndex = errors.New("invalid page index")

	// ErrPlaybackRejected is reported when the output declined to start,
	// typically until a user gesture. The engine stays ReadyPaused.
	ErrPlaybackRejected = errors.New("playback rejected")

	// ErrInvalidRepeatMode is returned by SetRepeatMode for unknown modes.
	ErrInvalidRepeatMode = errors.New("invalid repeat mode")
)

// IndexError describes a rejected navigation request.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("page index %d: catalog is empty", e.Index)
	}
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// RejectedError wraps the output's reason for refusing to play.
type RejectedError struct {
	Index int
	Err   error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("playback of page index %d rejected: %v", e.Index, e.Err)
}

func (e *RejectedError) Is(target error) bool { return target == ErrPlaybackRejected }

func (e *RejectedError) Unwrap() error { return e.Err }

// MediaError is a decode or network failure on the active resource.
type MediaError struct {
	Index int
	Ref   string
	Err   error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media error on %s: %v", e.Ref, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }
