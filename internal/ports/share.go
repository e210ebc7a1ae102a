package ports

import (
	"context"
	"errors"
)

// ErrShareUnavailable means the surface does not exist on this platform.
// It is a normal branch, not a failure.
var ErrShareUnavailable = errors.New("share surface unavailable")

// ShareMessage is what gets sent to a friend.
type ShareMessage struct {
	Title string
	Text  string
}

// Sharer delivers a message through one surface (native share sheet,
// clipboard, ...).
type Sharer interface {
	Share(ctx context.Context, msg ShareMessage) error
}
