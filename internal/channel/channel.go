// Package channel provides the bidirectional message channel to the assistant
// backend. The transport is message-framed; frame contents are owned by the
// entity package.
package channel

import "context"

// Channel is one live connection to the assistant backend. Receive blocks
// until a frame arrives or the connection dies; a dead channel returns an
// error from both methods and must be replaced by dialing again.
type Channel interface {
	Send(ctx context.Context, payload any) error
	Receive() ([]byte, error)
	Close() error
}

// Dialer opens channels. Exactly one channel per session is live at a time;
// callers close the old one before dialing a replacement.
type Dialer interface {
	Dial(ctx context.Context) (Channel, error)
}
