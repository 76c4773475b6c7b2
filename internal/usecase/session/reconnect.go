package session

import "time"

const defaultReconnectInterval = 5 * time.Second

// ReconnectPolicy controls how a dropped assistant channel is re-established.
// MaxAttempts of zero retries forever.
type ReconnectPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Interval:    defaultReconnectInterval,
		MaxAttempts: 0,
	}
}
