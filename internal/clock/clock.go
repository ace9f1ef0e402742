package clock

import "time"

// Clock supplies the current time to handlers that need a now_ts.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// UnixSeconds converts the clock reading into the ledger's timestamp unit.
func UnixSeconds(c Clock) uint64 {
	ts := c.Now().Unix()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}
