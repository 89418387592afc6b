package service

import "time"

// TimeRemaining breaks the time until the ban deadline into display units.
// Total is the remaining whole seconds; zero once the deadline passes.
type TimeRemaining struct {
	Days    int   `json:"days"`
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	Total   int64 `json:"total"`
}

// Countdown computes time remaining until the campaign deadline. Each call
// recomputes from wall-clock now, so there is no drift to accumulate no
// matter how often or irregularly it is polled.
type Countdown struct {
	deadline time.Time
	now      func() time.Time
}

// NewCountdown creates a Countdown targeting the given deadline.
func NewCountdown(deadline time.Time) *Countdown {
	return &Countdown{deadline: deadline, now: time.Now}
}

// Remaining returns the time left until the deadline, clamped to zero
// after it passes.
func (c *Countdown) Remaining() TimeRemaining {
	total := c.deadline.Sub(c.now())
	if total <= 0 {
		return TimeRemaining{}
	}

	seconds := int64(total.Seconds())
	return TimeRemaining{
		Days:    int(seconds / 86400),
		Hours:   int(seconds / 3600 % 24),
		Minutes: int(seconds / 60 % 60),
		Seconds: int(seconds % 60),
		Total:   seconds,
	}
}
