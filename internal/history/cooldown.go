package history

import "time"

// LineClearCooldown is how long drag-paint input is ignored after an
// automatic line clear. A clear moves rows under the pointer, so targets from
// the ongoing gesture would land on the wrong cells.
const LineClearCooldown = 250 * time.Millisecond

// Cooldown is a deadline compared against a clock. A zero Cooldown is inactive.
type Cooldown struct {
	until time.Time
	now   func() time.Time
}

func NewCooldown(now func() time.Time) *Cooldown {
	if now == nil {
		now = time.Now
	}
	return &Cooldown{now: now}
}

func (c *Cooldown) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Start (re)arms the cooldown for d from now.
func (c *Cooldown) Start(d time.Duration) {
	c.until = c.clock().Add(d)
}

func (c *Cooldown) Active() bool {
	if c.until.IsZero() {
		return false
	}
	return c.clock().Before(c.until)
}
