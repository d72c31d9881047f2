package tier

// Controller tracks the difficulty level of one session.
// The level only rises: a lower count never brings it back down.
type Controller struct {
	Ladder Ladder
	Level  int // current tier
}

// NewController creates a controller positioned at the ladder's first tier.
func NewController(l Ladder) *Controller {
	c := &Controller{Ladder: l}
	c.Reset()
	return c
}

// Observe feeds the current progress count (successes or completed rounds)
// and returns the resulting level.
func (c *Controller) Observe(n int) int {
	if t := c.Ladder.TierFor(n); t > c.Level {
		c.Level = t
	}
	return c.Level
}

// Reset returns the controller to the entry tier for a new session.
func (c *Controller) Reset() {
	c.Level = c.Ladder.TierFor(0)
}
