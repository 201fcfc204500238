package usecase

import (
	"context"
	"fmt"
	"time"

	"KIndex/internal/calendar"
	"KIndex/internal/domain/models"
)

// Countdown drives the session clock. The initial state and the per-second
// tick both go through the same pure calendar computation, so the two
// execution contexts can never disagree. The tick loop recomputes from
// scratch on every iteration instead of decrementing a counter: clock drift
// and sleep gaps self-correct on the next read.
type Countdown struct {
	cal *calendar.Calendar
	now func() time.Time
}

func NewCountdown(cal *calendar.Calendar) *Countdown {
	return &Countdown{cal: cal, now: time.Now}
}

// State is the one-shot initial computation.
func (c *Countdown) State() (models.SessionState, error) {
	return c.cal.StateAt(c.now())
}

// Tick is one recomputation of the self-driving clock.
func (c *Countdown) Tick() (models.CountdownTick, error) {
	now := c.now()
	state, err := c.cal.StateAt(now)
	if err != nil {
		return models.CountdownTick{}, err
	}
	return models.CountdownTick{
		State:     state,
		Remaining: FormatRemaining(state.Boundary.Sub(now)),
		Now:       now,
	}, nil
}

// Run emits a tick immediately and then on every interval until the context
// is done or the calendar fails.
func (c *Countdown) Run(ctx context.Context, interval time.Duration, emit func(models.CountdownTick) error) error {
	tick, err := c.Tick()
	if err != nil {
		return err
	}
	if err := emit(tick); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			tick, err := c.Tick()
			if err != nil {
				return err
			}
			if err := emit(tick); err != nil {
				return err
			}
		}
	}
}

// FormatRemaining renders a duration as H:MM:SS, floored at zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
