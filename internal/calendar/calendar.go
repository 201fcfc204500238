package calendar

import (
	"errors"
	"fmt"
	"time"

	"KIndex/internal/domain/models"
	"KIndex/pkg/util"
)

// maxForwardWalk bounds the next-trading-day search so a misconfigured
// holiday window cannot spin forever.
const maxForwardWalk = 370

// ErrExhausted signals the forward walk ran out of iterations. This is a
// configuration-level failure and must be surfaced, not defaulted away.
var ErrExhausted = errors.New("calendar: next trading day search exhausted")

// Calendar answers trading-day and session-boundary questions. It is pure:
// no I/O, no clock reads. Both the one-shot session computation and the
// per-second tick loop call the same methods so they agree bit-for-bit.
type Calendar struct {
	loc              *time.Location
	openH, openM     int
	closeH, closeM   int
	holidays         map[string]struct{}
}

// New builds a calendar for the given HH:MM open/close and extra holiday
// dates (YYYY-MM-DD), merged with the built-in multi-year window.
func New(open, close string, extraHolidays []string) (*Calendar, error) {
	ot, err := time.Parse("15:04", open)
	if err != nil {
		return nil, fmt.Errorf("parse open: %w", err)
	}
	ct, err := time.Parse("15:04", close)
	if err != nil {
		return nil, fmt.Errorf("parse close: %w", err)
	}

	holidays := make(map[string]struct{}, len(krHolidays)+len(extraHolidays))
	for _, d := range krHolidays {
		holidays[d] = struct{}{}
	}
	for _, d := range extraHolidays {
		holidays[d] = struct{}{}
	}

	return &Calendar{
		loc:      util.Seoul,
		openH:    ot.Hour(),
		openM:    ot.Minute(),
		closeH:   ct.Hour(),
		closeM:   ct.Minute(),
		holidays: holidays,
	}, nil
}

// IsTradingDay reports whether t's date is a weekday that is not a holiday.
func (c *Calendar) IsTradingDay(t time.Time) bool {
	t = t.In(c.loc)
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}

// OpenAt returns the session open instant on t's date.
func (c *Calendar) OpenAt(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), c.openH, c.openM, 0, 0, c.loc)
}

// CloseAt returns the session close instant on t's date.
func (c *Calendar) CloseAt(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), c.closeH, c.closeM, 0, 0, c.loc)
}

// NextOpen returns the open instant of the next trading day strictly after
// now, walking forward day-by-day.
func (c *Calendar) NextOpen(now time.Time) (time.Time, error) {
	now = now.In(c.loc)
	day := now
	for i := 0; i < maxForwardWalk; i++ {
		if c.IsTradingDay(day) {
			open := c.OpenAt(day)
			if open.After(now) {
				return open, nil
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, ErrExhausted
}

// StateAt computes the session phase and countdown boundary for an instant.
// The session interval is half-open [open, close): at the close instant the
// phase is already closed and the boundary is the next trading day's open.
func (c *Calendar) StateAt(now time.Time) (models.SessionState, error) {
	now = now.In(c.loc)
	if c.IsTradingDay(now) {
		open := c.OpenAt(now)
		close := c.CloseAt(now)
		if !now.Before(open) && now.Before(close) {
			return models.SessionState{
				Phase:    models.PhaseOpen,
				Boundary: close,
				Label:    "close",
			}, nil
		}
	}
	open, err := c.NextOpen(now)
	if err != nil {
		return models.SessionState{}, err
	}
	return models.SessionState{
		Phase:    models.PhaseClosed,
		Boundary: open,
		Label:    "open",
	}, nil
}

// SessionMinutes returns the configured open and close as HH:MM labels, the
// same strings the canonical grid is built from.
func (c *Calendar) SessionMinutes() (string, string) {
	return fmt.Sprintf("%02d:%02d", c.openH, c.openM), fmt.Sprintf("%02d:%02d", c.closeH, c.closeM)
}
