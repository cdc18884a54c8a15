package promise

import (
	"fmt"
	"time"
)

// ruleClock carries the parsed cutoff clock and timezone for one calculation.
// Both are validated before planning begins, so adjustment never fails.
type ruleClock struct {
	loc    *time.Location
	hour   int
	minute int
	active bool
}

func newRuleClock(rules *Rules) (ruleClock, error) {
	if rules.CutoffTime == "" {
		return ruleClock{}, nil
	}

	var hour, minute int
	if _, err := fmt.Sscanf(rules.CutoffTime, "%d:%d", &hour, &minute); err != nil {
		return ruleClock{}, fmt.Errorf("invalid cutoff_time %q: expected HH:MM", rules.CutoffTime)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ruleClock{}, fmt.Errorf("invalid cutoff_time %q: expected HH:MM", rules.CutoffTime)
	}

	loc := time.UTC
	if rules.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(rules.Timezone)
		if err != nil {
			return ruleClock{}, fmt.Errorf("invalid timezone %q: %w", rules.Timezone, err)
		}
	}

	return ruleClock{loc: loc, hour: hour, minute: minute, active: true}, nil
}

// pastCutoff reports whether the order was placed at or after the daily
// cutoff, compared as time-of-day in the configured zone.
func (c ruleClock) pastCutoff(placedAt time.Time) bool {
	if !c.active {
		return false
	}
	local := placedAt.In(c.loc)
	return local.Hour() > c.hour || (local.Hour() == c.hour && local.Minute() >= c.minute)
}

// adjustShipReady turns a raw ship-ready date into a business-adjusted
// promise date. Steps run in fixed order: buffer days, cutoff rollover,
// weekend avoidance. Each applied step appends a reason; the result is never
// earlier than the input.
func adjustShipReady(base time.Time, rules *Rules, placedAt time.Time, clock ruleClock) (time.Time, []string) {
	var reasons []string
	date := base

	if rules.LeadTimeBufferDays > 0 {
		date = addDays(date, rules.LeadTimeBufferDays)
		reasons = append(reasons, fmt.Sprintf("Added %d day(s) lead time buffer", rules.LeadTimeBufferDays))
	}

	if clock.pastCutoff(placedAt) {
		date = addDays(date, 1)
		reasons = append(reasons, fmt.Sprintf("Order placed at or after the %s cutoff; added 1 day", rules.CutoffTime))
	}

	if rules.NoWeekends {
		rolled := skipWeekend(date)
		if !rolled.Equal(date) {
			reasons = append(reasons, fmt.Sprintf("Weekend delivery avoided; moved to %s", rolled.Format("2006-01-02")))
			date = rolled
		}
	}

	return date, reasons
}

// skipWeekend rolls a Saturday or Sunday forward to the following Monday.
// It only ever moves a date forward.
func skipWeekend(date time.Time) time.Time {
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = addDays(date, 1)
	}
	return date
}
