package promise

import (
	"fmt"
	"time"
)

// outcome is the result of reconciling a raw promise against a desired date.
// Reconciliation derives the final date; it never mutates the raw one.
type outcome struct {
	final    time.Time
	onTime   bool
	adjusted bool
	late     bool
	reasons  []string
}

// reconciler is one desired-date interpretation. All modes share the same
// (raw, desired) contract so a new mode never changes callers. The options
// callback is evaluated only on the late paths that surface options.
type reconciler interface {
	reconcile(raw, desired time.Time, options func() []Option) (outcome, error)
}

func reconcilerFor(mode DesiredDateMode) (reconciler, error) {
	switch mode {
	case LatestAcceptable, "":
		return latestAcceptable{}, nil
	case StrictFail:
		return strictFail{}, nil
	case NoEarlyDelivery:
		return noEarlyDelivery{}, nil
	default:
		return nil, fmt.Errorf("unknown desired_date_mode %q", mode)
	}
}

// latestAcceptable treats the desired date as an upper bound: the final date
// is always the raw date, and a miss is reported rather than rejected.
type latestAcceptable struct{}

func (latestAcceptable) reconcile(raw, desired time.Time, _ func() []Option) (outcome, error) {
	out := outcome{final: raw, onTime: !raw.After(desired)}
	if !out.onTime {
		out.late = true
		out.reasons = append(out.reasons, fmt.Sprintf(
			"Promise misses desired date %s by %d day(s)",
			desired.Format("2006-01-02"), daysBetween(desired, raw)))
	}
	return out, nil
}

// strictFail rejects the calculation outright when the raw promise is later
// than the desired date. The failure carries the diagnostic payload a caller
// needs to surface the conflict.
type strictFail struct{}

func (strictFail) reconcile(raw, desired time.Time, options func() []Option) (outcome, error) {
	if raw.After(desired) {
		return outcome{}, &UnmetDesiredDateError{
			PromiseDate: raw,
			DesiredDate: desired,
			DaysLate:    daysBetween(desired, raw),
			Options:     options(),
		}
	}
	return outcome{final: raw, onTime: true}, nil
}

// noEarlyDelivery delays an early promise to land exactly on the desired
// date. It only suppresses early delivery; a late promise stays late.
type noEarlyDelivery struct{}

func (noEarlyDelivery) reconcile(raw, desired time.Time, _ func() []Option) (outcome, error) {
	if raw.Before(desired) {
		return outcome{
			final:    desired,
			onTime:   true,
			adjusted: true,
			reasons: []string{fmt.Sprintf(
				"Can deliver earlier (%s); delivery held until requested date %s",
				raw.Format("2006-01-02"), desired.Format("2006-01-02"))},
		}, nil
	}

	out := outcome{final: raw, onTime: !raw.After(desired)}
	if !out.onTime {
		out.late = true
		out.reasons = append(out.reasons, fmt.Sprintf(
			"Promise misses desired date %s by %d day(s)",
			desired.Format("2006-01-02"), daysBetween(desired, raw)))
	}
	return out, nil
}
