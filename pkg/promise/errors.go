package promise

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest wraps every input-validation failure so callers can map
// the whole class to a client error.
var ErrInvalidRequest = errors.New("invalid promise request")

// UnmetDesiredDateError is the STRICT_FAIL outcome: the raw promise is later
// than the desired date and the calculation is rejected as a whole. It
// carries the raw promise date, the lateness, and the options that would
// have been suggested, so a caller can render the conflict.
type UnmetDesiredDateError struct {
	PromiseDate time.Time
	DesiredDate time.Time
	DaysLate    int
	Options     []Option
}

func (e *UnmetDesiredDateError) Error() string {
	return fmt.Sprintf(
		"cannot meet desired delivery date %s: earliest possible promise is %s (%d day(s) late)",
		e.DesiredDate.Format("2006-01-02"), e.PromiseDate.Format("2006-01-02"), e.DaysLate)
}
