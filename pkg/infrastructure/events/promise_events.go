package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/promise"
)

// Event types emitted by the promise service.
const (
	EventTypePromiseCalculated  = "promise.calculated"
	EventTypePromiseRejected    = "promise.rejected"
	EventTypeShortageIdentified = "shortage.identified"
)

// PromiseCalculatedData records a successful promise calculation.
type PromiseCalculatedData struct {
	Customer    string             `json:"customer"`
	PromiseDate time.Time          `json:"promise_date"`
	Confidence  promise.Confidence `json:"confidence"`
	ItemCount   int                `json:"item_count"`
	OnTime      *bool              `json:"on_time,omitempty"`
}

// PromiseRejectedData records a calculation that failed to satisfy the
// customer's desired date under STRICT_FAIL.
type PromiseRejectedData struct {
	Customer    string    `json:"customer"`
	PromiseDate time.Time `json:"promise_date"`
	DesiredDate time.Time `json:"desired_date"`
	DaysLate    int       `json:"days_late"`
	OptionCount int       `json:"option_count"`
}

// ShortageIdentifiedData records an item that could not be fully covered by
// stock and incoming supply.
type ShortageIdentifiedData struct {
	Customer  string           `json:"customer"`
	ItemCode  promise.ItemCode `json:"item_code"`
	Requested decimal.Decimal  `json:"requested"`
	Shortage  decimal.Decimal  `json:"shortage"`
}

// NewPromiseCalculatedEvent builds a promise.calculated event on the
// customer's stream.
func NewPromiseCalculatedEvent(result *promise.Result) Event {
	return NewEvent(EventTypePromiseCalculated, result.Customer, PromiseCalculatedData{
		Customer:    result.Customer,
		PromiseDate: result.PromiseDate,
		Confidence:  result.Confidence,
		ItemCount:   len(result.Plan),
		OnTime:      result.OnTime,
	})
}

// NewPromiseRejectedEvent builds a promise.rejected event from a strict-mode
// failure.
func NewPromiseRejectedEvent(customer string, unmet *promise.UnmetDesiredDateError) Event {
	return NewEvent(EventTypePromiseRejected, customer, PromiseRejectedData{
		Customer:    customer,
		PromiseDate: unmet.PromiseDate,
		DesiredDate: unmet.DesiredDate,
		DaysLate:    unmet.DaysLate,
		OptionCount: len(unmet.Options),
	})
}

// NewShortageIdentifiedEvent builds a shortage.identified event for one
// short item on the customer's stream.
func NewShortageIdentifiedEvent(customer string, plan promise.ItemPlan) Event {
	return NewEvent(EventTypeShortageIdentified, customer, ShortageIdentifiedData{
		Customer:  customer,
		ItemCode:  plan.ItemCode,
		Requested: plan.QtyRequired,
		Shortage:  plan.Shortage,
	})
}
