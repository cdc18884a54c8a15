package promise

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCode represents a unique selling-item identifier
type ItemCode string

// SourceType tags the origin of a fulfillment allocation
type SourceType string

const (
	// SourceStock marks quantity drawn from on-hand stock
	SourceStock SourceType = "stock"
	// SourceIncomingSupply marks quantity drawn from an incoming purchase order
	SourceIncomingSupply SourceType = "incoming_supply"
)

// Confidence is a three-level qualitative indicator of supply certainty
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// DesiredDateMode selects how a computed promise is reconciled against the
// customer's requested delivery date
type DesiredDateMode string

const (
	// LatestAcceptable treats the desired date as an upper bound; a later
	// promise is reported late but still returned.
	LatestAcceptable DesiredDateMode = "LATEST_ACCEPTABLE"
	// StrictFail rejects the whole calculation when the promise misses the
	// desired date.
	StrictFail DesiredDateMode = "STRICT_FAIL"
	// NoEarlyDelivery delays an early promise to land exactly on the desired
	// date; it never helps a late promise.
	NoEarlyDelivery DesiredDateMode = "NO_EARLY_DELIVERY"
)

// Option type tags, emitted in this priority order when a promise is late.
const (
	OptionSplitShipment   = "split_shipment"
	OptionExpediteSupply  = "expedite_supply"
	OptionAlternateSource = "alternate_source"
)

// ItemRequest is a single requested line on a promise calculation
type ItemRequest struct {
	ItemCode  ItemCode        `json:"item_code"`
	Qty       decimal.Decimal `json:"qty"`
	Warehouse string          `json:"warehouse,omitempty"`
}

// StockRecord is current on-hand availability for an item in a warehouse,
// as of the calculation's "today"
type StockRecord struct {
	ItemCode     ItemCode
	Warehouse    string
	AvailableQty decimal.Decimal
}

// SupplyRecord is an incoming purchase-order line expected on a future date
type SupplyRecord struct {
	ItemCode     ItemCode
	SourceID     string
	Qty          decimal.Decimal
	ExpectedDate time.Time
	Warehouse    string
}

// FulfillmentSource is one allocation unit inside an item plan. ShipReadyDate
// is the availability date plus the resolved processing lead time and is
// never earlier than AvailableDate.
type FulfillmentSource struct {
	Source        SourceType      `json:"source"`
	Qty           decimal.Decimal `json:"qty"`
	AvailableDate time.Time       `json:"available_date"`
	ShipReadyDate time.Time       `json:"ship_ready_date"`
	Warehouse     string          `json:"warehouse,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
}

// ItemPlan is the fulfillment plan for a single requested item. The source
// quantities plus Shortage always sum to QtyRequired.
type ItemPlan struct {
	ItemCode    ItemCode            `json:"item_code"`
	QtyRequired decimal.Decimal     `json:"qty_required"`
	Fulfillment []FulfillmentSource `json:"fulfillment"`
	Shortage    decimal.Decimal     `json:"shortage"`
}

// Option is an advisory alternative scenario for a late promise. Options are
// never applied by the engine; feasibility is the caller's to verify.
type Option struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	SourceID    string `json:"source_id,omitempty"`
}

// Rules carries the business-rule configuration for one calculation.
// ProcessingLeadTimeDays is a pointer so an unset value falls through to the
// system default in the lead-time hierarchy.
type Rules struct {
	NoWeekends             bool            `json:"no_weekends" yaml:"no_weekends"`
	CutoffTime             string          `json:"cutoff_time" yaml:"cutoff_time"`
	Timezone               string          `json:"timezone" yaml:"timezone"`
	LeadTimeBufferDays     int             `json:"lead_time_buffer_days" yaml:"lead_time_buffer_days"`
	ProcessingLeadTimeDays *int            `json:"processing_lead_time_days,omitempty" yaml:"processing_lead_time_days,omitempty"`
	DesiredDateMode        DesiredDateMode `json:"desired_date_mode" yaml:"desired_date_mode"`
}

// Mode returns the effective reconciliation mode, defaulting to
// LATEST_ACCEPTABLE when unset.
func (r *Rules) Mode() DesiredDateMode {
	if r.DesiredDateMode == "" {
		return LatestAcceptable
	}
	return r.DesiredDateMode
}

// Request is one promise calculation. Today and PlacedAt are supplied by the
// caller so the engine never reads the wall clock.
type Request struct {
	Customer    string
	Items       []ItemRequest
	DesiredDate *time.Time
	Rules       *Rules
	Today       time.Time
	PlacedAt    time.Time
}

// Result is the complete outcome of a promise calculation, shaped for direct
// JSON serialization by the caller.
type Result struct {
	Customer        string          `json:"customer"`
	PromiseDateRaw  time.Time       `json:"promise_date_raw"`
	PromiseDate     time.Time       `json:"promise_date"`
	DesiredDate     *time.Time      `json:"desired_date,omitempty"`
	DesiredDateMode DesiredDateMode `json:"desired_date_mode"`
	// OnTime is nil iff no desired date was supplied.
	OnTime *bool `json:"on_time,omitempty"`
	// AdjustedForNoEarlyDelivery is true iff NO_EARLY_DELIVERY forced a delay.
	AdjustedForNoEarlyDelivery bool       `json:"adjusted_due_to_no_early_delivery"`
	Confidence                 Confidence `json:"confidence"`
	Plan                       []ItemPlan `json:"plan"`
	Reasons                    []string   `json:"reasons"`
	Blockers                   []string   `json:"blockers"`
	Options                    []Option   `json:"options"`
}

// Day normalizes a timestamp to midnight UTC. All promise arithmetic is done
// on whole calendar days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
