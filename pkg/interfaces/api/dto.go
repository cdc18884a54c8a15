package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/promise"
)

const dateLayout = "2006-01-02"

type itemRequestDTO struct {
	ItemCode  string          `json:"item_code"`
	Qty       decimal.Decimal `json:"qty"`
	Warehouse string          `json:"warehouse,omitempty"`
}

// rulesOverrideDTO carries partial rule overrides. Nil fields fall back to
// the server's configured defaults, so a request can tighten one rule
// without restating the rest.
type rulesOverrideDTO struct {
	NoWeekends             *bool   `json:"no_weekends,omitempty"`
	CutoffTime             *string `json:"cutoff_time,omitempty"`
	Timezone               *string `json:"timezone,omitempty"`
	LeadTimeBufferDays     *int    `json:"lead_time_buffer_days,omitempty"`
	ProcessingLeadTimeDays *int    `json:"processing_lead_time_days,omitempty"`
	DesiredDateMode        *string `json:"desired_date_mode,omitempty"`
}

type promiseRequestDTO struct {
	Customer    string            `json:"customer"`
	Items       []itemRequestDTO  `json:"items"`
	DesiredDate string            `json:"desired_date,omitempty"`
	Rules       *rulesOverrideDTO `json:"rules,omitempty"`
	// Today and PlacedAt are optional; both default to the server clock.
	Today    string `json:"today,omitempty"`
	PlacedAt string `json:"placed_at,omitempty"`
}

func (dto *promiseRequestDTO) toDomain(defaults promise.Rules, now time.Time) (promise.Request, error) {
	rules := defaults
	if o := dto.Rules; o != nil {
		if o.NoWeekends != nil {
			rules.NoWeekends = *o.NoWeekends
		}
		if o.CutoffTime != nil {
			rules.CutoffTime = *o.CutoffTime
		}
		if o.Timezone != nil {
			rules.Timezone = *o.Timezone
		}
		if o.LeadTimeBufferDays != nil {
			rules.LeadTimeBufferDays = *o.LeadTimeBufferDays
		}
		if o.ProcessingLeadTimeDays != nil {
			rules.ProcessingLeadTimeDays = o.ProcessingLeadTimeDays
		}
		if o.DesiredDateMode != nil {
			rules.DesiredDateMode = promise.DesiredDateMode(*o.DesiredDateMode)
		}
	}

	req := promise.Request{
		Customer: dto.Customer,
		Rules:    &rules,
		Today:    promise.Day(now),
		PlacedAt: now,
	}

	for _, item := range dto.Items {
		req.Items = append(req.Items, promise.ItemRequest{
			ItemCode:  promise.ItemCode(item.ItemCode),
			Qty:       item.Qty,
			Warehouse: item.Warehouse,
		})
	}

	if dto.DesiredDate != "" {
		desired, err := time.Parse(dateLayout, dto.DesiredDate)
		if err != nil {
			return promise.Request{}, fmt.Errorf("invalid desired_date %q: expected YYYY-MM-DD", dto.DesiredDate)
		}
		req.DesiredDate = &desired
	}

	if dto.Today != "" {
		today, err := time.Parse(dateLayout, dto.Today)
		if err != nil {
			return promise.Request{}, fmt.Errorf("invalid today %q: expected YYYY-MM-DD", dto.Today)
		}
		req.Today = today
	}

	if dto.PlacedAt != "" {
		placedAt, err := parsePlacedAt(dto.PlacedAt)
		if err != nil {
			return promise.Request{}, err
		}
		req.PlacedAt = placedAt
	} else if dto.Today != "" {
		req.PlacedAt = req.Today
	}

	return req, nil
}

func parsePlacedAt(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid placed_at %q: expected RFC3339 or YYYY-MM-DD", value)
}

type stockRecordDTO struct {
	Warehouse    string          `json:"warehouse"`
	AvailableQty decimal.Decimal `json:"available_qty"`
}

type stockResponseDTO struct {
	ItemCode string           `json:"item_code"`
	Stock    []stockRecordDTO `json:"stock"`
}

type unmetResponseDTO struct {
	Error       string           `json:"error"`
	PromiseDate string           `json:"promise_date"`
	DaysLate    int              `json:"days_late"`
	Options     []promise.Option `json:"options"`
}

type errorResponseDTO struct {
	Error string `json:"error"`
}
