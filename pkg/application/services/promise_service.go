package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/orderpromise/otp/pkg/infrastructure/events"
	"github.com/orderpromise/otp/pkg/promise"
)

// ErrItemNotFound is returned by stock lookups for items with no
// availability records.
var ErrItemNotFound = errors.New("item not found")

// StockBrowser exposes the availability snapshot for direct item lookups,
// outside the planning pipeline.
type StockBrowser interface {
	RecordsFor(item promise.ItemCode) []promise.StockRecord
}

// PromiseService orchestrates promise calculations: it runs the engine and
// records the outcome on the event store, keyed by customer stream.
type PromiseService struct {
	engine *promise.Engine
	stock  StockBrowser
	events events.EventStore
}

// NewPromiseService creates a promise service. The event store may be nil,
// in which case no events are recorded.
func NewPromiseService(engine *promise.Engine, stock StockBrowser, store events.EventStore) *PromiseService {
	return &PromiseService{
		engine: engine,
		stock:  stock,
		events: store,
	}
}

// CalculatePromise runs one calculation and records the outcome.
//
// Strict-mode misses come back as *promise.UnmetDesiredDateError; invalid
// requests wrap promise.ErrInvalidRequest. Event recording is best-effort
// and never fails the calculation.
func (s *PromiseService) CalculatePromise(ctx context.Context, req promise.Request) (*promise.Result, error) {
	result, err := s.engine.CalculatePromise(ctx, req)
	if err != nil {
		var unmet *promise.UnmetDesiredDateError
		if errors.As(err, &unmet) {
			s.record(req.Customer, events.NewPromiseRejectedEvent(req.Customer, unmet))
		}
		return nil, err
	}

	s.record(req.Customer, events.NewPromiseCalculatedEvent(result))
	for _, plan := range result.Plan {
		if plan.Shortage.IsPositive() {
			s.record(req.Customer, events.NewShortageIdentifiedEvent(req.Customer, plan))
		}
	}

	return result, nil
}

// ItemStock returns the availability records for an item. When warehouse is
// non-empty only that warehouse's record is returned. Items and warehouses
// with no records yield ErrItemNotFound.
func (s *PromiseService) ItemStock(item promise.ItemCode, warehouse string) ([]promise.StockRecord, error) {
	records := s.stock.RecordsFor(item)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, item)
	}

	if warehouse == "" {
		return records, nil
	}

	for _, record := range records {
		if record.Warehouse == warehouse {
			return []promise.StockRecord{record}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrItemNotFound, item, warehouse)
}

func (s *PromiseService) record(customer string, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(customer, event); err != nil {
		log.Printf("failed to record %s event for %s: %v", event.Type(), customer, err)
	}
}
