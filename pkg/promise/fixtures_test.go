package promise

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// stubStockRepository serves canned availability keyed by item and warehouse.
type stubStockRepository struct {
	qty map[string]decimal.Decimal
	err error
}

func newStubStock() *stubStockRepository {
	return &stubStockRepository{qty: make(map[string]decimal.Decimal)}
}

func (s *stubStockRepository) set(item ItemCode, warehouse string, qty int64) *stubStockRepository {
	s.qty[string(item)+"|"+warehouse] = decimal.NewFromInt(qty)
	return s
}

func (s *stubStockRepository) AvailableStock(_ context.Context, item ItemCode, warehouse string) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.qty[string(item)+"|"+warehouse], nil
}

// stubSupplyRepository serves canned purchase-order lines per item.
type stubSupplyRepository struct {
	records map[ItemCode][]SupplyRecord
	err     error
}

func newStubSupply() *stubSupplyRepository {
	return &stubSupplyRepository{records: make(map[ItemCode][]SupplyRecord)}
}

func (s *stubSupplyRepository) add(record SupplyRecord) *stubSupplyRepository {
	s.records[record.ItemCode] = append(s.records[record.ItemCode], record)
	return s
}

func (s *stubSupplyRepository) IncomingSupply(_ context.Context, item ItemCode, after time.Time) ([]SupplyRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []SupplyRecord
	for _, record := range s.records[item] {
		if record.ExpectedDate.Before(after) {
			continue
		}
		out = append(out, record)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpectedDate.Before(out[j].ExpectedDate)
	})
	return out, nil
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

// testToday is a Monday, so weekend rules stay out of the way unless a test
// asks for them.
var testToday = date(2026, time.February, 2)

func testEngine(stock StockRepository, supply SupplyRepository) *Engine {
	return NewEngine(stock, supply, EngineConfig{
		DefaultWarehouse:    "Stores - WH",
		DefaultRules:        Rules{NoWeekends: true, CutoffTime: "14:00", Timezone: "UTC", LeadTimeBufferDays: 1},
		DefaultLeadTimeDays: 0,
	})
}
