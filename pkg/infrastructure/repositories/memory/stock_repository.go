package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/promise"
)

// StockRepository provides in-memory stock availability keyed by item and
// warehouse. Unknown pairs report zero availability, never an error.
type StockRepository struct {
	mu      sync.RWMutex
	records map[stockKey]promise.StockRecord
}

type stockKey struct {
	item      promise.ItemCode
	warehouse string
}

// NewStockRepository creates an empty in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{records: make(map[stockKey]promise.StockRecord)}
}

// Verify interface compliance
var _ promise.StockRepository = (*StockRepository)(nil)

// LoadStock replaces the availability snapshot with the given records.
// Records for the same (item, warehouse) pair are summed.
func (r *StockRepository) LoadStock(records []promise.StockRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[stockKey]promise.StockRecord, len(records))
	for _, record := range records {
		r.addLocked(record)
	}
}

// AddStock adds a single availability record to the snapshot
func (r *StockRepository) AddStock(record promise.StockRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(record)
}

func (r *StockRepository) addLocked(record promise.StockRecord) {
	key := stockKey{item: record.ItemCode, warehouse: record.Warehouse}
	if existing, ok := r.records[key]; ok {
		existing.AvailableQty = existing.AvailableQty.Add(record.AvailableQty)
		r.records[key] = existing
		return
	}
	r.records[key] = record
}

// RecordsFor returns all availability records for an item, sorted by
// warehouse. An unknown item yields an empty slice.
func (r *StockRepository) RecordsFor(item promise.ItemCode) []promise.StockRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []promise.StockRecord
	for key, record := range r.records {
		if key.item == item {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Warehouse < records[j].Warehouse
	})
	return records
}

// AvailableStock returns the available quantity for an item in a warehouse
func (r *StockRepository) AvailableStock(_ context.Context, item promise.ItemCode, warehouse string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[stockKey{item: item, warehouse: warehouse}]
	if !ok {
		return decimal.Zero, nil
	}
	return record.AvailableQty, nil
}
