package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/orderpromise/otp/pkg/promise"
)

// SupplyRepository provides in-memory incoming purchase-order lines per
// item, served in expected-date order with insertion order breaking ties.
type SupplyRepository struct {
	mu      sync.RWMutex
	records map[promise.ItemCode][]promise.SupplyRecord
}

// NewSupplyRepository creates an empty in-memory supply repository
func NewSupplyRepository() *SupplyRepository {
	return &SupplyRepository{records: make(map[promise.ItemCode][]promise.SupplyRecord)}
}

// Verify interface compliance
var _ promise.SupplyRepository = (*SupplyRepository)(nil)

// LoadSupply replaces all incoming-supply records
func (r *SupplyRepository) LoadSupply(records []promise.SupplyRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[promise.ItemCode][]promise.SupplyRecord, len(records))
	for _, record := range records {
		r.records[record.ItemCode] = append(r.records[record.ItemCode], record)
	}
}

// AddSupply adds a single incoming-supply record
func (r *SupplyRepository) AddSupply(record promise.SupplyRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ItemCode] = append(r.records[record.ItemCode], record)
}

// IncomingSupply returns the item's supply lines expected on or after the
// given date, ascending by expected date (FIFO), ties by insertion order.
func (r *SupplyRepository) IncomingSupply(_ context.Context, item promise.ItemCode, after time.Time) ([]promise.SupplyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []promise.SupplyRecord
	for _, record := range r.records[item] {
		if record.ExpectedDate.Before(after) {
			continue
		}
		result = append(result, record)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ExpectedDate.Before(result[j].ExpectedDate)
	})

	return result, nil
}
