package promise

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Planner builds per-item fulfillment plans from stock and incoming supply.
// Allocation order is deterministic: on-hand stock first, then supply records
// in ascending expected-date order, until the requested quantity is covered
// or every source is exhausted. Whatever remains is recorded as shortage,
// never raised as an error.
type Planner struct {
	stock            StockRepository
	supply           SupplyRepository
	leadTimes        *LeadTimeResolver
	warehouses       *WarehouseManager
	defaultWarehouse string
}

// NewPlanner creates a planner over the given repositories.
func NewPlanner(stock StockRepository, supply SupplyRepository, leadTimes *LeadTimeResolver, warehouses *WarehouseManager, defaultWarehouse string) *Planner {
	if warehouses == nil {
		warehouses = NewWarehouseManager(nil, nil)
	}
	return &Planner{
		stock:            stock,
		supply:           supply,
		leadTimes:        leadTimes,
		warehouses:       warehouses,
		defaultWarehouse: defaultWarehouse,
	}
}

// PlanItem allocates the requested quantity across stock and incoming supply.
// Repository failures are localized: the failing source contributes nothing
// and a blocker describes the gap, so one bad item never aborts a multi-item
// calculation.
func (p *Planner) PlanItem(ctx context.Context, item ItemRequest, rules *Rules, today time.Time) (ItemPlan, []string) {
	var blockers []string
	remaining := item.Qty
	plan := ItemPlan{
		ItemCode:    item.ItemCode,
		QtyRequired: item.Qty,
		Fulfillment: []FulfillmentSource{},
	}

	warehouse := p.warehouses.Effective(item.Warehouse, p.defaultWarehouse)

	// Stock in transit or unavailable warehouses never counts as on hand.
	if wt := p.warehouses.Classify(warehouse); wt == WarehouseSellable || wt == WarehouseNeedsProcessing {
		available, err := p.stock.AvailableStock(ctx, item.ItemCode, warehouse)
		if err != nil {
			blockers = append(blockers, fmt.Sprintf("Item %s: stock lookup failed for %s: %v", item.ItemCode, warehouse, err))
		} else if available.IsPositive() {
			qty := decimal.Min(available, remaining)
			leadDays := p.leadTimes.Resolve(item.ItemCode, warehouse, rules)
			plan.Fulfillment = append(plan.Fulfillment, FulfillmentSource{
				Source:        SourceStock,
				Qty:           qty,
				AvailableDate: today,
				ShipReadyDate: addDays(today, leadDays),
				Warehouse:     warehouse,
			})
			remaining = remaining.Sub(qty)
		}
	}

	if remaining.IsPositive() {
		records, err := p.supply.IncomingSupply(ctx, item.ItemCode, today)
		if err != nil {
			blockers = append(blockers, fmt.Sprintf("Item %s: incoming supply lookup failed: %v", item.ItemCode, err))
			records = nil
		}

		for _, record := range records {
			if !remaining.IsPositive() {
				break
			}
			if !record.Qty.IsPositive() {
				continue
			}

			qty := decimal.Min(record.Qty, remaining)
			supplyWarehouse := record.Warehouse
			if supplyWarehouse == "" {
				supplyWarehouse = warehouse
			}
			available := Day(record.ExpectedDate)
			leadDays := p.leadTimes.Resolve(item.ItemCode, supplyWarehouse, rules)
			plan.Fulfillment = append(plan.Fulfillment, FulfillmentSource{
				Source:        SourceIncomingSupply,
				Qty:           qty,
				AvailableDate: available,
				ShipReadyDate: addDays(available, leadDays),
				Warehouse:     supplyWarehouse,
				SourceID:      record.SourceID,
			})
			remaining = remaining.Sub(qty)
		}
	}

	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	plan.Shortage = remaining

	return plan, blockers
}
