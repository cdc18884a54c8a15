package promise

import (
	"context"
	"errors"
	"testing"
)

func newTestPlanner(stock StockRepository, supply SupplyRepository, cfg EngineConfig) *Planner {
	resolver := NewLeadTimeResolver(cfg.ItemLeadTimes, cfg.WarehouseLeadTimes, cfg.DefaultLeadTimeDays)
	return NewPlanner(stock, supply, resolver, cfg.Warehouses, "Stores - WH")
}

func checkPlanInvariant(t *testing.T, plan ItemPlan) {
	t.Helper()
	total := plan.Shortage
	for _, src := range plan.Fulfillment {
		total = total.Add(src.Qty)
		if src.ShipReadyDate.Before(src.AvailableDate) {
			t.Errorf("source %s ship-ready %s before availability %s",
				src.SourceID, src.ShipReadyDate, src.AvailableDate)
		}
	}
	if !total.Equal(plan.QtyRequired) {
		t.Errorf("allocation %s + shortage does not equal required %s", total, plan.QtyRequired)
	}
	if plan.Shortage.IsNegative() {
		t.Errorf("shortage is negative: %s", plan.Shortage)
	}
}

func TestPlanner_StockCoversFully(t *testing.T) {
	stock := newStubStock().set("ITEM-001", "Stores - WH", 15)
	planner := newTestPlanner(stock, newStubSupply(), EngineConfig{})

	plan, blockers := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(blockers) != 0 {
		t.Fatalf("unexpected blockers: %v", blockers)
	}
	if len(plan.Fulfillment) != 1 {
		t.Fatalf("expected single stock source, got %d", len(plan.Fulfillment))
	}
	src := plan.Fulfillment[0]
	if src.Source != SourceStock || !src.Qty.Equal(qty(10)) {
		t.Errorf("expected 10 units from stock, got %s from %s", src.Qty, src.Source)
	}
	if !plan.Shortage.IsZero() {
		t.Errorf("expected zero shortage, got %s", plan.Shortage)
	}
	checkPlanInvariant(t, plan)
}

func TestPlanner_StockThenSupply(t *testing.T) {
	stock := newStubStock().set("ITEM-001", "Stores - WH", 5)
	supply := newStubSupply().add(SupplyRecord{
		ItemCode:     "ITEM-001",
		SourceID:     "PO-001",
		Qty:          qty(10),
		ExpectedDate: addDays(testToday, 3),
	})
	planner := newTestPlanner(stock, supply, EngineConfig{})

	plan, _ := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(plan.Fulfillment) != 2 {
		t.Fatalf("expected stock + supply sources, got %d", len(plan.Fulfillment))
	}
	if !plan.Fulfillment[0].Qty.Equal(qty(5)) || plan.Fulfillment[0].Source != SourceStock {
		t.Errorf("first source should be 5 from stock, got %s from %s", plan.Fulfillment[0].Qty, plan.Fulfillment[0].Source)
	}
	if !plan.Fulfillment[1].Qty.Equal(qty(5)) || plan.Fulfillment[1].SourceID != "PO-001" {
		t.Errorf("second source should be 5 from PO-001, got %s from %q", plan.Fulfillment[1].Qty, plan.Fulfillment[1].SourceID)
	}
	if !plan.Shortage.IsZero() {
		t.Errorf("expected zero shortage, got %s", plan.Shortage)
	}
	checkPlanInvariant(t, plan)
}

func TestPlanner_SupplyConsumedFIFO(t *testing.T) {
	supply := newStubSupply().
		add(SupplyRecord{ItemCode: "ITEM-001", SourceID: "PO-LATE", Qty: qty(20), ExpectedDate: addDays(testToday, 10)}).
		add(SupplyRecord{ItemCode: "ITEM-001", SourceID: "PO-EARLY", Qty: qty(4), ExpectedDate: addDays(testToday, 2)})
	planner := newTestPlanner(newStubStock(), supply, EngineConfig{})

	plan, _ := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(plan.Fulfillment) != 2 {
		t.Fatalf("expected two supply sources, got %d", len(plan.Fulfillment))
	}
	if plan.Fulfillment[0].SourceID != "PO-EARLY" {
		t.Errorf("earliest supply should be consumed first, got %q", plan.Fulfillment[0].SourceID)
	}
	if !plan.Fulfillment[1].Qty.Equal(qty(6)) {
		t.Errorf("later supply should cover the remainder 6, got %s", plan.Fulfillment[1].Qty)
	}
	checkPlanInvariant(t, plan)
}

func TestPlanner_NothingAvailable(t *testing.T) {
	planner := newTestPlanner(newStubStock(), newStubSupply(), EngineConfig{})

	plan, blockers := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(plan.Fulfillment) != 0 {
		t.Fatalf("expected empty fulfillment, got %d sources", len(plan.Fulfillment))
	}
	if !plan.Shortage.Equal(qty(10)) {
		t.Errorf("expected shortage 10, got %s", plan.Shortage)
	}
	if len(blockers) != 0 {
		t.Errorf("a clean shortage is not a blocker at plan time, got %v", blockers)
	}
	checkPlanInvariant(t, plan)
}

func TestPlanner_ProcessingLeadTimeOnShipReady(t *testing.T) {
	stock := newStubStock().set("ITEM-001", "Stores - WH", 10)
	planner := newTestPlanner(stock, newStubSupply(), EngineConfig{
		ItemLeadTimes: map[ItemCode]int{"ITEM-001": 2},
	})

	plan, _ := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	src := plan.Fulfillment[0]
	if !src.AvailableDate.Equal(testToday) {
		t.Errorf("stock availability should be today, got %s", src.AvailableDate)
	}
	if want := addDays(testToday, 2); !src.ShipReadyDate.Equal(want) {
		t.Errorf("ship-ready should be %s, got %s", want.Format("2006-01-02"), src.ShipReadyDate.Format("2006-01-02"))
	}
}

func TestPlanner_InTransitWarehouseStockIgnored(t *testing.T) {
	stock := newStubStock().set("ITEM-001", "Goods In Transit - WH", 50)
	planner := newTestPlanner(stock, newStubSupply(), EngineConfig{})

	plan, _ := planner.PlanItem(context.Background(), ItemRequest{
		ItemCode:  "ITEM-001",
		Qty:       qty(10),
		Warehouse: "Goods In Transit - WH",
	}, nil, testToday)

	if len(plan.Fulfillment) != 0 {
		t.Errorf("in-transit stock must not count as on hand, got %d sources", len(plan.Fulfillment))
	}
	if !plan.Shortage.Equal(qty(10)) {
		t.Errorf("expected shortage 10, got %s", plan.Shortage)
	}
}

func TestPlanner_LookupFailuresBecomeBlockers(t *testing.T) {
	stock := newStubStock()
	stock.err = errors.New("backend unreachable")
	supply := newStubSupply()
	supply.err = errors.New("backend unreachable")
	planner := newTestPlanner(stock, supply, EngineConfig{})

	plan, blockers := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(blockers) != 2 {
		t.Fatalf("expected stock and supply blockers, got %v", blockers)
	}
	if !plan.Shortage.Equal(qty(10)) {
		t.Errorf("failed lookups contribute nothing, want shortage 10, got %s", plan.Shortage)
	}
	checkPlanInvariant(t, plan)
}

func TestPlanner_SupplyBeforeTodayExcluded(t *testing.T) {
	supply := newStubSupply().add(SupplyRecord{
		ItemCode:     "ITEM-001",
		SourceID:     "PO-STALE",
		Qty:          qty(10),
		ExpectedDate: addDays(testToday, -2),
	})
	planner := newTestPlanner(newStubStock(), supply, EngineConfig{})

	plan, _ := planner.PlanItem(context.Background(), ItemRequest{ItemCode: "ITEM-001", Qty: qty(10)}, nil, testToday)

	if len(plan.Fulfillment) != 0 {
		t.Errorf("stale supply must be excluded, got %d sources", len(plan.Fulfillment))
	}
}
