package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/infrastructure/repositories/memory"
	"github.com/orderpromise/otp/pkg/promise"
)

func main() {
	ctx := context.Background()

	// Create repositories
	stockRepo := memory.NewStockRepository()
	supplyRepo := memory.NewSupplyRepository()

	// Set up a small availability snapshot
	setupInventory(stockRepo, supplyRepo)

	// Create the promise engine
	engine := promise.NewEngine(stockRepo, supplyRepo, promise.EngineConfig{
		DefaultWarehouse: "Stores - WH",
		DefaultRules: promise.Rules{
			NoWeekends:         true,
			CutoffTime:         "14:00",
			Timezone:           "UTC",
			LeadTimeBufferDays: 1,
		},
		DefaultLeadTimeDays: 2,
	})

	// An order placed Monday morning, partly covered by stock and partly by
	// an incoming purchase order
	now := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	desired := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	request := promise.Request{
		Customer: "ACME Corp",
		Items: []promise.ItemRequest{
			{ItemCode: "WIDGET", Qty: decimal.NewFromInt(80)},
			{ItemCode: "GADGET", Qty: decimal.NewFromInt(25)},
		},
		DesiredDate: &desired,
		Today:       promise.Day(now),
		PlacedAt:    now,
	}

	fmt.Println("📅 Calculating promise for ACME Corp...")
	fmt.Printf("Desired delivery: %s\n\n", desired.Format("2006-01-02"))

	result, err := engine.CalculatePromise(ctx, request)
	if err != nil {
		fmt.Printf("❌ Calculation failed: %v\n", err)
		return
	}

	fmt.Printf("Promise date: %s (confidence %s)\n", result.PromiseDate.Format("2006-01-02"), result.Confidence)
	if result.OnTime != nil && *result.OnTime {
		fmt.Println("On time: yes")
	}
	fmt.Println()

	fmt.Println("📦 Fulfillment plan:")
	for _, plan := range result.Plan {
		for _, source := range plan.Fulfillment {
			fmt.Printf("  %s: %s units from %s, ship-ready %s\n",
				plan.ItemCode, source.Qty, source.Source, source.ShipReadyDate.Format("2006-01-02"))
		}
		if plan.Shortage.IsPositive() {
			fmt.Printf("  %s: ⚠️  SHORT %s units\n", plan.ItemCode, plan.Shortage)
		}
	}

	if len(result.Reasons) > 0 {
		fmt.Println()
		fmt.Println("📝 Reasons:")
		for _, reason := range result.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	}

	fmt.Println()
	fmt.Println("✅ Promise calculation complete!")
}

func setupInventory(stockRepo *memory.StockRepository, supplyRepo *memory.SupplyRepository) {
	stockRepo.LoadStock([]promise.StockRecord{
		{ItemCode: "WIDGET", Warehouse: "Stores - WH", AvailableQty: decimal.NewFromInt(100)},
		{ItemCode: "GADGET", Warehouse: "Stores - WH", AvailableQty: decimal.NewFromInt(10)},
	})

	supplyRepo.LoadSupply([]promise.SupplyRecord{
		{
			ItemCode:     "GADGET",
			SourceID:     "PO-1001",
			Qty:          decimal.NewFromInt(50),
			ExpectedDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			Warehouse:    "Stores - WH",
		},
	})
}
