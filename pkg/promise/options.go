package promise

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// expediteFloorDays is the assumed minimum remaining transit when expediting
// a purchase order; the date-reduction ceiling is days-out minus this floor.
const expediteFloorDays = 3

// SuggestOptions proposes advisory alternatives for a late promise, in fixed
// priority order: split shipment, expedite supply, alternate source. Options
// carry a rough impact estimate and are never applied by the engine.
func SuggestOptions(plans []ItemPlan, today time.Time) []Option {
	options := []Option{}
	today = Day(today)

	// Partial stock that could ship ahead of the rest.
	for _, plan := range plans {
		stockQty := decimal.Zero
		for _, src := range plan.Fulfillment {
			if src.Source == SourceStock {
				stockQty = stockQty.Add(src.Qty)
			}
		}
		if stockQty.IsPositive() && stockQty.LessThan(plan.QtyRequired) {
			options = append(options, Option{
				Type: OptionSplitShipment,
				Description: fmt.Sprintf(
					"Ship %s units of %s from stock now and deliver the remainder separately",
					stockQty, plan.ItemCode),
				Impact: "Partial delivery available immediately",
			})
		}
	}

	// One suggestion per incoming-supply source still in the plan.
	for _, plan := range plans {
		for _, src := range plan.Fulfillment {
			if src.Source != SourceIncomingSupply {
				continue
			}
			daysOut := daysBetween(today, src.AvailableDate)
			ceiling := daysOut - expediteFloorDays
			if ceiling < 1 {
				ceiling = 1
			}
			options = append(options, Option{
				Type:        OptionExpediteSupply,
				SourceID:    src.SourceID,
				Description: fmt.Sprintf("Expedite %s for %s", src.SourceID, plan.ItemCode),
				Impact:      fmt.Sprintf("Could reduce promise date by up to %d day(s)", ceiling),
			})
		}
	}

	// Items not fully covered by stock might be stocked elsewhere.
	for _, plan := range plans {
		stockQty := decimal.Zero
		for _, src := range plan.Fulfillment {
			if src.Source == SourceStock {
				stockQty = stockQty.Add(src.Qty)
			}
		}
		if stockQty.LessThan(plan.QtyRequired) {
			options = append(options, Option{
				Type:        OptionAlternateSource,
				Description: fmt.Sprintf("Check alternate stocking locations for %s", plan.ItemCode),
				Impact:      "Other warehouses were not queried; stock elsewhere could shorten the promise",
			})
		}
	}

	return options
}
