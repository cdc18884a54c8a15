package promise

import (
	"testing"

	"github.com/shopspring/decimal"
)

func stockSource(n int64) FulfillmentSource {
	return FulfillmentSource{Source: SourceStock, Qty: qty(n), AvailableDate: testToday, ShipReadyDate: testToday}
}

func supplySource(n int64, daysOut int) FulfillmentSource {
	available := addDays(testToday, daysOut)
	return FulfillmentSource{Source: SourceIncomingSupply, Qty: qty(n), AvailableDate: available, ShipReadyDate: available}
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name  string
		plans []ItemPlan
		want  Confidence
	}{
		{
			name: "all stock is HIGH",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{stockSource(10)}, Shortage: decimal.Zero},
				{ItemCode: "B", QtyRequired: qty(5), Fulfillment: []FulfillmentSource{stockSource(5)}, Shortage: decimal.Zero},
			},
			want: ConfidenceHigh,
		},
		{
			name: "near-term supply is MEDIUM",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{stockSource(5), supplySource(5, 3)}, Shortage: decimal.Zero},
			},
			want: ConfidenceMedium,
		},
		{
			name: "supply exactly on the 7-day horizon is still MEDIUM",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{supplySource(10, 7)}, Shortage: decimal.Zero},
			},
			want: ConfidenceMedium,
		},
		{
			name: "distant supply is LOW",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{supplySource(10, 8)}, Shortage: decimal.Zero},
			},
			want: ConfidenceLow,
		},
		{
			name: "any shortage is LOW even with clean stock elsewhere",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{stockSource(10)}, Shortage: decimal.Zero},
				{ItemCode: "B", QtyRequired: qty(5), Fulfillment: []FulfillmentSource{}, Shortage: qty(5)},
			},
			want: ConfidenceLow,
		},
		{
			name: "empty plan with full shortage is LOW",
			plans: []ItemPlan{
				{ItemCode: "A", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{}, Shortage: qty(10)},
			},
			want: ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreConfidence(tt.plans, testToday); got != tt.want {
				t.Errorf("ScoreConfidence() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScoreConfidence_UsesShipReadyHorizon(t *testing.T) {
	// Arrival within 7 days but processing pushes ship-ready past the horizon.
	src := supplySource(6, 6)
	src.ShipReadyDate = addDays(src.AvailableDate, 3)
	plans := []ItemPlan{{ItemCode: "A", QtyRequired: qty(6), Fulfillment: []FulfillmentSource{src}, Shortage: decimal.Zero}}

	if got := ScoreConfidence(plans, testToday); got != ConfidenceLow {
		t.Errorf("ship-ready beyond horizon should be LOW, got %s", got)
	}
}
