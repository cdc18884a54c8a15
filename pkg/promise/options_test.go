package promise

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSuggestOptions_PriorityOrder(t *testing.T) {
	plans := []ItemPlan{
		{
			ItemCode:    "ITEM-001",
			QtyRequired: qty(10),
			Fulfillment: []FulfillmentSource{stockSource(5), supplySourceWithID(5, 10, "PO-001")},
			Shortage:    decimal.Zero,
		},
	}

	options := SuggestOptions(plans, testToday)

	if len(options) != 3 {
		t.Fatalf("expected split + expedite + alternate, got %d: %v", len(options), options)
	}
	if options[0].Type != OptionSplitShipment {
		t.Errorf("split shipment must come first, got %s", options[0].Type)
	}
	if options[1].Type != OptionExpediteSupply || options[1].SourceID != "PO-001" {
		t.Errorf("expedite must name the source, got %+v", options[1])
	}
	if options[2].Type != OptionAlternateSource {
		t.Errorf("alternate source must come last, got %s", options[2].Type)
	}
}

func TestSuggestOptions_ExpediteCeiling(t *testing.T) {
	plans := []ItemPlan{
		{
			ItemCode:    "ITEM-001",
			QtyRequired: qty(10),
			Fulfillment: []FulfillmentSource{supplySourceWithID(10, 10, "PO-001")},
			Shortage:    decimal.Zero,
		},
	}

	options := SuggestOptions(plans, testToday)

	var expedite *Option
	for i := range options {
		if options[i].Type == OptionExpediteSupply {
			expedite = &options[i]
		}
	}
	if expedite == nil {
		t.Fatal("expected an expedite option")
	}
	if expedite.Impact != "Could reduce promise date by up to 7 day(s)" {
		t.Errorf("unexpected impact estimate: %q", expedite.Impact)
	}
}

func TestSuggestOptions_FullStockGetsNoOptions(t *testing.T) {
	plans := []ItemPlan{
		{ItemCode: "ITEM-001", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{stockSource(10)}, Shortage: decimal.Zero},
	}

	if options := SuggestOptions(plans, testToday); len(options) != 0 {
		t.Errorf("fully stocked item needs no options, got %v", options)
	}
}

func TestSuggestOptions_ShortageWithoutStock(t *testing.T) {
	plans := []ItemPlan{
		{ItemCode: "ITEM-001", QtyRequired: qty(10), Fulfillment: []FulfillmentSource{}, Shortage: qty(10)},
	}

	options := SuggestOptions(plans, testToday)

	if len(options) != 1 || options[0].Type != OptionAlternateSource {
		t.Errorf("no stock at all means only the alternate-source option, got %v", options)
	}
}

func supplySourceWithID(n int64, daysOut int, id string) FulfillmentSource {
	src := supplySource(n, daysOut)
	src.SourceID = id
	return src
}
