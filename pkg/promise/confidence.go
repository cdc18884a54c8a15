package promise

import "time"

// supplyHorizonDays is how far out an incoming-supply ship-ready date may be
// before it degrades confidence to LOW.
const supplyHorizonDays = 7

// ScoreConfidence classifies the overall promise from the mix of fulfillment
// sources across all item plans. It is a pure function of the plans and
// "today"; the desired date never influences it.
//
//	HIGH    every unit sourced from stock, no shortage anywhere
//	LOW     any shortage, or any incoming supply ship-ready more than 7 days out
//	MEDIUM  otherwise: stock plus near-term incoming supply, fully covered
func ScoreConfidence(plans []ItemPlan, today time.Time) Confidence {
	horizon := addDays(Day(today), supplyHorizonDays)

	anySupply := false
	anyShortage := false
	anyDistant := false

	for _, plan := range plans {
		if plan.Shortage.IsPositive() {
			anyShortage = true
		}
		for _, src := range plan.Fulfillment {
			if src.Source != SourceIncomingSupply {
				continue
			}
			anySupply = true
			if src.ShipReadyDate.After(horizon) {
				anyDistant = true
			}
		}
	}

	switch {
	case anyShortage || anyDistant:
		return ConfidenceLow
	case anySupply:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}
