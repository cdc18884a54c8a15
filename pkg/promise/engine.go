package promise

import (
	"context"
	"fmt"
	"time"
)

// EngineConfig holds the system-level defaults and override tables for an
// engine. Everything here is threaded explicitly through each calculation;
// the engine never reads ambient state.
type EngineConfig struct {
	// DefaultWarehouse is used when a request line carries no warehouse hint.
	DefaultWarehouse string
	// DefaultRules applies when a request carries no rule set.
	DefaultRules Rules
	// ItemLeadTimes and WarehouseLeadTimes are the top two layers of the
	// processing lead-time override hierarchy.
	ItemLeadTimes      map[ItemCode]int
	WarehouseLeadTimes map[string]int
	// DefaultLeadTimeDays is the bottom layer of the hierarchy.
	DefaultLeadTimeDays int
	// Warehouses overrides the warehouse classification tables (optional).
	Warehouses *WarehouseManager
}

// Engine computes delivery-date promises from caller-supplied stock and
// incoming-supply snapshots. A calculation is synchronous and pure: identical
// inputs always produce an identical result.
type Engine struct {
	planner  *Planner
	defaults Rules
}

// NewEngine creates an engine over the given repositories.
func NewEngine(stock StockRepository, supply SupplyRepository, cfg EngineConfig) *Engine {
	resolver := NewLeadTimeResolver(cfg.ItemLeadTimes, cfg.WarehouseLeadTimes, cfg.DefaultLeadTimeDays)
	return &Engine{
		planner:  NewPlanner(stock, supply, resolver, cfg.Warehouses, cfg.DefaultWarehouse),
		defaults: cfg.DefaultRules,
	}
}

// CalculatePromise runs the full pipeline: plan each item, adjust the
// order-level maximum by business rules, score confidence, reconcile against
// the desired date, and suggest options when the result is late.
//
// A STRICT_FAIL miss returns *UnmetDesiredDateError and no Result; invalid
// input returns an error wrapping ErrInvalidRequest.
func (e *Engine) CalculatePromise(ctx context.Context, req Request) (*Result, error) {
	rules := req.Rules
	if rules == nil {
		defaults := e.defaults
		rules = &defaults
	}

	if err := validateRequest(&req, rules); err != nil {
		return nil, err
	}

	clock, err := newRuleClock(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	today := Day(req.Today)
	placedAt := req.PlacedAt
	if placedAt.IsZero() {
		placedAt = req.Today
	}

	plans := make([]ItemPlan, 0, len(req.Items))
	var blockers []string
	base := today

	for _, item := range req.Items {
		plan, itemBlockers := e.planner.PlanItem(ctx, item, rules, today)
		plans = append(plans, plan)
		blockers = append(blockers, itemBlockers...)

		// The slowest item governs the order.
		for _, src := range plan.Fulfillment {
			if src.ShipReadyDate.After(base) {
				base = src.ShipReadyDate
			}
		}
	}

	raw, adjustReasons := adjustShipReady(base, rules, placedAt, clock)

	reasons := narratePlans(plans)
	reasons = append(reasons, adjustReasons...)
	blockers = append(blockers, identifyBlockers(plans, today)...)

	result := &Result{
		Customer:        req.Customer,
		PromiseDateRaw:  raw,
		PromiseDate:     raw,
		DesiredDateMode: rules.Mode(),
		Confidence:      ScoreConfidence(plans, today),
		Plan:            plans,
		Reasons:         reasons,
		Blockers:        blockers,
		Options:         []Option{},
	}

	if req.DesiredDate == nil {
		return result, nil
	}

	desired := Day(*req.DesiredDate)
	result.DesiredDate = &desired

	var suggested []Option
	optionFn := func() []Option {
		if suggested == nil {
			suggested = SuggestOptions(plans, today)
		}
		return suggested
	}

	strategy, err := reconcilerFor(rules.Mode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	out, err := strategy.reconcile(raw, desired, optionFn)
	if err != nil {
		return nil, err
	}

	result.PromiseDate = out.final
	onTime := out.onTime
	result.OnTime = &onTime
	result.AdjustedForNoEarlyDelivery = out.adjusted
	result.Reasons = append(result.Reasons, out.reasons...)
	if out.late {
		result.Options = optionFn()
	}

	return result, nil
}

// narratePlans renders the per-item fulfillment trail, one reason per item.
func narratePlans(plans []ItemPlan) []string {
	reasons := make([]string, 0, len(plans))
	for _, plan := range plans {
		if len(plan.Fulfillment) == 0 {
			reasons = append(reasons, fmt.Sprintf("Item %s: no stock or incoming supply available", plan.ItemCode))
			continue
		}

		narration := fmt.Sprintf("Item %s: ", plan.ItemCode)
		for i, src := range plan.Fulfillment {
			if i > 0 {
				narration += ", "
			}
			switch src.Source {
			case SourceStock:
				narration += fmt.Sprintf("%s units from stock", src.Qty)
			case SourceIncomingSupply:
				narration += fmt.Sprintf("%s units from %s (arriving %s)",
					src.Qty, src.SourceID, src.AvailableDate.Format("2006-01-02"))
			}
		}
		reasons = append(reasons, narration)
	}
	return reasons
}

// distantSupplyDays is how far out a supply arrival becomes a blocker.
const distantSupplyDays = 14

// identifyBlockers reports shortages and far-out supply arrivals. Blockers
// are additive and human-readable; they never abort the calculation.
func identifyBlockers(plans []ItemPlan, today time.Time) []string {
	var blockers []string
	for _, plan := range plans {
		if plan.Shortage.IsPositive() {
			blockers = append(blockers, fmt.Sprintf("Item %s: shortage of %s units", plan.ItemCode, plan.Shortage))
		}
		for _, src := range plan.Fulfillment {
			if src.Source != SourceIncomingSupply {
				continue
			}
			if daysOut := daysBetween(today, src.AvailableDate); daysOut > distantSupplyDays {
				blockers = append(blockers, fmt.Sprintf("Item %s: %s arrives in %d days", plan.ItemCode, src.SourceID, daysOut))
			}
		}
	}
	return blockers
}
