package promise

// leadTimeLookup is one layer of the override hierarchy. It returns the
// processing lead time for an (item, warehouse) pair, or false to fall
// through to the next layer.
type leadTimeLookup func(item ItemCode, warehouse string, rules *Rules) (int, bool)

// LeadTimeResolver resolves the warehouse processing delay for an
// (item, warehouse) pair through a layered override hierarchy:
//
//  1. item-specific override
//  2. warehouse-specific override
//  3. value carried on the request's rule set
//  4. system default
//
// Resolution is pure and total: a missing key at any layer falls through, so
// identical inputs always resolve to the identical lead time.
type LeadTimeResolver struct {
	lookups     []leadTimeLookup
	defaultDays int
}

// NewLeadTimeResolver creates a resolver over the given override tables and
// system default. Nil maps are valid and simply never match.
func NewLeadTimeResolver(itemOverrides map[ItemCode]int, warehouseOverrides map[string]int, defaultDays int) *LeadTimeResolver {
	lookups := []leadTimeLookup{
		func(item ItemCode, _ string, _ *Rules) (int, bool) {
			days, ok := itemOverrides[item]
			return days, ok
		},
		func(_ ItemCode, warehouse string, _ *Rules) (int, bool) {
			days, ok := warehouseOverrides[warehouse]
			return days, ok
		},
		func(_ ItemCode, _ string, rules *Rules) (int, bool) {
			if rules == nil || rules.ProcessingLeadTimeDays == nil {
				return 0, false
			}
			return *rules.ProcessingLeadTimeDays, true
		},
	}

	if defaultDays < 0 {
		defaultDays = 0
	}

	return &LeadTimeResolver{lookups: lookups, defaultDays: defaultDays}
}

// Resolve returns the processing lead time in days for the pair, never
// negative. First matching layer wins.
func (r *LeadTimeResolver) Resolve(item ItemCode, warehouse string, rules *Rules) int {
	for _, lookup := range r.lookups {
		if days, ok := lookup(item, warehouse, rules); ok {
			if days < 0 {
				return 0
			}
			return days
		}
	}
	return r.defaultDays
}
