package promise

import "strings"

// WarehouseType classifies a warehouse by inventory availability stage
type WarehouseType string

const (
	// WarehouseSellable stock counts as available today
	WarehouseSellable WarehouseType = "SELLABLE"
	// WarehouseNeedsProcessing stock ships only after processing lead time
	WarehouseNeedsProcessing WarehouseType = "NEEDS_PROCESSING"
	// WarehouseInTransit stock is not on hand; it arrives as future supply
	WarehouseInTransit WarehouseType = "IN_TRANSIT"
	// WarehouseNotAvailable stock cannot satisfy demand (WIP, rejected, scrap)
	WarehouseNotAvailable WarehouseType = "NOT_AVAILABLE"
	// WarehouseGroup is a logical container that expands to children
	WarehouseGroup WarehouseType = "GROUP"
)

var defaultWarehouseClassifications = map[string]WarehouseType{
	"stores - sd":            WarehouseSellable,
	"stores - wh":            WarehouseSellable,
	"main warehouse":         WarehouseSellable,
	"warehouse":              WarehouseSellable,
	"finished goods - sd":    WarehouseNeedsProcessing,
	"finished goods - wh":    WarehouseNeedsProcessing,
	"finished goods":         WarehouseNeedsProcessing,
	"goods in transit - sd":  WarehouseInTransit,
	"goods in transit - wh":  WarehouseInTransit,
	"goods in transit":       WarehouseInTransit,
	"in transit":             WarehouseInTransit,
	"work in progress - sd":  WarehouseNotAvailable,
	"work in progress - wh":  WarehouseNotAvailable,
	"wip":                    WarehouseNotAvailable,
	"rejected - sd":          WarehouseNotAvailable,
	"rejected - wh":          WarehouseNotAvailable,
	"scrap":                  WarehouseNotAvailable,
	"all warehouses - sd":    WarehouseGroup,
	"all warehouses - wh":    WarehouseGroup,
	"all warehouses":         WarehouseGroup,
}

var defaultWarehouseHierarchy = map[string][]string{
	"all warehouses - sd": {
		"Stores - SD",
		"Finished Goods - SD",
		"Goods In Transit - SD",
		"Work In Progress - SD",
	},
	"all warehouses - wh": {
		"Stores - WH",
		"Finished Goods - WH",
		"Goods In Transit - WH",
		"Work In Progress - WH",
	},
}

// WarehouseManager classifies warehouses and expands group warehouses.
// Custom tables are merged over the defaults; keys are case-insensitive.
type WarehouseManager struct {
	classifications map[string]WarehouseType
	hierarchy       map[string][]string
}

// NewWarehouseManager creates a manager with the default classification and
// hierarchy tables, optionally overridden per key.
func NewWarehouseManager(classifications map[string]WarehouseType, hierarchy map[string][]string) *WarehouseManager {
	m := &WarehouseManager{
		classifications: make(map[string]WarehouseType, len(defaultWarehouseClassifications)),
		hierarchy:       make(map[string][]string, len(defaultWarehouseHierarchy)),
	}
	for name, wt := range defaultWarehouseClassifications {
		m.classifications[name] = wt
	}
	for name, children := range defaultWarehouseHierarchy {
		m.hierarchy[name] = children
	}
	for name, wt := range classifications {
		m.classifications[normalizeWarehouse(name)] = wt
	}
	for name, children := range hierarchy {
		m.hierarchy[normalizeWarehouse(name)] = children
	}
	return m
}

func normalizeWarehouse(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Classify returns the availability type for a warehouse name. Unmapped
// names are matched on substrings; the final fallback is SELLABLE, the
// conventional reading of a stores-like warehouse.
func (m *WarehouseManager) Classify(name string) WarehouseType {
	if name == "" {
		return WarehouseSellable
	}

	normalized := normalizeWarehouse(name)
	if wt, ok := m.classifications[normalized]; ok {
		return wt
	}

	switch {
	case strings.Contains(normalized, "transit"):
		return WarehouseInTransit
	case strings.Contains(normalized, "wip"), strings.Contains(normalized, "work in progress"):
		return WarehouseNotAvailable
	case strings.Contains(normalized, "scrap"), strings.Contains(normalized, "reject"):
		return WarehouseNotAvailable
	case strings.Contains(normalized, "finished"):
		return WarehouseNeedsProcessing
	case strings.Contains(normalized, "all"), strings.Contains(normalized, "group"):
		return WarehouseGroup
	}

	return WarehouseSellable
}

// IsGroup reports whether the warehouse is a logical container.
func (m *WarehouseManager) IsGroup(name string) bool {
	return m.Classify(name) == WarehouseGroup
}

// Children returns the child warehouses of a group warehouse, or nil when
// the name is not a known group.
func (m *WarehouseManager) Children(group string) []string {
	return m.hierarchy[normalizeWarehouse(group)]
}

// Effective resolves a request's warehouse hint to the warehouse the planner
// should draw stock from: empty falls back to the default, and a group
// expands to its first sellable child (or first child when none sells).
func (m *WarehouseManager) Effective(hint, defaultWarehouse string) string {
	warehouse := hint
	if warehouse == "" {
		warehouse = defaultWarehouse
	}
	if !m.IsGroup(warehouse) {
		return warehouse
	}

	children := m.Children(warehouse)
	if len(children) == 0 {
		return defaultWarehouse
	}
	for _, child := range children {
		if m.Classify(child) == WarehouseSellable {
			return child
		}
	}
	return children[0]
}
