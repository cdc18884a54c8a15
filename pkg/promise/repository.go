package promise

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockRepository supplies current on-hand availability. Implementations
// return zero (not an error) for unknown item/warehouse pairs.
type StockRepository interface {
	AvailableStock(ctx context.Context, item ItemCode, warehouse string) (decimal.Decimal, error)
}

// SupplyRepository supplies incoming purchase-order lines for an item,
// sorted ascending by expected date with ties broken by insertion order.
// Records expected strictly before `after` are excluded.
type SupplyRepository interface {
	IncomingSupply(ctx context.Context, item ItemCode, after time.Time) ([]SupplyRecord, error)
}
