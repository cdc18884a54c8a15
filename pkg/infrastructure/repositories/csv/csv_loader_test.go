package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadStock(t *testing.T) {
	path := writeFile(t, "stock.csv",
		"item_code,warehouse,actual_qty,reserved_qty\n"+
			"SKU001,Stores - WH,15,5\n"+
			"SKU002,Stores - SD,2,4\n")

	records, err := NewLoader().LoadStock(path)
	if err != nil {
		t.Fatalf("LoadStock failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].AvailableQty.Equal(decimal.NewFromInt(10)) {
		t.Errorf("available should be actual minus reserved, got %s", records[0].AvailableQty)
	}
	if !records[1].AvailableQty.IsZero() {
		t.Errorf("over-reserved stock floors at zero, got %s", records[1].AvailableQty)
	}
}

func TestLoader_LoadStock_HeaderMismatch(t *testing.T) {
	path := writeFile(t, "stock.csv", "item,wh,qty\nSKU001,Stores - WH,10\n")

	if _, err := NewLoader().LoadStock(path); err == nil {
		t.Error("expected a header mismatch error")
	}
}

func TestLoader_LoadStock_BadQuantity(t *testing.T) {
	path := writeFile(t, "stock.csv",
		"item_code,warehouse,actual_qty,reserved_qty\nSKU001,Stores - WH,lots,0\n")

	if _, err := NewLoader().LoadStock(path); err == nil {
		t.Error("expected a quantity parse error")
	}
}

func TestLoader_LoadPurchaseOrders(t *testing.T) {
	path := writeFile(t, "purchase_orders.csv",
		"po_id,item_code,qty,expected_date,warehouse\n"+
			"PO-001,SKU001,20,2026-03-02,Stores - WH\n")

	records, err := NewLoader().LoadPurchaseOrders(path)
	if err != nil {
		t.Fatalf("LoadPurchaseOrders failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.SourceID != "PO-001" || record.ItemCode != "SKU001" {
		t.Errorf("unexpected identity fields: %+v", record)
	}
	if want := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC); !record.ExpectedDate.Equal(want) {
		t.Errorf("expected date %s, got %s", want, record.ExpectedDate)
	}
}

func TestLoader_LoadPurchaseOrders_BadDate(t *testing.T) {
	path := writeFile(t, "purchase_orders.csv",
		"po_id,item_code,qty,expected_date,warehouse\nPO-001,SKU001,20,soon,Stores - WH\n")

	if _, err := NewLoader().LoadPurchaseOrders(path); err == nil {
		t.Error("expected a date parse error")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if _, err := NewLoader().LoadStock(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
