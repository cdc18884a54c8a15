package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/promise"
)

// Loader handles loading stock and purchase-order data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadStock loads availability records from a CSV file. Available quantity
// is actual minus reserved, floored at zero.
func (l *Loader) LoadStock(filename string) ([]promise.StockRecord, error) {
	records, err := readCSV(filename, []string{"item_code", "warehouse", "actual_qty", "reserved_qty"})
	if err != nil {
		return nil, fmt.Errorf("stock CSV: %w", err)
	}

	var stock []promise.StockRecord
	for i, row := range records {
		actual, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: bad actual_qty %q", i+2, row[2])
		}
		reserved, err := decimal.NewFromString(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: bad reserved_qty %q", i+2, row[3])
		}

		available := actual.Sub(reserved)
		if available.IsNegative() {
			available = decimal.Zero
		}

		stock = append(stock, promise.StockRecord{
			ItemCode:     promise.ItemCode(strings.TrimSpace(row[0])),
			Warehouse:    strings.TrimSpace(row[1]),
			AvailableQty: available,
		})
	}

	return stock, nil
}

// LoadPurchaseOrders loads incoming-supply records from a CSV file
func (l *Loader) LoadPurchaseOrders(filename string) ([]promise.SupplyRecord, error) {
	records, err := readCSV(filename, []string{"po_id", "item_code", "qty", "expected_date", "warehouse"})
	if err != nil {
		return nil, fmt.Errorf("purchase orders CSV: %w", err)
	}

	var supply []promise.SupplyRecord
	for i, row := range records {
		qty, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("purchase orders CSV row %d: bad qty %q", i+2, row[2])
		}
		expected, err := time.Parse("2006-01-02", strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("purchase orders CSV row %d: bad expected_date %q", i+2, row[3])
		}

		supply = append(supply, promise.SupplyRecord{
			SourceID:     strings.TrimSpace(row[0]),
			ItemCode:     promise.ItemCode(strings.TrimSpace(row[1])),
			Qty:          qty,
			ExpectedDate: expected,
			Warehouse:    strings.TrimSpace(row[4]),
		})
	}

	return supply, nil
}

// readCSV reads a CSV file, validates its header, and returns the data rows.
func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, row := range records[1:] {
		if len(row) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(row))
		}
	}

	return records[1:], nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, name := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return false
		}
	}
	return true
}
