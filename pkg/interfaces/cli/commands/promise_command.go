package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpromise/otp/pkg/application/services"
	"github.com/orderpromise/otp/pkg/config"
	"github.com/orderpromise/otp/pkg/infrastructure/events"
	"github.com/orderpromise/otp/pkg/infrastructure/repositories/csv"
	"github.com/orderpromise/otp/pkg/infrastructure/repositories/memory"
	"github.com/orderpromise/otp/pkg/interfaces/cli/output"
	"github.com/orderpromise/otp/pkg/promise"
)

// Config holds configuration for the promise command
type Config struct {
	DataDir    string
	StockFile  string
	POsFile    string
	ConfigFile string
	Customer   string
	Items      string
	Warehouse  string
	Desired    string
	Mode       string
	Format     string
	Verbose    bool
	Help       bool
}

// PromiseCommand handles the promise calculation logic
type PromiseCommand struct {
	config Config
}

// NewPromiseCommand creates a new promise command with the given configuration
func NewPromiseCommand(cfg Config) *PromiseCommand {
	return &PromiseCommand{
		config: cfg,
	}
}

// Execute runs the promise command
func (c *PromiseCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	appCfg := config.Default()
	if c.config.ConfigFile != "" {
		loaded, err := config.Load(c.config.ConfigFile)
		if err != nil {
			return err
		}
		appCfg = loaded
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	stockRecords, err := csvLoader.LoadStock(files["Stock"])
	if err != nil {
		return fmt.Errorf("error loading stock: %w", err)
	}

	supplyRecords, err := csvLoader.LoadPurchaseOrders(files["PurchaseOrders"])
	if err != nil {
		return fmt.Errorf("error loading purchase orders: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Stock Records: %d\n", len(stockRecords))
		fmt.Printf("  Purchase Orders: %d\n", len(supplyRecords))
		fmt.Println()
	}

	stockRepo := memory.NewStockRepository()
	stockRepo.LoadStock(stockRecords)

	supplyRepo := memory.NewSupplyRepository()
	supplyRepo.LoadSupply(supplyRecords)

	engine := promise.NewEngine(stockRepo, supplyRepo, appCfg.EngineConfig())
	service := services.NewPromiseService(engine, stockRepo, events.NewInMemoryEventStore())

	req, err := c.buildRequest(appCfg)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("🔄 Calculating promise...")
	}

	result, err := service.CalculatePromise(ctx, req)
	if err != nil {
		var unmet *promise.UnmetDesiredDateError
		if errors.As(err, &unmet) {
			return output.GenerateRejection(unmet, output.Config{
				Format:  c.config.Format,
				Verbose: c.config.Verbose,
			})
		}
		return fmt.Errorf("error calculating promise: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
	})
}

// buildRequest assembles the calculation request from command flags.
func (c *PromiseCommand) buildRequest(appCfg *config.Config) (promise.Request, error) {
	items, err := parseItems(c.config.Items, c.config.Warehouse)
	if err != nil {
		return promise.Request{}, err
	}

	rules := appCfg.DefaultRules
	if c.config.Mode != "" {
		rules.DesiredDateMode = promise.DesiredDateMode(strings.ToUpper(c.config.Mode))
	}

	now := time.Now()
	req := promise.Request{
		Customer: c.config.Customer,
		Items:    items,
		Rules:    &rules,
		Today:    promise.Day(now),
		PlacedAt: now,
	}

	if c.config.Desired != "" {
		desired, err := time.Parse("2006-01-02", c.config.Desired)
		if err != nil {
			return promise.Request{}, fmt.Errorf("invalid -desired %q: expected YYYY-MM-DD", c.config.Desired)
		}
		req.DesiredDate = &desired
	}

	return req, nil
}

// parseItems parses an item list of the form "SKU001:10,SKU002:5.5".
func parseItems(spec, warehouse string) ([]promise.ItemRequest, error) {
	var items []promise.ItemRequest
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code, qtyStr, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("invalid item %q: expected CODE:QTY", entry)
		}

		qty, err := decimal.NewFromString(strings.TrimSpace(qtyStr))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", entry, err)
		}

		items = append(items, promise.ItemRequest{
			ItemCode:  promise.ItemCode(strings.TrimSpace(code)),
			Qty:       qty,
			Warehouse: warehouse,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items given: expected -items \"SKU001:10,SKU002:5\"")
	}
	return items, nil
}

// validateInputs validates the command configuration
func (c *PromiseCommand) validateInputs() error {
	if c.config.DataDir == "" && (c.config.StockFile == "" || c.config.POsFile == "") {
		return fmt.Errorf("must specify either -data directory or both -stock and -pos files")
	}
	if c.config.Items == "" {
		return fmt.Errorf("must specify -items, e.g. -items \"SKU001:10\"")
	}
	if c.config.Format != "text" && c.config.Format != "json" {
		return fmt.Errorf("unsupported format %q: expected text or json", c.config.Format)
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PromiseCommand) resolveInputFiles() (map[string]string, error) {
	var stockPath, posPath string

	if c.config.DataDir != "" {
		stockPath = filepath.Join(c.config.DataDir, "stock.csv")
		posPath = filepath.Join(c.config.DataDir, "purchase_orders.csv")
	} else {
		stockPath = c.config.StockFile
		posPath = c.config.POsFile
	}

	files := map[string]string{
		"Stock":          stockPath,
		"PurchaseOrders": posPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *PromiseCommand) printHeader(files map[string]string) {
	fmt.Printf("🚀 Promise Engine CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Stock: %s\n", files["Stock"])
	fmt.Printf("  Purchase Orders: %s\n", files["PurchaseOrders"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	fmt.Println()
}

// showHelp displays the help message
func (c *PromiseCommand) showHelp() {
	fmt.Printf(`Promise Engine CLI - Order-to-Promise Date Calculation

USAGE:
    otp -data <directory> -items "SKU001:10"       # Use data directory with CSV files
    otp -stock <file> -pos <file> -items ...       # Use individual CSV files

OPTIONS:
    -data <dir>         Path to data directory containing CSV files
    -stock <file>       Path to stock CSV file
    -pos <file>         Path to purchase orders CSV file
    -config <file>      Path to YAML configuration file (optional)
    -customer <name>    Customer name for the order (default: CLI)
    -items <list>       Comma-separated item:qty pairs, e.g. "SKU001:10,SKU002:5"
    -warehouse <name>   Warehouse hint applied to all items (optional)
    -desired <date>     Desired delivery date, YYYY-MM-DD (optional)
    -mode <mode>        Desired date mode: LATEST_ACCEPTABLE, STRICT_FAIL, NO_EARLY_DELIVERY
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

CSV FILE FORMATS:

stock.csv:
    item_code,warehouse,actual_qty,reserved_qty
    SKU001,Stores - WH,100,20

purchase_orders.csv:
    po_id,item_code,qty,expected_date,warehouse
    PO-001,SKU001,50,2026-03-15,Stores - WH

EXAMPLES:
    # Promise an order against a data directory
    otp -data data/ -items "SKU001:10,SKU002:5" -verbose

    # Enforce a hard delivery deadline
    otp -data data/ -items "SKU001:10" -desired 2026-03-01 -mode STRICT_FAIL

    # Hold delivery to the desired date
    otp -data data/ -items "SKU001:10" -desired 2026-03-20 -mode NO_EARLY_DELIVERY

    # JSON output for scripting
    otp -data data/ -items "SKU001:10" -format json
`)
}
