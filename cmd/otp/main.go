package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/orderpromise/otp/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		dataDir = flag.String(
			"data",
			"",
			"Path to data directory containing CSV files",
		)
		stockFile  = flag.String("stock", "", "Path to stock CSV file")
		posFile    = flag.String("pos", "", "Path to purchase orders CSV file")
		configFile = flag.String("config", "", "Path to YAML configuration file (optional)")
		customer   = flag.String("customer", "CLI", "Customer name for the order")
		items      = flag.String("items", "", `Comma-separated item:qty pairs, e.g. "SKU001:10,SKU002:5"`)
		warehouse  = flag.String("warehouse", "", "Warehouse hint applied to all items (optional)")
		desired    = flag.String("desired", "", "Desired delivery date, YYYY-MM-DD (optional)")
		mode       = flag.String("mode", "", "Desired date mode: LATEST_ACCEPTABLE, STRICT_FAIL, NO_EARLY_DELIVERY")
		format     = flag.String("format", "text", "Output format: text, json")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		DataDir:    *dataDir,
		StockFile:  *stockFile,
		POsFile:    *posFile,
		ConfigFile: *configFile,
		Customer:   *customer,
		Items:      *items,
		Warehouse:  *warehouse,
		Desired:    *desired,
		Mode:       *mode,
		Format:     *format,
		Verbose:    *verbose,
		Help:       *help,
	}

	// Create and execute command
	cmd := commands.NewPromiseCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
