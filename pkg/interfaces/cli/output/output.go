package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orderpromise/otp/pkg/promise"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
	Writer  io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer != nil {
		return c.Writer
	}
	return os.Stdout
}

// Generate renders a promise result in the configured format.
func Generate(result *promise.Result, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *promise.Result, config Config) error {
	w := config.writer()

	fmt.Fprintf(w, "📅 Promise Summary for %s\n", result.Customer)
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "Promise Date: %s\n", result.PromiseDate.Format("2006-01-02"))
	if !result.PromiseDateRaw.Equal(result.PromiseDate) {
		fmt.Fprintf(w, "Ship Ready:   %s\n", result.PromiseDateRaw.Format("2006-01-02"))
	}
	if result.DesiredDate != nil {
		fmt.Fprintf(w, "Desired Date: %s\n", result.DesiredDate.Format("2006-01-02"))
	}
	if result.OnTime != nil {
		if *result.OnTime {
			fmt.Fprintf(w, "On Time:      yes\n")
		} else {
			fmt.Fprintf(w, "On Time:      NO\n")
		}
	}
	if result.AdjustedForNoEarlyDelivery {
		fmt.Fprintf(w, "Held to desired date (no early delivery)\n")
	}
	fmt.Fprintf(w, "Confidence:   %s\n\n", result.Confidence)

	if len(result.Plan) > 0 {
		fmt.Fprintf(w, "📦 Fulfillment Plan:\n")
		fmt.Fprintf(w, "%-15s %-10s %-16s %-12s %-12s %-20s\n",
			"Item", "Qty", "Source", "Available", "Ship Ready", "Warehouse")
		fmt.Fprintf(w, "%-15s %-10s %-16s %-12s %-12s %-20s\n",
			"---------------", "----------", "----------------", "------------", "------------", "--------------------")

		for _, plan := range result.Plan {
			for _, source := range plan.Fulfillment {
				label := string(source.Source)
				if source.SourceID != "" {
					label = source.SourceID
				}
				fmt.Fprintf(w, "%-15s %-10s %-16s %-12s %-12s %-20s\n",
					plan.ItemCode,
					source.Qty.String(),
					label,
					source.AvailableDate.Format("2006-01-02"),
					source.ShipReadyDate.Format("2006-01-02"),
					source.Warehouse)
			}
			if plan.Shortage.IsPositive() {
				fmt.Fprintf(w, "%-15s %-10s SHORT\n", plan.ItemCode, plan.Shortage.String())
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.Blockers) > 0 {
		fmt.Fprintf(w, "⚠️  Blockers:\n")
		for _, blocker := range result.Blockers {
			fmt.Fprintf(w, "  - %s\n", blocker)
		}
		fmt.Fprintln(w)
	}

	if len(result.Options) > 0 {
		fmt.Fprintf(w, "💡 Options:\n")
		for _, option := range result.Options {
			fmt.Fprintf(w, "  [%s] %s\n", option.Type, option.Description)
			if option.Impact != "" {
				fmt.Fprintf(w, "      %s\n", option.Impact)
			}
		}
		fmt.Fprintln(w)
	}

	if config.Verbose && len(result.Reasons) > 0 {
		fmt.Fprintf(w, "📝 Reasons:\n")
		for _, reason := range result.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *promise.Result, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	fmt.Fprintln(config.writer(), string(data))
	return nil
}

// GenerateRejection renders a strict-mode rejection with its options.
func GenerateRejection(unmet *promise.UnmetDesiredDateError, config Config) error {
	if config.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"error":        unmet.Error(),
			"promise_date": unmet.PromiseDate.Format("2006-01-02"),
			"days_late":    unmet.DaysLate,
			"options":      unmet.Options,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rejection to JSON: %w", err)
		}
		fmt.Fprintln(config.writer(), string(data))
		return nil
	}

	w := config.writer()
	fmt.Fprintf(w, "❌ %s\n", unmet.Error())
	if len(unmet.Options) > 0 {
		fmt.Fprintf(w, "\n💡 Options:\n")
		for _, option := range unmet.Options {
			fmt.Fprintf(w, "  [%s] %s\n", option.Type, option.Description)
			if option.Impact != "" {
				fmt.Fprintf(w, "      %s\n", strings.TrimSpace(option.Impact))
			}
		}
	}
	return nil
}
