package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orderpromise/otp/pkg/promise"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

// DataConfig points at the CSV snapshots loaded on startup.
type DataConfig struct {
	StockFile          string `yaml:"stock_file"`
	PurchaseOrdersFile string `yaml:"purchase_orders_file"`
}

// LeadTimeConfig is the processing lead-time override hierarchy: item
// overrides win over warehouse overrides, which win over the default.
type LeadTimeConfig struct {
	Items       map[string]int `yaml:"items"`
	Warehouses  map[string]int `yaml:"warehouses"`
	DefaultDays int            `yaml:"default_days"`
}

// Config is the full daemon configuration.
type Config struct {
	Server           ServerConfig   `yaml:"server"`
	Data             DataConfig     `yaml:"data"`
	DefaultWarehouse string         `yaml:"default_warehouse"`
	DefaultRules     promise.Rules  `yaml:"default_rules"`
	LeadTimes        LeadTimeConfig `yaml:"lead_times"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Data: DataConfig{
			StockFile:          "data/stock.csv",
			PurchaseOrdersFile: "data/purchase_orders.csv",
		},
		DefaultWarehouse: "Stores - WH",
		DefaultRules: promise.Rules{
			NoWeekends:         true,
			CutoffTime:         "14:00",
			Timezone:           "UTC",
			LeadTimeBufferDays: 1,
		},
		LeadTimes: LeadTimeConfig{
			DefaultDays: 2,
		},
	}
}

// Load reads a YAML config file layered over the built-in defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges a bad file is most likely to get wrong.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.Server.MetricsPort)
	}
	if c.Server.MetricsPort == c.Server.Port {
		return fmt.Errorf("metrics port %d collides with server port", c.Server.MetricsPort)
	}
	if c.LeadTimes.DefaultDays < 0 {
		return fmt.Errorf("default lead time days must not be negative, got %d", c.LeadTimes.DefaultDays)
	}
	for item, days := range c.LeadTimes.Items {
		if days < 0 {
			return fmt.Errorf("lead time for item %s must not be negative, got %d", item, days)
		}
	}
	for warehouse, days := range c.LeadTimes.Warehouses {
		if days < 0 {
			return fmt.Errorf("lead time for warehouse %s must not be negative, got %d", warehouse, days)
		}
	}
	return nil
}

// EngineConfig translates the file configuration into engine settings.
func (c *Config) EngineConfig() promise.EngineConfig {
	itemLeadTimes := make(map[promise.ItemCode]int, len(c.LeadTimes.Items))
	for item, days := range c.LeadTimes.Items {
		itemLeadTimes[promise.ItemCode(item)] = days
	}

	return promise.EngineConfig{
		DefaultWarehouse:    c.DefaultWarehouse,
		DefaultRules:        c.DefaultRules,
		ItemLeadTimes:       itemLeadTimes,
		WarehouseLeadTimes:  c.LeadTimes.Warehouses,
		DefaultLeadTimeDays: c.LeadTimes.DefaultDays,
	}
}
