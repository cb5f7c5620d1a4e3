package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application configuration: where the data files
// live and how the batch run behaves. The invoice layout and the
// notification settings are separate documents loaded by the loader
// package.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Shipping ShippingConfig `mapstructure:"shipping"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// DataConfig holds the paths to the four JSON data files
type DataConfig struct {
	CompanyPath      string `mapstructure:"company_path"`
	OrdersPath       string `mapstructure:"orders_path"`
	InvoicePath      string `mapstructure:"invoice_path"`
	NotificationPath string `mapstructure:"notification_path"`
}

// BatchConfig holds batch run configuration
type BatchConfig struct {
	Workers int  `mapstructure:"workers"`
	DryRun  bool `mapstructure:"dry_run"`
}

// ShippingConfig holds the synthetic shipping line settings
type ShippingConfig struct {
	Label        string  `mapstructure:"label"`
	DefaultPrice float64 `mapstructure:"default_price"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Data file defaults
	viper.SetDefault("data.company_path", "data/company.json")
	viper.SetDefault("data.orders_path", "data/orders.json")
	viper.SetDefault("data.invoice_path", "data/invoice.json")
	viper.SetDefault("data.notification_path", "data/notification.json")

	// Batch defaults
	viper.SetDefault("batch.workers", 1)
	viper.SetDefault("batch.dry_run", false)

	// Shipping defaults
	viper.SetDefault("shipping.label", "Versand")
	viper.SetDefault("shipping.default_price", 0.0)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("data.company_path", "INVOICE_COMPANY_PATH")
	viper.BindEnv("data.orders_path", "INVOICE_ORDERS_PATH")
	viper.BindEnv("data.invoice_path", "INVOICE_CONFIG_PATH")
	viper.BindEnv("data.notification_path", "INVOICE_NOTIFICATION_PATH")
	viper.BindEnv("batch.workers", "INVOICE_BATCH_WORKERS")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.CompanyPath == "" {
		return fmt.Errorf("data.company_path is required")
	}
	if c.Data.OrdersPath == "" {
		return fmt.Errorf("data.orders_path is required")
	}
	if c.Data.InvoicePath == "" {
		return fmt.Errorf("data.invoice_path is required")
	}
	if c.Data.NotificationPath == "" {
		return fmt.Errorf("data.notification_path is required")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1")
	}
	return nil
}
