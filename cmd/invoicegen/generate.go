package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maxerler/invoice-generator/internal/batch"
	"github.com/maxerler/invoice-generator/internal/config"
	"github.com/maxerler/invoice-generator/internal/loader"
	"github.com/maxerler/invoice-generator/internal/notify"
	"github.com/maxerler/invoice-generator/internal/render"
	"github.com/maxerler/invoice-generator/pkg/utils"
)

const performanceDateLayout = "2006-01-02"

var (
	configPath      string
	performanceDate string
	dryRun          bool

	companyPath      string
	ordersPath       string
	invoicePath      string
	notificationPath string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PDF invoice per order and mail it to the customer",
	Long: `Reads the configured data files, generates one PDF invoice per order
and sends each invoice to its customer by email. A failing order is
reported and skipped; the remaining orders are still processed.`,
	Example: `  # Generate and send all invoices
  invoicegen generate

  # Generate without sending any mail
  invoicegen generate --dry-run

  # Backdate the performance date
  invoicegen generate --performance-date 2024-03-02`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the application configuration")
	generateCmd.Flags().StringVar(&performanceDate, "performance-date", "", "performance date (YYYY-MM-DD, default today)")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate invoices but skip email dispatch")
	generateCmd.Flags().StringVar(&companyPath, "company", "", "company profile (overrides data.company_path)")
	generateCmd.Flags().StringVar(&ordersPath, "orders", "", "order export (overrides data.orders_path)")
	generateCmd.Flags().StringVar(&invoicePath, "invoice", "", "invoice layout (overrides data.invoice_path)")
	generateCmd.Flags().StringVar(&notificationPath, "notification", "", "notification settings (overrides data.notification_path)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// explicit path flags win over the configuration file
	if companyPath != "" {
		cfg.Data.CompanyPath = companyPath
	}
	if ordersPath != "" {
		cfg.Data.OrdersPath = ordersPath
	}
	if invoicePath != "" {
		cfg.Data.InvoicePath = invoicePath
	}
	if notificationPath != "" {
		cfg.Data.NotificationPath = notificationPath
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	perfDate := time.Now()
	if performanceDate != "" {
		perfDate, err = time.Parse(performanceDateLayout, performanceDate)
		if err != nil {
			return fmt.Errorf("invalid performance date: %w", err)
		}
	}

	logger.Info("Starting invoice generation",
		zap.String("version", version),
		zap.String("config", configPath),
		zap.Bool("dry_run", dryRun || cfg.Batch.DryRun))

	company, err := loader.LoadCompany(cfg.Data.CompanyPath)
	if err != nil {
		return err
	}

	invoiceCfg, err := loader.LoadInvoiceConfig(cfg.Data.InvoicePath)
	if err != nil {
		return err
	}

	orders, err := loader.LoadOrders(cfg.Data.OrdersPath, loader.ShippingOptions{
		Label:        cfg.Shipping.Label,
		DefaultPrice: decimal.NewFromFloat(cfg.Shipping.DefaultPrice),
	})
	if err != nil {
		return err
	}

	var sender notify.Sender
	if dryRun || cfg.Batch.DryRun {
		sender = notify.NewNopSender(logger)
	} else {
		notificationCfg, err := loader.LoadNotificationConfig(cfg.Data.NotificationPath)
		if err != nil {
			return err
		}
		sender = notify.NewSMTPSender(notificationCfg, logger)
	}

	runner := batch.NewRunner(invoiceCfg, company, render.NewPDFRenderer(), sender, cfg.Batch.Workers, logger)
	failures := runner.Run(cmd.Context(), orders, perfDate)

	logger.Info("Invoice generation finished",
		zap.Int("orders", len(orders)),
		zap.Int("failed", len(failures)))

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d orders failed", len(failures), len(orders))
	}
	return nil
}
