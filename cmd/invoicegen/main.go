package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicegen",
	Short: "Invoice generator for small businesses",
	Long: `invoicegen turns a company profile, a WooCommerce order export and an
invoice layout configuration into one paginated PDF invoice per order,
then mails each invoice to its customer as an attachment.

All inputs are JSON files:
  company.json       company profile, shareholders and bank account
  orders.json        WooCommerce order export
  invoice.json       invoice layout: fonts, proportions, labels, patterns
  notification.json  SMTP settings and mail text blocks

Example files with the required formats live in the data directory.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use 'invoicegen generate' to generate invoices, or --help for details.")
	},
}

func main() {
	// ambient credentials (SMTP_PASSWORD) may live in a .env file
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
