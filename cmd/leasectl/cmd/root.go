// Package cmd provides the leasectl commands.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	defaultPricingURL     = "http://localhost:8081"
	defaultPricingTimeout = 5 * time.Second
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "leasectl",
		Short: "Operator tools for agricultural land leasing",
		Long: `leasectl values leases offline and queries the pricing service.

Examples:
  leasectl value --area-m2 700 --rate 4000000 --months 12
  leasectl price current --url http://pricing:8081
  leasectl price history --output json`,
		SilenceUsage: true,
	}

	root.AddCommand(newValueCmd())
	root.AddCommand(newPriceCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
