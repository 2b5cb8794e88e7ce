package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/valuation"
)

func newValueCmd() *cobra.Command {
	var (
		areaM2 string
		rate   string
		months int
	)

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Compute a lease value without touching any service",
		Long: `Convert a parcel area from square metres to billing units (boto) and
value a lease at the given rate per 100 units per year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := decimal.NewFromString(areaM2)
			if err != nil {
				return fmt.Errorf("invalid --area-m2 %q: %w", areaM2, err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --rate %q: %w", rate, err)
			}

			units, err := valuation.BillingUnits(area)
			if err != nil {
				return err
			}
			value, err := valuation.ComputeValue(units, r, months)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Area:          %s m2\n", area.String())
			fmt.Fprintf(out, "Billing units: %s\n", units.StringFixed(valuation.AreaPlaces))
			fmt.Fprintf(out, "Rate:          %s per 100 units per year\n", r.StringFixed(valuation.CurrencyPlaces))
			fmt.Fprintf(out, "Duration:      %d months\n", months)
			fmt.Fprintf(out, "Value:         %s\n", value.StringFixed(valuation.CurrencyPlaces))
			return nil
		},
	}

	cmd.Flags().StringVar(&areaM2, "area-m2", "", "parcel area in square metres")
	cmd.Flags().StringVar(&rate, "rate", "", "rate per 100 billing units per year")
	cmd.Flags().IntVar(&months, "months", 12, "lease duration in months")
	_ = cmd.MarkFlagRequired("area-m2")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
