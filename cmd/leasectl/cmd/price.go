package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingapi"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingclient"
)

type priceOptions struct {
	url     string
	timeout time.Duration
	output  string
}

func newPriceCmd() *cobra.Command {
	opts := &priceOptions{}

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Query the pricing service",
	}
	cmd.PersistentFlags().StringVar(&opts.url, "url", envOr("PRICING_SERVICE_URL", defaultPricingURL), "pricing service base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultPricingTimeout, "request timeout")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")

	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the price in effect today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			price, err := client.GetCurrentPrice(cmd.Context())
			if errors.Is(err, pricingclient.ErrNoCurrentPrice) {
				fmt.Fprintln(cmd.OutOrStdout(), pricingapi.NoCurrentPriceMessage)
				return nil
			}
			if err != nil {
				return err
			}

			if opts.output == "json" {
				return writeJSON(cmd, price)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID:    %d\nYear:  %d\nRate:  %s\n",
				price.ID, price.DesignationYear, pricingapi.FormatRate(price.Rate))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List every price record, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			history, err := client.ListHistory(cmd.Context())
			if err != nil {
				return err
			}

			if opts.output == "json" {
				return writeJSON(cmd, history)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tYEAR\tRATE\tLABEL")
			for _, p := range history {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", p.ID, p.DesignationYear, pricingapi.FormatRate(p.Rate), p.Label)
			}
			return tw.Flush()
		},
	})

	return cmd
}

func (o *priceOptions) client() (*pricingclient.Client, error) {
	switch o.output {
	case "table", "json":
	default:
		return nil, fmt.Errorf("unknown output format %q", o.output)
	}
	return pricingclient.New(o.url, o.timeout)
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
