package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/output"
)

func blockNumberCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block-number",
		Short: "Print the provider's current head block number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			n, latency, err := timed(func() (uint64, error) { return c.BlockNumber(cmd.Context()) })
			if err != nil {
				return err
			}
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				BlockNumber uint64      `json:"blockNumber"`
				Meta        output.Meta `json:"meta"`
			}{n, meta}, func(w io.Writer) {
				output.RenderFields(w, "", []output.Field{
					{Label: "Block", Value: output.FormatNumber(n)},
					{Label: "Provider", Value: meta.Provider},
				})
			})
		},
	}
}

func chainIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chain-id",
		Short: "Print the chain id (EIP-155)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			hex, latency, err := timed(func() (string, error) { return c.ChainID(cmd.Context()) })
			if err != nil {
				return err
			}
			id, err := output.NewQuantity(hex)
			if err != nil {
				return err
			}
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				ChainID output.Quantity `json:"chainId"`
				Meta    output.Meta     `json:"meta"`
			}{id, meta}, func(w io.Writer) {
				output.RenderFields(w, "", []output.Field{
					{Label: "Chain ID", Value: id.Decimal},
					{Label: "Hex", Value: id.Hex},
					{Label: "Provider", Value: meta.Provider},
				})
			})
		},
	}
}

func gasPriceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gas-price",
		Short: "Print the node's suggested gas price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			hex, latency, err := timed(func() (string, error) { return c.GasPrice(cmd.Context()) })
			if err != nil {
				return err
			}
			price, err := output.NewQuantity(hex)
			if err != nil {
				return err
			}
			gwei := output.FormatGwei(price.Value())
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				GasPrice output.Quantity `json:"gasPrice"`
				Gwei     string          `json:"gwei"`
				Meta     output.Meta     `json:"meta"`
			}{price, output.FormatUnits(price.Value(), 9), meta}, func(w io.Writer) {
				output.RenderFields(w, "", []output.Field{
					{Label: "Gas Price", Value: gwei},
					{Label: "Wei", Value: output.FormatBig(price.Value())},
					{Label: "Hex", Value: price.Hex},
					{Label: "Provider", Value: meta.Provider},
				})
			})
		},
	}
}
