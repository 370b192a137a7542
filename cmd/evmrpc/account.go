package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/output"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// blockFlag resolves a --block value, falling back to defaults.block_tag.
func (a *app) blockFlag(v string) string {
	if v == "" {
		return a.cfg.Defaults.BlockTag
	}
	return rpc.NormalizeBlockArg(v)
}

func balanceCmd(a *app) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Print an account's balance",
		Long: `Print the balance of an account in wei and in the chain's native unit.

Example:
  evmrpc balance 0xdd0446989c851a76bf03e10a04eae1488e58a0d9 --block finalized`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			address, at := args[0], a.blockFlag(block)

			hex, latency, err := timed(func() (string, error) {
				return c.GetBalanceAt(cmd.Context(), address, at)
			})
			if err != nil {
				return err
			}
			balance, err := output.NewQuantity(hex)
			if err != nil {
				return err
			}
			meta := output.NewMeta(c.Name(), latency)
			ether := output.FormatEther(balance.Value())

			return a.render(struct {
				Address string          `json:"address"`
				Block   string          `json:"block"`
				Balance output.Quantity `json:"balance"`
				Ether   string          `json:"ether"`
				Meta    output.Meta     `json:"meta"`
			}{address, at, balance, ether, meta}, func(w io.Writer) {
				output.RenderFields(w, "", []output.Field{
					{Label: "Address", Value: address},
					{Label: "Block", Value: at},
					{Label: "Balance", Value: ether},
					{Label: "Wei", Value: output.FormatBig(balance.Value())},
					{Label: "Hex", Value: balance.Hex},
					{Label: "Provider", Value: meta.Provider},
				})
			})
		},
	}

	cmd.Flags().StringVar(&block, "block", "", "Block number or tag (default: defaults.block_tag)")
	return cmd
}

func codeCmd(a *app) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "code <address>",
		Short: "Print the bytecode deployed at an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			address, at := args[0], a.blockFlag(block)

			code, latency, err := timed(func() (string, error) {
				return c.GetCode(cmd.Context(), address, at)
			})
			if err != nil {
				return err
			}
			size := (len(code) - 2) / 2
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				Address   string      `json:"address"`
				Block     string      `json:"block"`
				Code      string      `json:"code"`
				SizeBytes int         `json:"sizeBytes"`
				Meta      output.Meta `json:"meta"`
			}{address, at, code, size, meta}, func(w io.Writer) {
				fields := []output.Field{
					{Label: "Address", Value: address},
					{Label: "Block", Value: at},
					{Label: "Size", Value: fmt.Sprintf("%s bytes", output.FormatNumber(uint64(size)))},
				}
				if size == 0 {
					fields = append(fields, output.Field{Label: "Code", Value: "none (externally owned account)"})
				} else {
					fields = append(fields, output.Field{Label: "Code", Value: code})
				}
				output.RenderFields(w, "", fields)
			})
		},
	}

	cmd.Flags().StringVar(&block, "block", "", "Block number or tag (default: defaults.block_tag)")
	return cmd
}
