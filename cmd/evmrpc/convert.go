package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/pkg/numconv"
)

func convertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between hex quantities and decimal (offline)",
	}

	hexCmd := &cobra.Command{
		Use:         "hex <0x...>",
		Short:       "Convert a 0x-prefixed hex quantity to decimal",
		Example:     "  evmrpc convert hex 0x807b3c",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dec, err := numconv.HexToDecimalString(args[0])
			if err != nil {
				return err
			}
			return a.renderConversion(args[0], dec)
		},
	}

	decCmd := &cobra.Command{
		Use:         "dec <number>",
		Short:       "Convert a decimal number to a 0x-prefixed hex quantity",
		Example:     "  evmrpc convert dec 8420156",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := numconv.DecimalToHex(args[0])
			if err != nil {
				return err
			}
			return a.renderConversion(args[0], hex)
		},
	}

	cmd.AddCommand(hexCmd, decCmd)
	return cmd
}

func (a *app) renderConversion(in, out string) error {
	return a.render(struct {
		Input  string `json:"input"`
		Output string `json:"output"`
	}{in, out}, func(w io.Writer) {
		fmt.Fprintln(w, out)
	})
}
