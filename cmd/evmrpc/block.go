package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/output"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

func blockCmd(a *app) *cobra.Command {
	var (
		full bool
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "block [number|tag|hash]",
		Short: "Print a block header summary",
		Long: `Fetch a block by number, tag or hash.

A 66-character 0x value is treated as a block hash. Anything else is a
decimal or hex block number or one of latest, earliest, pending, safe,
finalized. With no argument the latest block is fetched.

Examples:
  evmrpc block
  evmrpc block 8420156
  evmrpc block finalized --full
  evmrpc block 0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2 --raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			method, ref := blockRequest(arg)

			if raw {
				result, err := rpc.Do[json.RawMessage](cmd.Context(), c, method, ref, full)
				if err != nil {
					return err
				}
				return output.WriteRawJSON(a.out, result)
			}

			block, latency, err := timed(func() (*rpc.Block, error) {
				if method == "eth_getBlockByHash" {
					return c.GetBlockByHash(cmd.Context(), ref, full)
				}
				return c.GetBlockByNumber(cmd.Context(), ref, full)
			})
			if err != nil {
				return err
			}
			summary, err := output.SummarizeBlock(block)
			if err != nil {
				return err
			}
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				Block *output.BlockSummary `json:"block"`
				Meta  output.Meta          `json:"meta"`
			}{summary, meta}, func(w io.Writer) {
				output.RenderBlock(w, summary, meta, a.now())
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Request full transaction objects")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the node's JSON result unmodified")
	return cmd
}

// blockRequest picks the lookup method for a user-supplied block reference.
func blockRequest(arg string) (method, ref string) {
	if rpc.IsHash(arg) {
		return "eth_getBlockByHash", arg
	}
	return "eth_getBlockByNumber", rpc.NormalizeBlockArg(arg)
}
