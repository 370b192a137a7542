package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/output"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

func txCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tx <hash>",
		Short: "Print a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			tx, latency, err := timed(func() (*rpc.Transaction, error) {
				return c.GetTransactionByHash(cmd.Context(), args[0])
			})
			if err != nil {
				return err
			}
			summary, err := output.SummarizeTransaction(tx)
			if err != nil {
				return err
			}
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				Transaction *output.TxSummary `json:"transaction"`
				Meta        output.Meta       `json:"meta"`
			}{summary, meta}, func(w io.Writer) {
				output.RenderTransaction(w, summary, meta)
			})
		},
	}
}

func receiptCmd(a *app) *cobra.Command {
	var showLogs bool

	cmd := &cobra.Command{
		Use:   "receipt <hash>",
		Short: "Print a transaction receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			receipt, latency, err := timed(func() (*rpc.TransactionReceipt, error) {
				return c.GetTransactionReceipt(cmd.Context(), args[0])
			})
			if err != nil {
				return err
			}
			summary, err := output.SummarizeReceipt(receipt)
			if err != nil {
				return err
			}
			var logs []rpc.Log
			if showLogs {
				if logs, err = receipt.DecodeLogs(); err != nil {
					return err
				}
			}
			meta := output.NewMeta(c.Name(), latency)

			return a.render(struct {
				Receipt *output.ReceiptSummary `json:"receipt"`
				Logs    []rpc.Log              `json:"logs,omitempty"`
				Meta    output.Meta            `json:"meta"`
			}{summary, logs, meta}, func(w io.Writer) {
				output.RenderReceipt(w, summary, meta)
				output.RenderLogs(w, logs)
			})
		},
	}

	cmd.Flags().BoolVar(&showLogs, "logs", false, "Also print the decoded event logs")
	return cmd
}
