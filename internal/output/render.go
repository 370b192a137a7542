package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/evm-rpc-client/internal/provider"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// RenderBlock prints a block header summary.
func RenderBlock(w io.Writer, s *BlockSummary, meta Meta, now time.Time) {
	RenderFields(w, "Block #"+FormatNumber(s.Number), []Field{
		{"Hash", orDash(s.Hash)},
		{"Parent", s.ParentHash},
		{"Timestamp", FormatTimestamp(s.Timestamp, now)},
		{"Gas", fmt.Sprintf("%s / %s %s", FormatNumber(s.GasUsed), FormatNumber(s.GasLimit),
			dim(fmt.Sprintf("(%.1f%%)", s.GasPercent())))},
		{"Base Fee", FormatGwei(s.baseFee)},
		{"Miner", s.Miner},
		{"Transactions", strconv.Itoa(s.TxCount)},
		{"Uncles", strconv.Itoa(s.UncleCount)},
		{"Provider", fmt.Sprintf("%s %s", meta.Provider, dim(fmt.Sprintf("(%dms)", meta.LatencyMs)))},
	})
}

// RenderTransaction prints a transaction summary.
func RenderTransaction(w io.Writer, s *TxSummary, meta Meta) {
	status := green(s.Status)
	block := "—"
	if s.BlockNumber == nil {
		status = yellow(s.Status)
	} else {
		block = FormatNumber(*s.BlockNumber)
	}

	RenderFields(w, "Transaction "+TruncateHash(s.Hash), []Field{
		{"Hash", s.Hash},
		{"Status", status},
		{"Block", block},
		{"From", s.From},
		{"To", derefOrDash(s.To)},
		{"Value", fmt.Sprintf("%s %s", FormatEther(s.value), dim("("+FormatBig(s.value)+" wei)"))},
		{"Nonce", strconv.FormatUint(s.Nonce, 10)},
		{"Gas Limit", FormatNumber(s.Gas)},
		{"Gas Price", FormatGwei(s.gasPrice)},
		{"Type", orDash(s.Type)},
		{"Input", fmt.Sprintf("%d bytes", s.InputBytes)},
		{"Provider", fmt.Sprintf("%s %s", meta.Provider, dim(fmt.Sprintf("(%dms)", meta.LatencyMs)))},
	})
}

// RenderReceipt prints a receipt summary.
func RenderReceipt(w io.Writer, s *ReceiptSummary, meta Meta) {
	status := green("✓ success")
	if !s.Succeeded {
		status = red("✗ failed")
	}

	RenderFields(w, "Receipt "+TruncateHash(s.TransactionHash), []Field{
		{"Transaction", s.TransactionHash},
		{"Status", status},
		{"Block", fmt.Sprintf("%s %s", FormatNumber(s.BlockNumber), dim(TruncateHash(s.BlockHash)))},
		{"From", s.From},
		{"To", derefOrDash(s.To)},
		{"Contract", derefOrDash(s.ContractAddress)},
		{"Gas Used", FormatNumber(s.GasUsed)},
		{"Cumulative Gas", FormatNumber(s.CumulativeGasUsed)},
		{"Effective Price", FormatGwei(s.effectiveGasPrice)},
		{"Logs", strconv.Itoa(s.Logs)},
		{"Provider", fmt.Sprintf("%s %s", meta.Provider, dim(fmt.Sprintf("(%dms)", meta.LatencyMs)))},
	})
}

// RenderLogs prints event logs in receipt order. Nothing is printed for an
// empty slice.
func RenderLogs(w io.Writer, logs []rpc.Log) {
	for _, l := range logs {
		fmt.Fprintf(w, "  %s %s\n", bold("Log "+l.LogIndex), l.Address)
		for i, topic := range l.Topics {
			fmt.Fprintf(w, "    %s %s\n", dim(fmt.Sprintf("topic[%d]", i)), topic)
		}
		fmt.Fprintf(w, "    %s %s\n", dim("data    "), l.Data)
	}
	if len(logs) > 0 {
		fmt.Fprintln(w)
	}
}

// RenderStatus prints the provider probe table followed by any errors.
func RenderStatus(w io.Writer, health []provider.Health, samples int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", bold("Provider Status"), dim(fmt.Sprintf("(%d samples, best head %s)",
		samples, FormatNumber(provider.BestHeight(health)))))
	fmt.Fprintln(w)

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Provider", "Status", "Chain", "Head", "Lag", "p50", "p95", "Max", "Success").
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithWidthFunc(visibleWidth)

	for _, h := range health {
		tbl.AddRow(
			h.Name,
			formatStatus(h.Status),
			formatChainID(h.ChainID),
			formatHeight(h),
			formatLag(h),
			FormatDuration(h.Latency.P50),
			FormatDuration(h.Latency.P95),
			FormatDuration(h.Latency.Max),
			formatSuccess(h),
		)
	}
	tbl.Print()
	fmt.Fprintln(w)

	for _, h := range health {
		if h.LastErr != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", red("✗"), h.Name, h.LastErr)
		}
	}
}

func formatStatus(s provider.Status) string {
	switch s {
	case provider.StatusUp:
		return green("✓ UP")
	case provider.StatusSlow:
		return yellow("⚠ SLOW")
	case provider.StatusDegraded:
		return yellow("⚠ DEG")
	case provider.StatusDown:
		return red("✗ DOWN")
	default:
		return string(s)
	}
}

func formatChainID(hex string) string {
	if hex == "" {
		return "—"
	}
	q, err := NewQuantity(hex)
	if err != nil {
		return hex
	}
	return q.Decimal
}

func formatHeight(h provider.Health) string {
	if h.Successes == 0 {
		return "—"
	}
	return FormatNumber(h.Height)
}

func formatLag(h provider.Health) string {
	switch {
	case h.Successes == 0:
		return "—"
	case h.Lag == 0:
		return green("0")
	case h.Lag <= 2:
		return yellow(fmt.Sprintf("-%d", h.Lag))
	default:
		return red(fmt.Sprintf("-%d", h.Lag))
	}
}

func formatSuccess(h provider.Health) string {
	str := fmt.Sprintf("%d/%d", h.Successes, h.Samples)
	rate := h.SuccessRate()
	switch {
	case rate >= 99:
		return green(str)
	case rate >= 90:
		return yellow(str)
	default:
		return red(str)
	}
}

// StatusReport is the JSON form of the status command.
type StatusReport struct {
	Samples    int              `json:"samples"`
	BestHeight uint64           `json:"bestHeight"`
	Providers  []ProviderStatus `json:"providers"`
}

// ProviderStatus is one row of StatusReport.
type ProviderStatus struct {
	Name      string                `json:"name"`
	Status    provider.Status       `json:"status"`
	ChainID   string                `json:"chainId,omitempty"`
	Height    uint64                `json:"height"`
	Lag       uint64                `json:"lag"`
	Samples   int                   `json:"samples"`
	Successes int                   `json:"successes"`
	LatencyMs LatencyMs             `json:"latencyMs"`
	Errors    map[rpc.ErrorType]int `json:"errors,omitempty"`
	LastError string                `json:"lastError,omitempty"`
}

// LatencyMs holds latency percentiles in milliseconds.
type LatencyMs struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

// NewStatusReport converts probe results for JSON output.
func NewStatusReport(health []provider.Health, samples int) StatusReport {
	report := StatusReport{
		Samples:    samples,
		BestHeight: provider.BestHeight(health),
		Providers:  make([]ProviderStatus, 0, len(health)),
	}
	for _, h := range health {
		ps := ProviderStatus{
			Name:      h.Name,
			Status:    h.Status,
			ChainID:   h.ChainID,
			Height:    h.Height,
			Lag:       h.Lag,
			Samples:   h.Samples,
			Successes: h.Successes,
			LatencyMs: LatencyMs{
				P50: millis(h.Latency.P50),
				P95: millis(h.Latency.P95),
				P99: millis(h.Latency.P99),
				Max: millis(h.Latency.Max),
			},
		}
		if len(h.Errors) > 0 {
			ps.Errors = h.Errors
		}
		if h.LastErr != nil {
			ps.LastError = h.LastErr.Error()
		}
		report.Providers = append(report.Providers, ps)
	}
	return report
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
