package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/evm-rpc-client/internal/provider"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// RenderConsistency prints per-provider heads and hashes, then the verdict.
func RenderConsistency(w io.Writer, c *provider.Consistency) {
	fmt.Fprintln(w)
	title := "Provider Consistency"
	if c.Leader != "" {
		title += " " + dim(fmt.Sprintf("(reference block %s, best head %s)",
			FormatNumber(c.ReferenceHeight), FormatNumber(c.MaxHeight)))
	}
	fmt.Fprintln(w, bold(title))
	fmt.Fprintln(w)

	majority := ""
	if len(c.Groups) > 0 {
		majority = c.Groups[0].Hash
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Provider", "Head", "Hash").
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithWidthFunc(visibleWidth)

	for _, h := range c.Heads {
		switch {
		case h.Err != nil:
			tbl.AddRow(h.Name, red("✗"), red(errorLabel(h.Err)))
		case h.Hash == majority:
			tbl.AddRow(h.Name, formatHead(h, c), green(TruncateHash(h.Hash)))
		default:
			tbl.AddRow(h.Name, formatHead(h, c), red(TruncateHash(h.Hash)))
		}
	}
	tbl.Print()
	fmt.Fprintln(w)

	if c.Consistent() {
		fmt.Fprintf(w, "  %s all providers agree\n", green("✓"))
	}
	for _, issue := range c.Issues {
		fmt.Fprintf(w, "  %s %s\n", yellow("⚠"), issue)
	}
	for _, h := range c.Heads {
		if h.Err != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", red("✗"), h.Name, h.Err)
		}
	}
}

func formatHead(h provider.Head, c *provider.Consistency) string {
	if c.Leader == "" {
		return "—"
	}
	head := FormatNumber(h.Height)
	if lag := c.MaxHeight - h.Height; lag > 0 {
		head += " " + dim(fmt.Sprintf("(-%d)", lag))
	}
	return head
}

func errorLabel(err error) string {
	if t := rpc.TypeOf(err); t != "" {
		return string(t)
	}
	return "error"
}

// ConsistencyReport is the JSON form of the compare command.
type ConsistencyReport struct {
	Consistent      bool                 `json:"consistent"`
	ReferenceHeight uint64               `json:"referenceHeight,omitempty"`
	MaxHeight       uint64               `json:"maxHeight,omitempty"`
	Leader          string               `json:"leader,omitempty"`
	Drift           uint64               `json:"drift"`
	Heads           []HeadReport         `json:"providers"`
	Groups          []provider.HashGroup `json:"hashGroups"`
	Issues          []string             `json:"issues"`
}

// HeadReport is one provider in ConsistencyReport.
type HeadReport struct {
	Name   string `json:"name"`
	Height uint64 `json:"height,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewConsistencyReport converts a consistency check for JSON output.
func NewConsistencyReport(c *provider.Consistency) ConsistencyReport {
	report := ConsistencyReport{
		Consistent:      c.Consistent(),
		ReferenceHeight: c.ReferenceHeight,
		MaxHeight:       c.MaxHeight,
		Leader:          c.Leader,
		Drift:           c.Drift,
		Heads:           make([]HeadReport, 0, len(c.Heads)),
		Groups:          c.Groups,
		Issues:          c.Issues,
	}
	if report.Groups == nil {
		report.Groups = []provider.HashGroup{}
	}
	if report.Issues == nil {
		report.Issues = []string{}
	}
	for _, h := range c.Heads {
		hr := HeadReport{Name: h.Name, Height: h.Height, Hash: h.Hash}
		if h.Err != nil {
			hr.Error = h.Err.Error()
		}
		report.Heads = append(report.Heads, hr)
	}
	return report
}
