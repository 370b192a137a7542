// Package output renders command results for a terminal or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Format selects how a command prints its result.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTerminal, "":
		return FormatTerminal, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected terminal or json)", s)
	}
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// DisableColors turns off color output (for non-TTY or JSON mode).
func DisableColors() {
	color.NoColor = true
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteRawJSON pretty-prints an undecoded node result, falling back to the
// bytes as received when they are not valid JSON.
func WriteRawJSON(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}
	return WriteJSON(w, v)
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// visibleWidth is the printed width of s once ANSI escape codes are removed.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiRegex.ReplaceAllString(s, ""))
}

// Field is one labelled line in a terminal listing.
type Field struct {
	Label string
	Value string
}

// RenderFields prints a bold title, a rule and the fields with labels
// aligned. An empty title prints the fields alone.
func RenderFields(w io.Writer, title string, fields []Field) {
	if title != "" {
		fmt.Fprintf(w, "\n%s\n", bold(title))
		fmt.Fprintln(w, "══════════════════════════════════════════════════")
	}

	width := 0
	for _, f := range fields {
		width = max(width, utf8.RuneCountInString(f.Label)+1)
	}
	for _, f := range fields {
		label := f.Label + ":"
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(label)+1)
		fmt.Fprintf(w, "  %s%s%s\n", cyan(label), pad, f.Value)
	}

	if title != "" {
		fmt.Fprintln(w)
	}
}
