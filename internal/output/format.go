package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/holiman/uint256"
)

// FormatNumber adds thousand separators: 8420156 -> "8,420,156".
func FormatNumber(n uint64) string {
	return groupDigits(strconv.FormatUint(n, 10))
}

// FormatBig is FormatNumber for 256-bit values.
func FormatBig(v *uint256.Int) string {
	if v == nil {
		return "—"
	}
	return groupDigits(v.Dec())
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatUnits renders v divided by 10^decimals without rounding, trimming
// trailing fractional zeros: FormatUnits(1500000000, 9) -> "1.5".
func FormatUnits(v *uint256.Int, decimals uint64) string {
	if v == nil {
		return "—"
	}
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(decimals))
	quo, rem := new(uint256.Int).DivMod(v, scale, new(uint256.Int))

	frac := rem.Dec()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return quo.Dec()
	}
	return quo.Dec() + "." + frac
}

// FormatGwei converts wei to gwei for display. nil (no base fee before
// London) renders as "—".
func FormatGwei(wei *uint256.Int) string {
	if wei == nil {
		return "—"
	}
	return FormatUnits(wei, 9) + " gwei"
}

// FormatEther converts wei to the chain's native unit (18 decimals).
func FormatEther(wei *uint256.Int) string {
	if wei == nil {
		return "—"
	}
	return FormatUnits(wei, 18)
}

// FormatTimestamp renders a unix timestamp as UTC with a relative suffix:
// "2024-01-12 18:36:51 UTC (14s ago)".
func FormatTimestamp(ts uint64, now time.Time) string {
	t := time.Unix(int64(ts), 0)
	ago := now.Sub(t)

	var agoStr string
	switch {
	case ago < 0:
		agoStr = "in the future"
	case ago < time.Minute:
		agoStr = fmt.Sprintf("%ds ago", int(ago.Seconds()))
	case ago < time.Hour:
		agoStr = fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		agoStr = fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		agoStr = fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}

	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04:05 UTC"), agoStr)
}

// FormatDuration renders d at a resolution suited to RPC latencies.
func FormatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "—"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}

// TruncateHash shortens a hash to 0x1234...abcd.
func TruncateHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:6] + "..." + hash[len(hash)-4:]
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func derefOrDash(s *string) string {
	if s == nil {
		return "—"
	}
	return orDash(*s)
}
