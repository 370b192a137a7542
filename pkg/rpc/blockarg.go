package rpc

import (
	"strings"

	"github.com/dmagro/evm-rpc-client/pkg/numconv"
)

var blockTags = map[string]bool{
	BlockLatest:    true,
	BlockEarliest:  true,
	BlockPending:   true,
	BlockSafe:      true,
	BlockFinalized: true,
}

// IsBlockTag reports whether s is one of the symbolic block references.
func IsBlockTag(s string) bool {
	return blockTags[s]
}

// IsHash reports whether s looks like a 0x-prefixed 32-byte hash.
func IsHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := numconv.HexToDecimal(s)
	return err == nil
}

// NormalizeBlockArg turns a user-supplied block identifier into the form the
// node expects:
//
//	""          -> "latest"
//	"Finalized" -> "finalized"
//	"8420156"   -> "0x807b3c"
//	"0x807b3c"  -> "0x807b3c"
//
// Anything else is returned trimmed and lowercased for the node to reject.
// The Client methods never call this; it is for callers taking user input.
func NormalizeBlockArg(arg string) string {
	arg = strings.TrimSpace(strings.ToLower(arg))

	if arg == "" {
		return BlockLatest
	}
	if IsBlockTag(arg) || strings.HasPrefix(arg, "0x") {
		return arg
	}

	hex, err := numconv.DecimalToHex(arg)
	if err != nil {
		return arg
	}
	return hex
}
