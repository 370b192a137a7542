// Package numconv converts between the 0x-prefixed hexadecimal quantities that
// Ethereum JSON-RPC nodes return and decimal values, using 256-bit unsigned
// integers.
//
// Nodes encode every quantity (balances, gas prices, chain ids) as a hex
// string such as "0x1a". HexToDecimal turns that into a *uint256.Int and
// DecimalToHex goes the other way for building request parameters:
//
//	v, _ := numconv.HexToDecimal("0x1a") // v.Dec() == "26"
//	h, _ := numconv.DecimalToHex("26")   // h == "0x1a"
package numconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// maxHexDigits is the width of 2^256-1 in hex once leading zeros are gone.
const maxHexDigits = 64

var (
	// ErrNumericParse matches every error returned by this package.
	ErrNumericParse = errors.New("numeric parse error")

	// ErrMissingPrefix is returned when a hex quantity has no "0x" prefix.
	ErrMissingPrefix = errors.New("missing 0x prefix")

	// ErrSyntax is returned for empty input or characters outside the base.
	ErrSyntax = errors.New("invalid syntax")

	// ErrOverflow is returned when the value does not fit in 256 bits.
	ErrOverflow = errors.New("value overflows 256 bits")

	// ErrUint64Range is returned by HexToUint64 when the value exceeds 64 bits.
	ErrUint64Range = errors.New("value overflows uint64")
)

// ParseError records a failed conversion.
type ParseError struct {
	Func  string // function that failed, e.g. "HexToDecimal"
	Input string // the input as given
	Err   error  // one of ErrMissingPrefix, ErrSyntax, ErrOverflow, ErrUint64Range
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("numconv.%s: parsing %q: %v", e.Func, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNumericParse) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrNumericParse }

// HexToDecimal parses a 0x-prefixed hexadecimal string into a 256-bit
// unsigned integer. The prefix is mandatory; leading zeros are accepted.
func HexToDecimal(hex string) (*uint256.Int, error) {
	v, err := parseHex(hex)
	if err != nil {
		return nil, &ParseError{Func: "HexToDecimal", Input: hex, Err: err}
	}
	return v, nil
}

// HexToDecimalString is HexToDecimal rendered as a base-10 string.
func HexToDecimalString(hex string) (string, error) {
	v, err := parseHex(hex)
	if err != nil {
		return "", &ParseError{Func: "HexToDecimalString", Input: hex, Err: err}
	}
	return v.Dec(), nil
}

// HexToUint64 parses a 0x-prefixed hex quantity that must fit in 64 bits,
// such as a block number or timestamp.
func HexToUint64(hex string) (uint64, error) {
	v, err := parseHex(hex)
	if err != nil {
		return 0, &ParseError{Func: "HexToUint64", Input: hex, Err: err}
	}
	if !v.IsUint64() {
		return 0, &ParseError{Func: "HexToUint64", Input: hex, Err: ErrUint64Range}
	}
	return v.Uint64(), nil
}

// DecimalToHex parses a base-10 string and returns its minimal lowercase
// 0x-prefixed hex form. Zero renders as "0x0".
func DecimalToHex(decimal string) (string, error) {
	if decimal == "" || !isDigits(decimal, isDecDigit) {
		return "", &ParseError{Func: "DecimalToHex", Input: decimal, Err: ErrSyntax}
	}
	v, err := uint256.FromDecimal(decimal)
	if err != nil {
		if errors.Is(err, uint256.ErrBig256Range) {
			return "", &ParseError{Func: "DecimalToHex", Input: decimal, Err: ErrOverflow}
		}
		return "", &ParseError{Func: "DecimalToHex", Input: decimal, Err: ErrSyntax}
	}
	return v.Hex(), nil
}

// parseHex validates the prefix and digits itself so the error kinds stay
// stable, then hands a canonical (no leading zeros) string to uint256.
func parseHex(s string) (*uint256.Int, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, ErrMissingPrefix
	}
	digits := s[2:]
	if digits == "" || !isDigits(digits, isHexDigit) {
		return nil, ErrSyntax
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	if len(digits) > maxHexDigits {
		return nil, ErrOverflow
	}

	v, err := uint256.FromHex("0x" + digits)
	if err != nil {
		if errors.Is(err, uint256.ErrBig256Range) {
			return nil, ErrOverflow
		}
		return nil, ErrSyntax
	}
	return v, nil
}

func isDigits(s string, ok func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !ok(s[i]) {
			return false
		}
	}
	return true
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
