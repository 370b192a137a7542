// Command evmrpc queries Ethereum-compatible JSON-RPC providers from the
// command line.
//
// Usage examples:
//
//	evmrpc block-number
//	evmrpc balance 0xdd0446989c851a76bf03e10a04eae1488e58a0d9
//	evmrpc block 8420156 --full
//	evmrpc status --samples 10
//	evmrpc --url http://127.0.0.1:8545 chain-id --format json
//	evmrpc convert hex 0x807b3c
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmagro/evm-rpc-client/pkg/numconv"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError writes "Error: <type>: <message>", omitting the type for
// errors that did not come from an RPC call or a numeric conversion.
func printError(w io.Writer, err error) {
	if t := errorType(err); t != "" {
		fmt.Fprintf(w, "Error: %s: %v\n", t, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func errorType(err error) rpc.ErrorType {
	if t := rpc.TypeOf(err); t != "" {
		return t
	}
	if errors.Is(err, numconv.ErrNumericParse) {
		return rpc.ErrorTypeNumericParse
	}
	return ""
}
