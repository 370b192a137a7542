package rpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmagro/evm-rpc-client/pkg/numconv"
)

// BlockNumber calls eth_blockNumber and returns the current head height.
//
// Unlike the other quantity calls it parses the hex result itself, so a
// malformed result is an ErrorTypeNumericParse error.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	const method = "eth_blockNumber"

	hex, err := Do[string](ctx, c, method)
	if err != nil {
		return 0, err
	}

	n, err := numconv.HexToUint64(hex)
	if err != nil {
		return 0, &CallError{Type: ErrorTypeNumericParse, Method: method, Err: err}
	}
	return n, nil
}

// GetBalance calls eth_getBalance at the latest block and returns the
// balance in wei as a hex quantity.
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	return c.GetBalanceAt(ctx, address, BlockLatest)
}

// GetBalanceAt calls eth_getBalance at block, which may be a tag or a hex
// block number.
func (c *Client) GetBalanceAt(ctx context.Context, address, block string) (string, error) {
	return hexResult(ctx, c, "eth_getBalance", false, address, block)
}

// ChainID calls eth_chainId and returns the chain id as a hex quantity.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	return hexResult(ctx, c, "eth_chainId", false)
}

// GasPrice calls eth_gasPrice and returns the price in wei as a hex quantity.
func (c *Client) GasPrice(ctx context.Context) (string, error) {
	return hexResult(ctx, c, "eth_gasPrice", false)
}

// GetBlockByNumber calls eth_getBlockByNumber. number is a hex block number
// or a block tag; it is passed through unchecked. With fullTx the block's
// Transactions are objects, otherwise hashes.
func (c *Client) GetBlockByNumber(ctx context.Context, number string, fullTx bool) (*Block, error) {
	return object[Block](ctx, c, "eth_getBlockByNumber", number, fullTx)
}

// GetBlockByHash calls eth_getBlockByHash.
func (c *Client) GetBlockByHash(ctx context.Context, hash string, fullTx bool) (*Block, error) {
	return object[Block](ctx, c, "eth_getBlockByHash", hash, fullTx)
}

// GetTransactionByHash calls eth_getTransactionByHash. An unknown hash yields
// a decode error wrapping ErrNullResult.
func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	return object[Transaction](ctx, c, "eth_getTransactionByHash", hash)
}

// GetTransactionReceipt calls eth_getTransactionReceipt. Pending and unknown
// transactions yield a decode error wrapping ErrNullResult.
func (c *Client) GetTransactionReceipt(ctx context.Context, hash string) (*TransactionReceipt, error) {
	return object[TransactionReceipt](ctx, c, "eth_getTransactionReceipt", hash)
}

// GetCode calls eth_getCode and returns the bytecode at address as hex.
// An account without code returns "0x".
func (c *Client) GetCode(ctx context.Context, address, blockTag string) (string, error) {
	return hexResult(ctx, c, "eth_getCode", true, address, blockTag)
}

func object[T any](ctx context.Context, c *Client, method string, params ...any) (*T, error) {
	v, err := Do[T](ctx, c, method, params...)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// hexResult decodes a string result and checks its 0x prefix. Quantities
// need at least one digit; byte strings (allowEmpty) may be just "0x".
func hexResult(ctx context.Context, c *Client, method string, allowEmpty bool, params ...any) (string, error) {
	s, err := Do[string](ctx, c, method, params...)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(s, "0x") || (!allowEmpty && len(s) == 2) {
		return "", decodeError(method, fmt.Errorf("result %q is not a 0x-prefixed hex value", s))
	}
	return s, nil
}
