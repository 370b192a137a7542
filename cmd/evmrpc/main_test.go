package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmagro/evm-rpc-client/internal/logger"
	"github.com/dmagro/evm-rpc-client/pkg/numconv"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

const (
	testAddress = "0xdd0446989c851a76bf03e10a04eae1488e58a0d9"
	testHash    = "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2"
)

const testBlock = `{
	"number":"0x807b3c","hash":"` + testHash + `",
	"parentHash":"0x1b2f5e09d1c4a1b1a9e7e1c0c3f26c6e2bd77f3b5f4e6c7d8e9f0a1b2c3d4e5f",
	"timestamp":"0x65a1861f","gasLimit":"0x1c9c380","gasUsed":"0xe4e1c0",
	"baseFeePerGas":"0x7","miner":"0x0000000000000000000000000000000000000000",
	"transactions":["0xaa","0xbb"],"uncles":[]
}`

const (
	testTxHash = "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52"
	testToken  = "0x6e226c9bab32be96ff2bc7da14a2bdf1f026045f"
)

const testTransaction = `{
	"blockHash":"` + testHash + `","blockNumber":"0x807b3c",
	"from":"` + testAddress + `","to":"` + testToken + `",
	"gas":"0x5208","gasPrice":"0x3b9aca00","hash":"` + testTxHash + `",
	"input":"0x","nonce":"0x2a","transactionIndex":"0x0",
	"value":"0xde0b6b3a7640000","type":"0x2"
}`

const testReceipt = `{
	"blockHash":"` + testHash + `","blockNumber":"0x807b3c","contractAddress":null,
	"cumulativeGasUsed":"0xa410","effectiveGasPrice":"0x3b9aca00",
	"from":"` + testAddress + `","to":"` + testToken + `","gasUsed":"0x5208",
	"logs":[
		{"address":"` + testToken + `","topics":["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"],
		 "data":"0x0de0b6b3a7640000","blockNumber":"0x807b3c","transactionHash":"` + testTxHash + `",
		 "transactionIndex":"0x0","blockHash":"` + testHash + `","logIndex":"0x0","removed":false},
		{"address":"` + testToken + `","topics":[],"data":"0x","blockNumber":"0x807b3c",
		 "transactionHash":"` + testTxHash + `","transactionIndex":"0x0","blockHash":"` + testHash + `",
		 "logIndex":"0x1","removed":false}
	],
	"logsBloom":"0x00","status":"0x1","transactionHash":"` + testTxHash + `",
	"transactionIndex":"0x0","type":"0x2"
}`

var results = map[string]string{
	"eth_blockNumber":      `"0x10"`,
	"eth_chainId":          `"0x1cf"`,
	"eth_gasPrice":         `"0x3b9aca00"`,
	"eth_getBalance":       `"0xde0b6b3a7640000"`,
	"eth_getCode":          `"0x6080604052"`,
	"eth_getBlockByNumber": testBlock,
	"eth_getBlockByHash":   testBlock,

	"eth_getTransactionByHash":  testTransaction,
	"eth_getTransactionReceipt": testReceipt,
}

type stubNode struct {
	mu     sync.Mutex
	last   rpc.Request
	reject string // method answered with a -32601 error
}

func (n *stubNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpc.Request
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &req)

	n.mu.Lock()
	n.last = req
	reject := n.reject
	n.mu.Unlock()

	result, ok := results[req.Method]
	if !ok || req.Method == reject {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"the method %s does not exist/is not available"}}`, req.ID, req.Method)
		return
	}
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
}

func (n *stubNode) rejectMethod(method string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reject = method
}

func (n *stubNode) lastRequest() rpc.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func startNode(t *testing.T) (*stubNode, string) {
	t.Helper()
	n := &stubNode{}
	srv := httptest.NewServer(n)
	t.Cleanup(srv.Close)
	return n, srv.URL
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	base := []string{
		"--env-file", filepath.Join(t.TempDir(), ".env"),
		"--log-level", "error",
	}
	root.SetArgs(append(base, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestBlockNumberCommand(t *testing.T) {
	node, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "block-number")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, 16.0, v["blockNumber"])
	assert.Equal(t, "adhoc", v["meta"].(map[string]any)["provider"])
	assert.Equal(t, "eth_blockNumber", node.lastRequest().Method)
}

func TestChainIDCommand(t *testing.T) {
	_, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "chain-id")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, map[string]any{"hex": "0x1cf", "decimal": "463"}, v["chainId"])
}

func TestGasPriceCommand_Terminal(t *testing.T) {
	_, url := startNode(t)

	out, err := run(t, "--url", url, "gas-price")
	require.NoError(t, err)
	assert.Contains(t, out, "1 gwei")
	assert.Contains(t, out, "1,000,000,000")
	assert.Contains(t, out, "0x3b9aca00")
}

func TestBalanceCommand(t *testing.T) {
	node, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "balance", testAddress, "--block", "8420156")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, "1", v["ether"])
	assert.Equal(t, "0x807b3c", v["block"])
	assert.Equal(t, []any{testAddress, "0x807b3c"}, node.lastRequest().Params)

	_, err = run(t, "--url", url, "balance", testAddress)
	require.NoError(t, err)
	assert.Equal(t, []any{testAddress, "latest"}, node.lastRequest().Params)
}

func TestCodeCommand(t *testing.T) {
	_, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "code", testAddress)
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, "0x6080604052", v["code"])
	assert.Equal(t, 5.0, v["sizeBytes"])
}

func TestBlockCommand(t *testing.T) {
	node, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "block")
	require.NoError(t, err)
	assert.Equal(t, []any{"latest", false}, node.lastRequest().Params)

	block := decode(t, out)["block"].(map[string]any)
	assert.Equal(t, 8420156.0, block["number"])
	assert.Equal(t, []any{"0xaa", "0xbb"}, block["transactions"])

	_, err = run(t, "--url", url, "--format", "json", "block", testHash, "--full")
	require.NoError(t, err)
	assert.Equal(t, "eth_getBlockByHash", node.lastRequest().Method)
	assert.Equal(t, []any{testHash, true}, node.lastRequest().Params)

	out, err = run(t, "--url", url, "block", "Finalized")
	require.NoError(t, err)
	assert.Equal(t, []any{"finalized", false}, node.lastRequest().Params)
	assert.Contains(t, out, "Block #8,420,156")
}

func TestBlockCommand_Raw(t *testing.T) {
	_, url := startNode(t)

	out, err := run(t, "--url", url, "block", "0x807b3c", "--raw")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, "0x807b3c", v["number"])
	assert.Equal(t, "0x7", v["baseFeePerGas"])
	assert.Equal(t, []any{}, v["uncles"])
}

func TestBlockRequest(t *testing.T) {
	method, ref := blockRequest(testHash)
	assert.Equal(t, "eth_getBlockByHash", method)
	assert.Equal(t, testHash, ref)

	method, ref = blockRequest("")
	assert.Equal(t, "eth_getBlockByNumber", method)
	assert.Equal(t, "latest", ref)

	_, ref = blockRequest("255")
	assert.Equal(t, "0xff", ref)
}

func TestTxCommand(t *testing.T) {
	node, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "tx", testTxHash)
	require.NoError(t, err)
	assert.Equal(t, rpc.Request{JSONRPC: "2.0", Method: "eth_getTransactionByHash", Params: []any{testTxHash}, ID: 1},
		node.lastRequest())

	tx := decode(t, out)["transaction"].(map[string]any)
	assert.Equal(t, testTxHash, tx["hash"])
	assert.Equal(t, "mined", tx["status"])
	assert.Equal(t, 8420156.0, tx["blockNumber"])
	assert.Equal(t, 42.0, tx["nonce"])
	assert.Equal(t, "1000000000000000000", tx["value"])
	assert.Equal(t, 21000.0, tx["gas"])

	out, err = run(t, "--url", url, "tx", testTxHash)
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction 0x05ac...ff52")
	assert.Contains(t, out, "8,420,156")
	assert.Contains(t, out, "1 gwei")
}

func TestReceiptCommand(t *testing.T) {
	node, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "receipt", testTxHash)
	require.NoError(t, err)
	assert.Equal(t, "eth_getTransactionReceipt", node.lastRequest().Method)

	v := decode(t, out)
	receipt := v["receipt"].(map[string]any)
	assert.Equal(t, true, receipt["succeeded"])
	assert.Equal(t, 21000.0, receipt["gasUsed"])
	assert.Equal(t, 42000.0, receipt["cumulativeGasUsed"])
	assert.Equal(t, 2.0, receipt["logs"])
	assert.Nil(t, receipt["contractAddress"])
	assert.NotContains(t, v, "logs")

	out, err = run(t, "--url", url, "--format", "json", "receipt", testTxHash, "--logs")
	require.NoError(t, err)
	logs := decode(t, out)["logs"].([]any)
	require.Len(t, logs, 2)
	assert.Equal(t, "0x0", logs[0].(map[string]any)["logIndex"])
	assert.Equal(t, "0x1", logs[1].(map[string]any)["logIndex"])

	out, err = run(t, "--url", url, "receipt", testTxHash, "--logs")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ success")
	assert.Contains(t, out, "Log 0x0 "+testToken)
	assert.Contains(t, out, "topic[0] 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	assert.Contains(t, out, "data     0x0de0b6b3a7640000")
	assert.Contains(t, out, "Log 0x1 "+testToken)
}

func TestRPCErrorSurfaces(t *testing.T) {
	node, url := startNode(t)
	node.rejectMethod("eth_getTransactionByHash")

	_, err := run(t, "--url", url, "tx", testHash)
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrRPC)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "Error: rpc: eth_getTransactionByHash rpc: code -32601")
}

func TestTransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := run(t, "--url", url, "chain-id")
	require.Error(t, err)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Regexp(t, `^Error: transport: eth_chainId transport: `, buf.String())
}

func TestConvertCommands(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := run(t, "--config", missing, "convert", "hex", "0x1a")
	require.NoError(t, err)
	assert.Equal(t, "26\n", out)

	out, err = run(t, "--config", missing, "--format", "json", "convert", "dec", "8420156")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"input": "8420156", "output": "0x807b3c"}, decode(t, out))

	_, err = run(t, "--config", missing, "convert", "hex", "1a")
	require.Error(t, err)
	assert.ErrorIs(t, err, numconv.ErrMissingPrefix)
	assert.Equal(t, rpc.ErrorTypeNumericParse, errorType(err))
}

func TestStatusCommand(t *testing.T) {
	_, url := startNode(t)

	out, err := run(t, "--url", url, "--format", "json", "status", "--samples", "3", "--interval", "0s")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, 3.0, v["samples"])
	assert.Equal(t, 16.0, v["bestHeight"])
	providers := v["providers"].([]any)
	require.Len(t, providers, 1)
	assert.Equal(t, "UP", providers[0].(map[string]any)["status"])
}

func TestStatusCommand_AllDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := run(t, "--url", url, "--format", "json", "status", "--samples", "1")
	assert.True(t, errors.Is(err, errAllDown))
}

func TestConfigFileProviders(t *testing.T) {
	_, first := startNode(t)
	second, secondURL := startNode(t)

	t.Setenv("EVMRPC_SECOND_URL", secondURL)
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
providers:
  - name: first
    url: %s
  - name: second
    url: ${EVMRPC_SECOND_URL}
defaults:
  timeout: 5s
  health_samples: 2
  block_tag: finalized
`, first)), 0o600))

	out, err := run(t, "--config", path, "--provider", "second", "--format", "json", "balance", testAddress)
	require.NoError(t, err)
	assert.Equal(t, "second", decode(t, out)["meta"].(map[string]any)["provider"])
	assert.Equal(t, []any{testAddress, "finalized"}, second.lastRequest().Params)

	out, err = run(t, "--config", path, "--format", "json", "status", "--interval", "0s")
	require.NoError(t, err)
	assert.Len(t, decode(t, out)["providers"], 2)

	_, err = run(t, "--config", path, "--provider", "third", "chain-id")
	assert.EqualError(t, err, "provider 'third' not found in config")
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "convert", "dec", "1")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestCompareCommand(t *testing.T) {
	first, firstURL := startNode(t)
	_, secondURL := startNode(t)

	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
providers:
  - name: first
    url: %s
  - name: second
    url: %s
defaults:
  timeout: 5s
  health_samples: 2
`, firstURL, secondURL)), 0o600))

	out, err := run(t, "--config", path, "--format", "json", "compare")
	require.NoError(t, err)

	v := decode(t, out)
	assert.Equal(t, true, v["consistent"])
	assert.Equal(t, 16.0, v["referenceHeight"])
	groups := v["hashGroups"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, testHash, groups[0].(map[string]any)["hash"])
	assert.Equal(t, []any{"0x10", false}, first.lastRequest().Params)

	_, err = run(t, "--config", path, "compare", "--block", "Safe")
	require.NoError(t, err)
	assert.Equal(t, []any{"safe", false}, first.lastRequest().Params)
}

func TestLogFileClosedOnError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	logDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
providers:
  - name: dead
    url: %s
defaults:
  timeout: 2s
  health_samples: 1
log:
  output: %s
`, url, logDir)), 0o600))

	a := newApp(io.Discard)
	root := a.rootCmd()
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), ".env"), "--config", path, "chain-id"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.Execute()
	assert.ErrorIs(t, err, rpc.ErrTransport)
	assert.NotNil(t, a.log)
	assert.Nil(t, a.closer)

	data, err := os.ReadFile(filepath.Join(logDir, logger.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "rpc transport failure")
}
