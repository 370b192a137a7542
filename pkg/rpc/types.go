package rpc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Block tags accepted by the node wherever a block number is expected.
const (
	BlockLatest    = "latest"
	BlockEarliest  = "earliest"
	BlockPending   = "pending"
	BlockSafe      = "safe"
	BlockFinalized = "finalized"
)

// =============================================================================
// JSON-RPC 2.0 envelope
// =============================================================================

// Request is a JSON-RPC 2.0 request.
//
//	{"jsonrpc":"2.0","method":"eth_getBalance","params":["0xdd04…","latest"],"id":7}
//
// Params is positional and keeps the order the node documents for the method.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

// Response is a JSON-RPC 2.0 response whose result decodes into T.
//
// ID is kept raw for inspection only; the client never correlates on it, so
// numeric, string and null ids are all accepted.
type Response[T any] struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  T               `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error object a node returns instead of a result.
//
// Standard codes: -32700 parse error, -32600 invalid request, -32601 method
// not found, -32602 invalid params, -32603 internal error. Nodes also use
// -32000 and friends for execution errors.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

// validator is implemented by result types that reject incomplete payloads.
type validator interface {
	Validate() error
}

// MissingFieldsError lists the required fields absent from a result object.
type MissingFieldsError struct {
	Type   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Type, strings.Join(e.Fields, ", "))
}

// missingFields returns the wire names whose value is empty, taking
// (name, value) pairs.
func missingFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

func checkMissing(typeName string, missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Type: typeName, Fields: missing}
}

// =============================================================================
// Block
// =============================================================================

// Block is the eth_getBlockByNumber / eth_getBlockByHash result.
//
// Every numeric field stays a hex string exactly as the node sent it; use
// package numconv to interpret them. Transactions holds either 32-byte hashes
// (fullTx=false) or transaction objects (fullTx=true), in block order.
// BaseFeePerGas is empty before London, TotalDifficulty is absent on some
// post-merge nodes, and Hash is null for pending blocks.
type Block struct {
	BaseFeePerGas    string            `json:"baseFeePerGas,omitempty"`
	Difficulty       string            `json:"difficulty"`
	ExtraData        string            `json:"extraData"`
	GasLimit         string            `json:"gasLimit"`
	GasUsed          string            `json:"gasUsed"`
	Hash             string            `json:"hash"`
	LogsBloom        string            `json:"logsBloom"`
	Miner            string            `json:"miner"`
	MixHash          string            `json:"mixHash"`
	Nonce            string            `json:"nonce"`
	Number           string            `json:"number"`
	ParentHash       string            `json:"parentHash"`
	ReceiptsRoot     string            `json:"receiptsRoot"`
	OmmersHash       string            `json:"sha3Uncles"`
	Size             string            `json:"size"`
	StateRoot        string            `json:"stateRoot"`
	Timestamp        string            `json:"timestamp"`
	TotalDifficulty  string            `json:"totalDifficulty,omitempty"`
	TransactionsRoot string            `json:"transactionsRoot"`
	Transactions     []json.RawMessage `json:"transactions"`
	Uncles           []string          `json:"uncles"`
}

// Validate reports the required header fields the node left out.
func (b *Block) Validate() error {
	missing := missingFields(
		"number", b.Number,
		"parentHash", b.ParentHash,
		"timestamp", b.Timestamp,
		"gasLimit", b.GasLimit,
		"gasUsed", b.GasUsed,
	)
	if b.Transactions == nil {
		missing = append(missing, "transactions")
	}
	return checkMissing("block", missing)
}

// TransactionHashes decodes Transactions as hashes, the shape returned when
// the block was requested with fullTx=false.
func (b *Block) TransactionHashes() ([]string, error) {
	hashes := make([]string, 0, len(b.Transactions))
	for i, raw := range b.Transactions {
		var h string
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("transaction %d is not a hash: %w", i, err)
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}

// FullTransactions decodes Transactions as objects, the shape returned when
// the block was requested with fullTx=true.
func (b *Block) FullTransactions() ([]Transaction, error) {
	txs := make([]Transaction, 0, len(b.Transactions))
	for i, raw := range b.Transactions {
		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("transaction %d is not an object: %w", i, err)
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// =============================================================================
// Transaction
// =============================================================================

// Transaction is the eth_getTransactionByHash result and the element type of
// a full block. BlockHash, BlockNumber and TransactionIndex are null while the
// transaction is pending; To is null for contract creation.
type Transaction struct {
	BlockHash            *string `json:"blockHash"`
	BlockNumber          *string `json:"blockNumber"`
	From                 string  `json:"from"`
	Gas                  string  `json:"gas"`
	GasPrice             string  `json:"gasPrice"`
	MaxFeePerGas         string  `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string  `json:"maxPriorityFeePerGas,omitempty"`
	Hash                 string  `json:"hash"`
	Input                string  `json:"input"`
	Nonce                string  `json:"nonce"`
	To                   *string `json:"to"`
	TransactionIndex     *string `json:"transactionIndex"`
	Value                string  `json:"value"`
	TxType               string  `json:"type"`
	ChainID              string  `json:"chainId,omitempty"`
	V                    string  `json:"v"`
	R                    string  `json:"r"`
	S                    string  `json:"s"`
}

// Validate reports the required fields the node left out.
func (tx *Transaction) Validate() error {
	return checkMissing("transaction", missingFields(
		"hash", tx.Hash,
		"from", tx.From,
		"gas", tx.Gas,
		"input", tx.Input,
		"nonce", tx.Nonce,
		"value", tx.Value,
	))
}

// Pending reports whether the transaction has not been mined yet.
func (tx *Transaction) Pending() bool {
	return tx.BlockHash == nil || *tx.BlockHash == ""
}

// =============================================================================
// Receipt
// =============================================================================

// TransactionReceipt is the eth_getTransactionReceipt result.
//
// ContractAddress is set only for contract-creation transactions. Status is
// "0x1" on success and "0x0" on revert; receipts from before Byzantium carry
// Root instead.
type TransactionReceipt struct {
	BlockHash         string            `json:"blockHash"`
	BlockNumber       string            `json:"blockNumber"`
	ContractAddress   *string           `json:"contractAddress"`
	CumulativeGasUsed string            `json:"cumulativeGasUsed"`
	EffectiveGasPrice string            `json:"effectiveGasPrice,omitempty"`
	From              string            `json:"from"`
	GasUsed           string            `json:"gasUsed"`
	Logs              []json.RawMessage `json:"logs"`
	LogsBloom         string            `json:"logsBloom"`
	Status            string            `json:"status,omitempty"`
	Root              string            `json:"root,omitempty"`
	To                *string           `json:"to"`
	TransactionHash   string            `json:"transactionHash"`
	TransactionIndex  string            `json:"transactionIndex"`
	TxType            string            `json:"type"`
}

// Validate reports the required fields the node left out.
func (r *TransactionReceipt) Validate() error {
	missing := missingFields(
		"transactionHash", r.TransactionHash,
		"blockHash", r.BlockHash,
		"blockNumber", r.BlockNumber,
		"gasUsed", r.GasUsed,
		"cumulativeGasUsed", r.CumulativeGasUsed,
	)
	if r.Logs == nil {
		missing = append(missing, "logs")
	}
	return checkMissing("receipt", missing)
}

// Succeeded reports whether the receipt status is 0x1.
func (r *TransactionReceipt) Succeeded() bool {
	return r.Status == "0x1"
}

// Log is one event emitted by a transaction.
type Log struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockNumber      string   `json:"blockNumber"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex string   `json:"transactionIndex"`
	BlockHash        string   `json:"blockHash"`
	LogIndex         string   `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// DecodeLogs decodes the opaque log entries in order.
func (r *TransactionReceipt) DecodeLogs() ([]Log, error) {
	logs := make([]Log, 0, len(r.Logs))
	for i, raw := range r.Logs {
		var l Log
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("log %d: %w", i, err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}
