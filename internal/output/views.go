package output

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/dmagro/evm-rpc-client/pkg/numconv"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// Meta describes where a result came from.
type Meta struct {
	Provider  string `json:"provider"`
	LatencyMs int64  `json:"latencyMs"`
}

// NewMeta builds Meta from a provider name and call latency.
func NewMeta(provider string, latency time.Duration) Meta {
	return Meta{Provider: provider, LatencyMs: latency.Milliseconds()}
}

// Quantity is a hex quantity with its decimal form.
type Quantity struct {
	Hex     string `json:"hex"`
	Decimal string `json:"decimal"`

	value *uint256.Int
}

// NewQuantity parses hex into a Quantity.
func NewQuantity(hex string) (Quantity, error) {
	v, err := numconv.HexToDecimal(hex)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Hex: hex, Decimal: v.Dec(), value: v}, nil
}

// Value returns the parsed integer.
func (q Quantity) Value() *uint256.Int { return q.value }

// BlockSummary is a block with its header quantities decoded.
type BlockSummary struct {
	Number        uint64   `json:"number"`
	Hash          string   `json:"hash"`
	ParentHash    string   `json:"parentHash"`
	Timestamp     uint64   `json:"timestamp"`
	TimestampISO  string   `json:"timestampISO"`
	GasUsed       uint64   `json:"gasUsed"`
	GasLimit      uint64   `json:"gasLimit"`
	BaseFeePerGas string   `json:"baseFeePerGas,omitempty"`
	Miner         string   `json:"miner"`
	TxCount       int      `json:"txCount"`
	UncleCount    int      `json:"uncleCount"`
	Transactions  []string `json:"transactions"`

	baseFee *uint256.Int
}

// SummarizeBlock decodes the header fields of b. Transactions lists hashes
// whether b was fetched with full transactions or not.
func SummarizeBlock(b *rpc.Block) (*BlockSummary, error) {
	s := &BlockSummary{
		Hash:       b.Hash,
		ParentHash: b.ParentHash,
		Miner:      b.Miner,
		TxCount:    len(b.Transactions),
		UncleCount: len(b.Uncles),
	}

	var err error
	if s.Number, err = numconv.HexToUint64(b.Number); err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	if s.Timestamp, err = numconv.HexToUint64(b.Timestamp); err != nil {
		return nil, fmt.Errorf("block timestamp: %w", err)
	}
	if s.GasUsed, err = numconv.HexToUint64(b.GasUsed); err != nil {
		return nil, fmt.Errorf("block gasUsed: %w", err)
	}
	if s.GasLimit, err = numconv.HexToUint64(b.GasLimit); err != nil {
		return nil, fmt.Errorf("block gasLimit: %w", err)
	}
	if b.BaseFeePerGas != "" {
		if s.baseFee, err = numconv.HexToDecimal(b.BaseFeePerGas); err != nil {
			return nil, fmt.Errorf("block baseFeePerGas: %w", err)
		}
		s.BaseFeePerGas = s.baseFee.Dec()
	}
	s.TimestampISO = time.Unix(int64(s.Timestamp), 0).UTC().Format(time.RFC3339)

	if hashes, err := b.TransactionHashes(); err == nil {
		s.Transactions = hashes
	} else {
		txs, err := b.FullTransactions()
		if err != nil {
			return nil, err
		}
		s.Transactions = make([]string, len(txs))
		for i, tx := range txs {
			s.Transactions[i] = tx.Hash
		}
	}

	return s, nil
}

// GasPercent is GasUsed as a percentage of GasLimit.
func (s *BlockSummary) GasPercent() float64 {
	if s.GasLimit == 0 {
		return 0
	}
	return float64(s.GasUsed) / float64(s.GasLimit) * 100
}

// TxSummary is a transaction with its quantities decoded.
type TxSummary struct {
	Hash        string  `json:"hash"`
	Status      string  `json:"status"`
	BlockNumber *uint64 `json:"blockNumber"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	Nonce       uint64  `json:"nonce"`
	Value       string  `json:"value"`
	Gas         uint64  `json:"gas"`
	GasPrice    string  `json:"gasPrice,omitempty"`
	Type        string  `json:"type,omitempty"`
	InputBytes  int     `json:"inputBytes"`

	value    *uint256.Int
	gasPrice *uint256.Int
}

// SummarizeTransaction decodes the quantities of tx.
func SummarizeTransaction(tx *rpc.Transaction) (*TxSummary, error) {
	s := &TxSummary{
		Hash:       tx.Hash,
		Status:     "mined",
		From:       tx.From,
		To:         tx.To,
		Type:       tx.TxType,
		InputBytes: (len(tx.Input) - 2) / 2,
	}
	if tx.Pending() {
		s.Status = "pending"
	}

	var err error
	if tx.BlockNumber != nil {
		n, err := numconv.HexToUint64(*tx.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("transaction blockNumber: %w", err)
		}
		s.BlockNumber = &n
	}
	if s.Nonce, err = numconv.HexToUint64(tx.Nonce); err != nil {
		return nil, fmt.Errorf("transaction nonce: %w", err)
	}
	if s.Gas, err = numconv.HexToUint64(tx.Gas); err != nil {
		return nil, fmt.Errorf("transaction gas: %w", err)
	}
	if s.value, err = numconv.HexToDecimal(tx.Value); err != nil {
		return nil, fmt.Errorf("transaction value: %w", err)
	}
	s.Value = s.value.Dec()
	if tx.GasPrice != "" {
		if s.gasPrice, err = numconv.HexToDecimal(tx.GasPrice); err != nil {
			return nil, fmt.Errorf("transaction gasPrice: %w", err)
		}
		s.GasPrice = s.gasPrice.Dec()
	}
	return s, nil
}

// ReceiptSummary is a receipt with its quantities decoded.
type ReceiptSummary struct {
	TransactionHash   string  `json:"transactionHash"`
	Succeeded         bool    `json:"succeeded"`
	BlockNumber       uint64  `json:"blockNumber"`
	BlockHash         string  `json:"blockHash"`
	From              string  `json:"from"`
	To                *string `json:"to"`
	ContractAddress   *string `json:"contractAddress"`
	GasUsed           uint64  `json:"gasUsed"`
	CumulativeGasUsed uint64  `json:"cumulativeGasUsed"`
	EffectiveGasPrice string  `json:"effectiveGasPrice,omitempty"`
	Logs              int     `json:"logs"`

	effectiveGasPrice *uint256.Int
}

// SummarizeReceipt decodes the quantities of r.
func SummarizeReceipt(r *rpc.TransactionReceipt) (*ReceiptSummary, error) {
	s := &ReceiptSummary{
		TransactionHash: r.TransactionHash,
		Succeeded:       r.Succeeded(),
		BlockHash:       r.BlockHash,
		From:            r.From,
		To:              r.To,
		ContractAddress: r.ContractAddress,
		Logs:            len(r.Logs),
	}

	var err error
	if s.BlockNumber, err = numconv.HexToUint64(r.BlockNumber); err != nil {
		return nil, fmt.Errorf("receipt blockNumber: %w", err)
	}
	if s.GasUsed, err = numconv.HexToUint64(r.GasUsed); err != nil {
		return nil, fmt.Errorf("receipt gasUsed: %w", err)
	}
	if s.CumulativeGasUsed, err = numconv.HexToUint64(r.CumulativeGasUsed); err != nil {
		return nil, fmt.Errorf("receipt cumulativeGasUsed: %w", err)
	}
	if r.EffectiveGasPrice != "" {
		if s.effectiveGasPrice, err = numconv.HexToDecimal(r.EffectiveGasPrice); err != nil {
			return nil, fmt.Errorf("receipt effectiveGasPrice: %w", err)
		}
		s.EffectiveGasPrice = s.effectiveGasPrice.Dec()
	}
	return s, nil
}
