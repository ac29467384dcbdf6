package model

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Log is one immutable event record emitted during transaction execution.
type Log struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        []byte         `json:"data"`
	BlockNumber uint64         `json:"block_number"`
	TxHash      common.Hash    `json:"tx_hash"`
	LogIndex    uint           `json:"log_index"`
}

// Receipt is the post-execution view of one transaction.
type Receipt struct {
	TxHash          common.Hash     `json:"tx_hash"`
	BlockNumber     uint64          `json:"block_number"`
	From            common.Address  `json:"from"`
	To              *common.Address `json:"to,omitempty"`
	ContractAddress *common.Address `json:"contract_address,omitempty"`
	Status          uint64          `json:"status"`
	Logs            []Log           `json:"logs"`
}

// Call is one call frame: a target and raw input bytes.
type Call struct {
	To    *common.Address `json:"to,omitempty"`
	Input []byte          `json:"input,omitempty"`
}

// Transaction carries the call-tree context for classification.
type Transaction struct {
	To    *common.Address `json:"to,omitempty"`
	Input []byte          `json:"input,omitempty"`
	Calls []Call          `json:"calls,omitempty"`
}

// ReceiptFromEth converts a go-ethereum receipt into the engine's form.
// The sender is not part of the receipt and must be supplied by the caller.
func ReceiptFromEth(receipt *types.Receipt, from common.Address, to *common.Address) *Receipt {
	out := &Receipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		From:        from,
		To:          to,
		Status:      receipt.Status,
		Logs:        make([]Log, 0, len(receipt.Logs)),
	}
	if receipt.ContractAddress != (common.Address{}) {
		addr := receipt.ContractAddress
		out.ContractAddress = &addr
	}
	for _, lg := range receipt.Logs {
		out.Logs = append(out.Logs, Log{
			Address:     lg.Address,
			Topics:      lg.Topics,
			Data:        lg.Data,
			BlockNumber: lg.BlockNumber,
			TxHash:      lg.TxHash,
			LogIndex:    lg.Index,
		})
	}
	return out
}
