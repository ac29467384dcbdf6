package classify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"txscope/internal/model"
)

// TokenMetadataFunc looks up display metadata for a token address. It must
// be synchronous and side-effect free; nil results are tolerated.
type TokenMetadataFunc func(token common.Address) *model.TokenMeta

// Options carries the optional context for a classification call.
type Options struct {
	// Transaction supplies the call tree for call-data augmentation and
	// the fallback classifier.
	Transaction *model.Transaction
	// Viewer narrows classification to one account's perspective.
	Viewer *common.Address
	// TokenMetadata enriches amounts with decimals and symbols.
	TokenMetadata TokenMetadataFunc
	// Logger receives debug-level decode traces only.
	Logger *zap.Logger
}

// txContext is the per-invocation state shared by the detector families.
// The memo map is built before detection and treated as read-only after.
type txContext struct {
	receipt *model.Receipt
	viewer  *common.Address
	meta    TokenMetadataFunc
	memos   map[string]string
	logger  *zap.Logger
}

func newTxContext(receipt *model.Receipt, opts Options, memos map[string]string) *txContext {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if memos == nil {
		memos = map[string]string{}
	}
	return &txContext{
		receipt: receipt,
		viewer:  opts.Viewer,
		meta:    opts.TokenMetadata,
		memos:   memos,
		logger:  logger,
	}
}

// amount builds an Amount, attaching decimals/symbol when the metadata
// lookup knows the token.
func (tc *txContext) amount(token common.Address, value *big.Int) model.Amount {
	if value == nil {
		value = big.NewInt(0)
	}
	a := model.Amount{Token: token, Value: new(big.Int).Set(value)}
	if tc.meta != nil {
		if meta := tc.meta(token); meta != nil {
			decimals := meta.Decimals
			a.Decimals = &decimals
			a.Symbol = meta.Symbol
		}
	}
	return a
}

func (tc *txContext) symbol(token common.Address) string {
	if tc.meta == nil {
		return ""
	}
	if meta := tc.meta(token); meta != nil {
		return meta.Symbol
	}
	return ""
}

func (tc *txContext) decimals(token common.Address) *uint8 {
	if tc.meta == nil {
		return nil
	}
	if meta := tc.meta(token); meta != nil {
		decimals := meta.Decimals
		return &decimals
	}
	return nil
}
