// Package pipeline drives batch classification over a block range: fetch
// every transaction, classify its receipt, and hand the resulting event
// records to a storage sink with checkpointed progress.
package pipeline

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"txscope/internal/chain"
	"txscope/internal/classify"
	"txscope/internal/model"
	"txscope/internal/storage"
)

// RunConfig holds runtime settings for the batch classifier.
type RunConfig struct {
	FromBlock         uint64
	ToBlock           uint64
	BatchSize         uint64
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Runner streams blocks from the chain, classifies every transaction and
// writes the known events to storage.
type Runner struct {
	cfg        RunConfig
	chain      *chain.Client
	storage    storage.Storage
	tokenMeta  classify.TokenMetadataFunc
	logger     *zap.Logger
	seen       map[string]struct{}
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies. tokenMeta may be nil,
// in which case amounts render without symbol or decimals.
func NewRunner(cfg RunConfig, chainClient *chain.Client, storageSink storage.Storage, tokenMeta classify.TokenMetadataFunc, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		storage:    storageSink,
		tokenMeta:  tokenMeta,
		logger:     logger,
		seen:       make(map[string]struct{}),
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run executes the classification loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	chainIDValue := chainID.Uint64()

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		resumed, err := r.checkpoint.Resume(chainIDValue, from)
		if err != nil {
			return err
		}
		if resumed > from {
			r.logger.Info("resume from checkpoint", zap.Uint64("from", resumed))
		}
		from = resumed
	}

	if from > to {
		r.logger.Info("nothing to classify", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	spans, err := SplitSpans(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, span := range spans {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("classify blocks", zap.Uint64("from", span.Start), zap.Uint64("to", span.End))

		records := make([]model.EventRecord, 0)
		for number := span.Start; number <= span.End; number++ {
			blockRecords, err := r.classifyBlock(ctx, chainIDValue, number)
			if err != nil {
				return fmt.Errorf("classify block %d: %w", number, err)
			}
			records = append(records, blockRecords...)
		}

		if err := r.storage.PutEventBatch(records); err != nil {
			return fmt.Errorf("store events: %w", err)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(chainIDValue, span.End); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete", zap.Int("events", len(records)), zap.Uint64("from", span.Start), zap.Uint64("to", span.End))
	}

	return nil
}

func (r *Runner) classifyBlock(ctx context.Context, chainID, number uint64) ([]model.EventRecord, error) {
	block, err := r.blockWithRetry(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("fetch block: %w", err)
	}

	ingestedAt := time.Now().UTC()
	records := make([]model.EventRecord, 0)
	for index, tx := range block.Transactions() {
		if r.isDuplicate(tx) {
			continue
		}

		ethReceipt, err := r.receiptWithRetry(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("receipt %s: %w", tx.Hash().Hex(), err)
		}

		from, err := r.chain.TransactionSender(ctx, tx, block.Hash(), uint(index))
		if err != nil {
			return nil, fmt.Errorf("sender %s: %w", tx.Hash().Hex(), err)
		}

		receipt := model.ReceiptFromEth(ethReceipt, from, tx.To())
		events := classify.ClassifyTransaction(receipt, classify.Options{
			Transaction: &model.Transaction{
				To:    tx.To(),
				Input: tx.Data(),
			},
			TokenMetadata: r.tokenMeta,
			Logger:        r.logger,
		})

		records = append(records, buildEventRecords(chainID, receipt, events, block.Time(), ingestedAt)...)
	}

	return records, nil
}

func (r *Runner) blockWithRetry(ctx context.Context, number uint64) (*types.Block, error) {
	var block *types.Block
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		block, err = r.chain.BlockByNumber(ctx, new(big.Int).SetUint64(number))
		if err != nil {
			r.logger.Warn("block fetch failed", zap.Error(err), zap.Uint64("block_number", number))
		}
		return err
	})
	return block, err
}

func (r *Runner) receiptWithRetry(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		receipt, err = r.chain.TransactionReceipt(ctx, tx.Hash())
		if err != nil {
			r.logger.Warn("receipt fetch failed", zap.Error(err), zap.String("tx_hash", tx.Hash().Hex()))
		}
		return err
	})
	return receipt, err
}

func (r *Runner) isDuplicate(tx *types.Transaction) bool {
	id := tx.Hash().Hex()
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
