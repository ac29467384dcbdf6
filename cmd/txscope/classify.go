package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"txscope/internal/chain"
	"txscope/internal/classify"
	"txscope/internal/config"
	"txscope/internal/model"
	"txscope/internal/tokenmeta"
)

// classifiedEvent is one JSONL output line.
type classifiedEvent struct {
	TxHash   string           `json:"tx_hash"`
	Ordinal  int              `json:"ordinal"`
	Rendered string           `json:"rendered"`
	Event    model.KnownEvent `json:"event"`
}

func runClassify(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadClassify(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" && cfg.TxHash == "" {
		return fmt.Errorf("either a tx hash or an input path is required")
	}
	if cfg.In == "" && cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required to fetch by hash")
	}

	var viewer *common.Address
	if cfg.Viewer != "" {
		if !common.IsHexAddress(cfg.Viewer) {
			return fmt.Errorf("invalid viewer address: %s", cfg.Viewer)
		}
		addr := common.HexToAddress(cfg.Viewer)
		viewer = &addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var chainClient *chain.Client
	if cfg.RPCURL != "" {
		chainClient, err = chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
	}

	var tokenMeta classify.TokenMetadataFunc
	if cfg.TokenMetadata && chainClient != nil {
		tokenMeta = tokenmeta.Lookup(ctx, chainClient, tokenmeta.NewCache(), logger)
	}

	var out *jsonlWriter
	if cfg.Out != "" {
		out, err = newJSONLWriter(cfg.Out)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	if cfg.In != "" {
		return classifyFile(cfg, viewer, tokenMeta, out, logger)
	}

	txHash := common.HexToHash(cfg.TxHash)

	ethReceipt, err := chainClient.TransactionReceipt(ctx, txHash)
	if err != nil {
		return fmt.Errorf("fetch receipt: %w", err)
	}

	tx, pending, err := chainClient.TransactionByHash(ctx, txHash)
	if err != nil {
		return fmt.Errorf("fetch transaction: %w", err)
	}
	if pending {
		return fmt.Errorf("transaction is pending")
	}

	from, err := chainClient.TransactionSender(ctx, tx, ethReceipt.BlockHash, uint(ethReceipt.TransactionIndex))
	if err != nil {
		return fmt.Errorf("recover sender: %w", err)
	}

	receipt := model.ReceiptFromEth(ethReceipt, from, tx.To())
	events := classify.ClassifyTransaction(receipt, classify.Options{
		Transaction: &model.Transaction{
			To:    tx.To(),
			Input: tx.Data(),
		},
		Viewer:        viewer,
		TokenMetadata: tokenMeta,
		Logger:        logger,
	})

	emitted, err := emitEvents(receipt, events, cfg.ShowAll, out)
	if err != nil {
		return err
	}
	if emitted == 0 && out == nil {
		fmt.Println("no known events")
	}

	return nil
}

// classifyFile classifies receipts read from a JSONL file. Call-tree
// context is not available in this mode, so calldata augmentation does
// not apply.
func classifyFile(cfg config.ClassifyConfig, viewer *common.Address, tokenMeta classify.TokenMetadataFunc, out *jsonlWriter, logger *zap.Logger) error {
	input, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	scanner := bufio.NewScanner(input)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var receipts, events, malformed int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		receipts++

		var receipt model.Receipt
		if err := json.Unmarshal(line, &receipt); err != nil {
			malformed++
			logger.Warn("skip malformed receipt", zap.Error(err))
			continue
		}

		classified := classify.ClassifyTransaction(&receipt, classify.Options{
			Viewer:        viewer,
			TokenMetadata: tokenMeta,
			Logger:        logger,
		})

		emitted, err := emitEvents(&receipt, classified, cfg.ShowAll, out)
		if err != nil {
			return err
		}
		events += emitted
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	logger.Info("classify complete",
		zap.Int("receipts", receipts),
		zap.Int("events", events),
		zap.Int("malformed", malformed),
	)

	return nil
}

func emitEvents(receipt *model.Receipt, events []model.KnownEvent, showAll bool, out *jsonlWriter) (int, error) {
	emitted := 0
	for _, event := range events {
		if !showAll && !classify.IsDisplayWorthy(event) {
			continue
		}

		if out != nil {
			record := classifiedEvent{
				TxHash:   receipt.TxHash.Hex(),
				Ordinal:  emitted,
				Rendered: event.Render(),
				Event:    event,
			}
			if err := out.Write(record); err != nil {
				return emitted, err
			}
			emitted++
			continue
		}

		line := event.Render()
		if event.Failed {
			line += " (failed)"
		}
		fmt.Println(line)
		if event.Note != nil && event.Note.Text != "" {
			fmt.Printf("  note: %s\n", event.Note.Text)
		}
		emitted++
	}
	return emitted, nil
}
