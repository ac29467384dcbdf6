package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "txscope",
		Short:        "Transaction event classifier",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one transaction into known events",
		RunE:  runClassify,
	}

	classifyCmd.Flags().String("rpc", "", "RPC URL")
	classifyCmd.Flags().String("tx", "", "transaction hash")
	classifyCmd.Flags().String("in", "", "input receipts JSONL, replaces fetching by hash")
	classifyCmd.Flags().String("out", "", "output events JSONL, replaces text output")
	classifyCmd.Flags().String("viewer", "", "viewer address for perspective filtering")
	classifyCmd.Flags().Bool("all", false, "include events hidden from the default display")
	classifyCmd.Flags().Bool("token-metadata", true, "resolve token symbols and decimals over RPC")
	classifyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(classifyCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify every transaction in a block range",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("rpc", "", "RPC URL")
	batchCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	batchCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	batchCmd.Flags().Uint64("batch-size", 500, "blocks per batch")
	batchCmd.Flags().String("out", "./data/events.jsonl", "output JSONL path")
	batchCmd.Flags().String("pg-dsn", "", "Postgres DSN, replaces the JSONL sink when set")
	batchCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	batchCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	batchCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	batchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	batchCmd.Flags().Bool("token-metadata", true, "resolve token symbols and decimals over RPC")
	batchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(batchCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate classified events into window counts",
		RunE:  runReport,
	}

	reportCmd.Flags().String("in", "", "input event records JSONL")
	reportCmd.Flags().String("window", "5m", "aggregation window (e.g. 1m, 5m, 1h)")
	reportCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	reportCmd.Flags().Int("batch-size", 1000, "batch size for DB writes")
	reportCmd.Flags().String("state-file", "", "optional local state file for progress tracking")
	reportCmd.Flags().String("recompute-from", "", "recompute from timestamp (unix seconds or RFC3339)")
	reportCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(reportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
