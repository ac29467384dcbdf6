package config

import (
	"github.com/spf13/pflag"
)

// ClassifyConfig holds configuration for the classify command. Receipts
// come either from RPC by transaction hash, or from a JSONL file when In
// is set; events go to stdout as text, or to a JSONL file when Out is set.
type ClassifyConfig struct {
	RPCURL        string
	TxHash        string
	In            string
	Out           string
	Viewer        string
	ShowAll       bool
	TokenMetadata bool
	LogLevel      string
}

// LoadClassify merges config file, environment variables, and flags into ClassifyConfig.
func LoadClassify(cfgFile string, flags *pflag.FlagSet) (ClassifyConfig, error) {
	v := newViper()

	v.SetDefault("token-metadata", true)
	v.SetDefault("log-level", "info")

	if err := bindAndRead(v, cfgFile, flags); err != nil {
		return ClassifyConfig{}, err
	}

	cfg := ClassifyConfig{
		RPCURL:        v.GetString("rpc"),
		TxHash:        v.GetString("tx"),
		In:            v.GetString("in"),
		Out:           v.GetString("out"),
		Viewer:        v.GetString("viewer"),
		ShowAll:       v.GetBool("all"),
		TokenMetadata: v.GetBool("token-metadata"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}
