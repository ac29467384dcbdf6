package model

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Amount is a raw token quantity with optional display enrichment.
// Value is always non-negative; Decimals and Symbol may be absent.
type Amount struct {
	Token    common.Address `json:"token"`
	Value    *big.Int       `json:"value"`
	Decimals *uint8         `json:"decimals,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
}

// Format renders the amount for display. Without decimals the raw integer
// is used; without a symbol the token address is appended instead.
func (a Amount) Format() string {
	value := a.Value
	if value == nil {
		value = big.NewInt(0)
	}

	text := value.String()
	if a.Decimals != nil {
		text = decimal.NewFromBigInt(value, -int32(*a.Decimals)).String()
	}

	if a.Symbol != "" {
		return text + " " + a.Symbol
	}
	return text + " " + a.Token.Hex()
}

// Format renders the number, scaling by decimals when present.
func (n Number) Format() string {
	if n.Decimals != nil {
		if value, ok := new(big.Int).SetString(n.Value, 10); ok {
			return decimal.NewFromBigInt(value, -int32(*n.Decimals)).String()
		}
	}
	return n.Value
}

func formatSeconds(seconds uint64) string {
	return (time.Duration(seconds) * time.Second).String()
}

func formatTick(tick int32) string {
	return fmt.Sprintf("tick %s", strconv.FormatInt(int64(tick), 10))
}
