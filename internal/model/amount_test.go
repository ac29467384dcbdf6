package model

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func bigFromString(t *testing.T, value string) *big.Int {
	t.Helper()
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		t.Fatalf("invalid int: %s", value)
	}
	return parsed
}

func TestAmountFormatRaw(t *testing.T) {
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	amount := Amount{Token: token, Value: big.NewInt(1234)}

	want := "1234 " + token.Hex()
	if got := amount.Format(); got != want {
		t.Fatalf("format mismatch: %q != %q", got, want)
	}
}

func TestAmountFormatWithDecimalsAndSymbol(t *testing.T) {
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	decimals := uint8(6)
	amount := Amount{Token: token, Value: big.NewInt(2500000), Decimals: &decimals, Symbol: "USDT"}

	if got := amount.Format(); got != "2.5 USDT" {
		t.Fatalf("format mismatch: %q", got)
	}
}

func TestAmountFormatNilValue(t *testing.T) {
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	amount := Amount{Token: token}

	want := "0 " + token.Hex()
	if got := amount.Format(); got != want {
		t.Fatalf("format mismatch: %q != %q", got, want)
	}
}

func TestNumberFormat(t *testing.T) {
	decimals := uint8(2)

	if got := (Number{Value: "123"}).Format(); got != "123" {
		t.Fatalf("format mismatch: %q", got)
	}
	if got := (Number{Value: "12345", Decimals: &decimals}).Format(); got != "123.45" {
		t.Fatalf("format mismatch: %q", got)
	}
}
