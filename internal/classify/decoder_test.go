package classify

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
)

func TestParseLogTransfer(t *testing.T) {
	lg := transferLog(t, tokenA, alice, bob, 12345)

	parsed := ParseLog(lg, nil)
	if parsed == nil {
		t.Fatalf("expected parsed event")
	}
	if parsed.Name != "Transfer" {
		t.Fatalf("name mismatch: %s", parsed.Name)
	}
	if parsed.Address != tokenA {
		t.Fatalf("address mismatch: %s", parsed.Address.Hex())
	}

	from, ok := parsed.address("from")
	if !ok || from != alice {
		t.Fatalf("from mismatch: %v %v", from, ok)
	}
	value, ok := parsed.bigInt("value")
	if !ok || value.Cmp(big.NewInt(12345)) != 0 {
		t.Fatalf("value mismatch: %v %v", value, ok)
	}
}

func TestParseLogMemo(t *testing.T) {
	lg := memoTransferLog(t, tokenA, alice, bob, 1, "note to self")

	parsed := ParseLog(lg, nil)
	if parsed == nil {
		t.Fatalf("expected parsed event")
	}
	memo, ok := parsed.str("memo")
	if !ok || memo != "note to self" {
		t.Fatalf("memo mismatch: %q %v", memo, ok)
	}
}

func TestParseLogUnknownTopic(t *testing.T) {
	lg := model.Log{
		Address: tokenA,
		Topics:  []common.Hash{common.HexToHash("0x123456")},
	}
	if parsed := ParseLog(lg, nil); parsed != nil {
		t.Fatalf("expected nil for unknown topic, got %+v", parsed)
	}
}

func TestParseLogNoTopics(t *testing.T) {
	if parsed := ParseLog(model.Log{Address: tokenA}, nil); parsed != nil {
		t.Fatalf("expected nil for topicless log, got %+v", parsed)
	}
}

func TestParseLogTopicCountMismatch(t *testing.T) {
	lg := transferLog(t, tokenA, alice, bob, 1)
	lg.Topics = lg.Topics[:2]
	if parsed := ParseLog(lg, nil); parsed != nil {
		t.Fatalf("expected nil for topic count mismatch, got %+v", parsed)
	}
}

func TestParseLogTruncatedData(t *testing.T) {
	lg := transferLog(t, tokenA, alice, bob, 1)
	lg.Data = lg.Data[:8]
	if parsed := ParseLog(lg, nil); parsed != nil {
		t.Fatalf("expected nil for truncated data, got %+v", parsed)
	}
}

func TestParseLogMissingData(t *testing.T) {
	lg := transferLog(t, tokenA, alice, bob, 1)
	lg.Data = nil
	if parsed := ParseLog(lg, nil); parsed != nil {
		t.Fatalf("expected nil when non-indexed data is absent, got %+v", parsed)
	}
}

func TestAccessorTypeMismatch(t *testing.T) {
	ev := &ParsedEvent{Args: map[string]interface{}{
		"value": "not a number",
	}}
	if _, ok := ev.bigInt("value"); ok {
		t.Fatalf("string should not coerce to big int")
	}
	if _, ok := ev.address("value"); ok {
		t.Fatalf("string should not coerce to address")
	}
	if _, ok := ev.bigInt("missing"); ok {
		t.Fatalf("missing arg should not resolve")
	}
}
