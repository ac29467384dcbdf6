package tokenmeta

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache()
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	if _, ok := cache.Get(token); ok {
		t.Fatalf("empty cache should miss")
	}

	cache.Set(token, model.TokenMeta{Address: token.Hex(), Decimals: 6, Symbol: "USDT"})

	meta, ok := cache.Get(token)
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if meta.Decimals != 6 || meta.Symbol != "USDT" {
		t.Fatalf("meta mismatch: %+v", meta)
	}
}

func TestLookupUsesCacheWithoutClient(t *testing.T) {
	cache := NewCache()
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	cache.Set(token, model.TokenMeta{Address: token.Hex(), Decimals: 18, Symbol: "WETH"})

	lookup := Lookup(context.Background(), nil, cache, nil)

	meta := lookup(token)
	if meta == nil || meta.Symbol != "WETH" {
		t.Fatalf("cached meta not returned: %+v", meta)
	}

	other := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if got := lookup(other); got != nil {
		t.Fatalf("uncached token without client should miss: %+v", got)
	}
}

func TestBytes32ToString(t *testing.T) {
	var raw [32]byte
	copy(raw[:], "MKR")

	value, ok := bytes32ToString(raw)
	if !ok || value != "MKR" {
		t.Fatalf("bytes32 decode mismatch: %q %v", value, ok)
	}

	if _, ok := bytes32ToString(42); ok {
		t.Fatalf("int should not decode")
	}
}
