package model

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestKnownEventRender(t *testing.T) {
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	decimals := uint8(18)

	event := KnownEvent{
		Type: EventSend,
		Parts: []Part{
			AccountPart(from),
			ActionPart("Sent"),
			AmountPart(Amount{Token: token, Value: bigFromString(t, "1500000000000000000"), Decimals: &decimals, Symbol: "WETH"}),
			TextPart("to"),
			AccountPart(to),
		},
	}

	want := from.Hex() + " Sent 1.5 WETH to " + to.Hex()
	if got := event.Render(); got != want {
		t.Fatalf("render mismatch: %q != %q", got, want)
	}
}

func TestPartRenderKinds(t *testing.T) {
	addr := common.HexToAddress("0x3333333333333333333333333333333333333333")
	role := common.HexToHash("0x04")
	tick := int32(-42)

	cases := []struct {
		part Part
		want string
	}{
		{ActionPart("Paused"), "Paused"},
		{TextPart("for"), "for"},
		{AccountPart(addr), addr.Hex()},
		{TokenPart(addr, "USDT"), "USDT"},
		{TokenPart(addr, ""), addr.Hex()},
		{NumberPart("77"), "77"},
		{RolePart(role), role.Hex()},
		{DurationPart(90), "1m30s"},
		{HexPart([]byte{0xde, 0xad}), "0xdead"},
		{Part{Kind: PartTick, Tick: &tick}, "tick -42"},
	}

	for _, tc := range cases {
		if got := tc.part.Render(); got != tc.want {
			t.Fatalf("render mismatch for %s: %q != %q", tc.part.Kind, got, tc.want)
		}
	}
}

func TestKnownEventJSONOmitsEmpty(t *testing.T) {
	event := KnownEvent{
		Type:  EventBurn,
		Parts: []Part{ActionPart("Burned")},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["note"]; ok {
		t.Fatalf("empty note should be omitted")
	}
	if _, ok := decoded["meta"]; ok {
		t.Fatalf("empty meta should be omitted")
	}
	if _, ok := decoded["failed"]; ok {
		t.Fatalf("false failed flag should be omitted")
	}
}
