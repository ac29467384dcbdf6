package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
)

func TestBuildEventRecords(t *testing.T) {
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	receipt := &model.Receipt{
		TxHash:      common.HexToHash("0xabc"),
		BlockNumber: 77,
		From:        from,
	}
	events := []model.KnownEvent{
		{Type: model.EventSend, Parts: []model.Part{model.ActionPart("Sent")}},
		{Type: model.EventContractCall, Parts: []model.Part{model.ActionPart("Called contract")}, Failed: true},
	}

	ingestedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := buildEventRecords(9, receipt, events, 1700000000, ingestedAt)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Ordinal != 0 || records[1].Ordinal != 1 {
		t.Fatalf("ordinal mismatch: %+v", records)
	}
	if records[0].ChainID != 9 || records[0].BlockNumber != 77 {
		t.Fatalf("chain context mismatch: %+v", records[0])
	}
	if records[0].Rendered != "Sent" {
		t.Fatalf("rendered mismatch: %q", records[0].Rendered)
	}
	if !records[1].Failed {
		t.Fatalf("failed flag lost")
	}

	var parts []model.Part
	if err := json.Unmarshal(records[0].Parts, &parts); err != nil {
		t.Fatalf("parts should round-trip: %v", err)
	}
	if len(parts) != 1 || parts[0].Kind != model.PartAction {
		t.Fatalf("parts mismatch: %+v", parts)
	}
}
