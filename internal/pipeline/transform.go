package pipeline

import (
	"encoding/json"
	"time"

	"txscope/internal/model"
)

func buildEventRecords(chainID uint64, receipt *model.Receipt, events []model.KnownEvent, timestamp uint64, ingestedAt time.Time) []model.EventRecord {
	records := make([]model.EventRecord, 0, len(events))
	for ordinal, event := range events {
		parts, err := json.Marshal(event.Parts)
		if err != nil {
			parts = json.RawMessage("[]")
		}
		records = append(records, model.EventRecord{
			ChainID:     chainID,
			BlockNumber: receipt.BlockNumber,
			TxHash:      receipt.TxHash.Hex(),
			Ordinal:     ordinal,
			EventType:   event.Type,
			Rendered:    event.Render(),
			Parts:       parts,
			Failed:      event.Failed,
			Timestamp:   timestamp,
			IngestedAt:  ingestedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return records
}
