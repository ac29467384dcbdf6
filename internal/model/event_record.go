package model

import "encoding/json"

// EventRecord is the storage form of one classified event.
type EventRecord struct {
	ChainID     uint64          `json:"chain_id"`
	BlockNumber uint64          `json:"block_number"`
	TxHash      string          `json:"tx_hash"`
	Ordinal     int             `json:"ordinal"`
	EventType   string          `json:"event_type"`
	Rendered    string          `json:"rendered"`
	Parts       json.RawMessage `json:"parts"`
	Failed      bool            `json:"failed,omitempty"`
	Timestamp   uint64          `json:"timestamp"`
	IngestedAt  string          `json:"ingested_at"`
}

// EventTypeWindow is one aggregated count of an event type in a time window.
type EventTypeWindow struct {
	ChainID        uint64
	EventType      string
	WindowSizeSecs int64
	WindowStart    uint64
	WindowEnd      uint64
	Count          uint64
	FailedCount    uint64
}
