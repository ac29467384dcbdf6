package storage

import "txscope/internal/model"

// Storage defines a sink for classified event records.
type Storage interface {
	PutEventBatch(events []model.EventRecord) error
}
