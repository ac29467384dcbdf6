package report

import "txscope/internal/model"

// Accumulator holds event counts for one event type window.
type Accumulator struct {
	ChainID     uint64
	EventType   string
	WindowStart uint64
	WindowEnd   uint64
	Count       uint64
	FailedCount uint64
	LastTS      uint64
}

func NewAccumulator(record model.EventRecord, windowStart, windowEnd uint64) *Accumulator {
	return &Accumulator{
		ChainID:     record.ChainID,
		EventType:   record.EventType,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		LastTS:      record.Timestamp,
	}
}

func (a *Accumulator) AddEvent(record model.EventRecord) {
	if record.Timestamp >= a.LastTS {
		a.LastTS = record.Timestamp
	}
	a.Count++
	if record.Failed {
		a.FailedCount++
	}
}

func (a *Accumulator) Window() model.EventTypeWindow {
	return model.EventTypeWindow{
		ChainID:        a.ChainID,
		EventType:      a.EventType,
		WindowSizeSecs: int64(a.WindowEnd - a.WindowStart),
		WindowStart:    a.WindowStart,
		WindowEnd:      a.WindowEnd,
		Count:          a.Count,
		FailedCount:    a.FailedCount,
	}
}
