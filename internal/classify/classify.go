// Package classify turns the raw logs and call data of one transaction
// into an ordered list of human-meaningful known events. The pipeline is
// pure and synchronous: decode each log, resolve duplicate fidelities,
// carry memos over to mints and burns, fold exchange round-trips into
// swaps, run the detector families per log, filter for the viewer, and
// fall back to a generic classification when nothing matched.
package classify

import (
	"strconv"

	"txscope/internal/model"
)

// ClassifyTransaction runs the full pipeline over all logs of one
// transaction. The result is empty only when not even the fallback rules
// apply; malformed logs never cause an error.
func ClassifyTransaction(receipt *model.Receipt, opts Options) []model.KnownEvent {
	events := make([]model.KnownEvent, 0)
	if receipt == nil {
		return events
	}

	parsed := make([]*ParsedEvent, len(receipt.Logs))
	for i, lg := range receipt.Logs {
		parsed[i] = ParseLog(lg, opts.Logger)
	}

	// Both maps are built up front and read-only during detection.
	claims := buildPairingIndex(parsed)
	dropped := droppedIndices(parsed, claims)
	memos := buildMemoIndex(parsed, claims)

	tc := newTxContext(receipt, opts, memos)

	if augmented := augmentFromCalls(opts.Transaction, tc); augmented != nil {
		events = append(events, *augmented)
	}

	swaps, consumed := groupSwaps(parsed, dropped, tc)
	for _, group := range swaps {
		events = append(events, group.event)
	}

	fees := make([]model.Amount, 0)
	for i, ev := range parsed {
		if ev == nil {
			continue
		}
		if _, ok := dropped[i]; ok {
			continue
		}
		if _, ok := consumed[i]; ok {
			continue
		}
		result := runDetectors(ev, tc)
		if result == nil {
			continue
		}
		if result.fee != nil {
			fees = append(fees, *result.fee)
			continue
		}
		events = append(events, *result.event)
	}

	if opts.Viewer != nil {
		events = filterForViewer(events, opts)
	}

	if len(events) == 0 {
		if fb := fallbackEvent(receipt, opts.Transaction, fees); fb != nil {
			events = append(events, *fb)
		}
	}

	return events
}

// ClassifyEvent classifies one log in isolation. A fee transfer, which the
// full pipeline would aggregate, is surfaced directly as a fee event here.
func ClassifyEvent(lg model.Log, opts Options) *model.KnownEvent {
	ev := ParseLog(lg, opts.Logger)
	if ev == nil {
		return nil
	}

	tc := newTxContext(nil, opts, nil)
	result := runDetectors(ev, tc)
	if result == nil {
		return nil
	}
	if result.fee != nil {
		return &model.KnownEvent{
			Type: model.EventFee,
			Parts: []model.Part{
				model.ActionPart("Pay Fee"),
				model.AmountPart(*result.fee),
			},
		}
	}
	return result.event
}

// filterForViewer drops events whose meta names parties that do not
// include the viewer. Events without meta are contract or system events
// with no natural party and pass through.
func filterForViewer(events []model.KnownEvent, opts Options) []model.KnownEvent {
	viewer := *opts.Viewer
	kept := make([]model.KnownEvent, 0, len(events))
	for _, event := range events {
		if event.Meta == nil {
			kept = append(kept, event)
			continue
		}
		if event.Meta.From != nil && *event.Meta.From == viewer {
			kept = append(kept, event)
			continue
		}
		if event.Meta.To != nil && *event.Meta.To == viewer {
			kept = append(kept, event)
			continue
		}
	}
	return kept
}

// IsDisplayWorthy reports whether an event belongs in a default display.
// Informational counter updates are suppressed; callers wanting the full
// list bypass this filter.
func IsDisplayWorthy(event model.KnownEvent) bool {
	return event.Type != model.EventIncrementNonce
}

func formatUint8(v uint8) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}
