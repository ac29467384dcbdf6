package pipeline

import "fmt"

// BlockSpan is an inclusive run of blocks classified as one batch.
type BlockSpan struct {
	Start uint64
	End   uint64
}

// SplitSpans cuts [from, to] into consecutive spans of at most size
// blocks. Both bounds are inclusive.
func SplitSpans(from, to, size uint64) ([]BlockSpan, error) {
	if size == 0 {
		return nil, fmt.Errorf("span size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("invalid span: %d > %d", from, to)
	}

	spans := make([]BlockSpan, 0, (to-from)/size+1)
	for start := from; ; {
		end := start + size - 1
		if end > to || end < start {
			end = to
		}
		spans = append(spans, BlockSpan{Start: start, End: end})
		if end == to {
			return spans, nil
		}
		start = end + 1
	}
}
