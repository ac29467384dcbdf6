package classify

import (
	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
	"txscope/internal/registry"
)

// swapGroup is one synthesized swap plus the index of its starting log.
type swapGroup struct {
	event      model.KnownEvent
	startIndex int
}

type transferLeg struct {
	token common.Address
	from  common.Address
	to    common.Address
	value model.Amount
}

func transferLegOf(ev *ParsedEvent, tc *txContext) *transferLeg {
	if ev == nil {
		return nil
	}
	if ev.Name != "Transfer" && ev.Name != "TransferWithMemo" {
		return nil
	}
	from, okFrom := ev.address("from")
	to, okTo := ev.address("to")
	value, okValue := ev.bigInt("value")
	if !okFrom || !okTo || !okValue {
		return nil
	}
	return &transferLeg{
		token: ev.Address,
		from:  from,
		to:    to,
		value: tc.amount(ev.Address, value),
	}
}

// groupSwaps scans for a transfer into the exchange followed by a transfer
// out of it and folds each such pair into one swap event. Pairing is
// greedy: the first candidate takes the next available counterpart, and
// consumed indices are never reconsidered.
func groupSwaps(parsed []*ParsedEvent, dropped map[int]struct{}, tc *txContext) ([]swapGroup, map[int]struct{}) {
	consumed := make(map[int]struct{})
	groups := make([]swapGroup, 0)

	for i := range parsed {
		if _, ok := dropped[i]; ok {
			continue
		}
		if _, ok := consumed[i]; ok {
			continue
		}
		in := transferLegOf(parsed[i], tc)
		if in == nil || in.to != registry.ExchangeAddress {
			continue
		}

		for j := i + 1; j < len(parsed); j++ {
			if _, ok := dropped[j]; ok {
				continue
			}
			if _, ok := consumed[j]; ok {
				continue
			}
			out := transferLegOf(parsed[j], tc)
			if out == nil || out.from != registry.ExchangeAddress {
				continue
			}

			trader := in.from
			groups = append(groups, swapGroup{
				startIndex: i,
				event: model.KnownEvent{
					Type: model.EventSwap,
					Parts: []model.Part{
						model.AccountPart(trader),
						model.ActionPart("Swapped"),
						model.AmountPart(in.value),
						model.TextPart("for"),
						model.AmountPart(out.value),
					},
					Meta: &model.Meta{From: &trader},
				},
			})
			consumed[i] = struct{}{}
			consumed[j] = struct{}{}
			break
		}
	}

	return groups, consumed
}
