package classify

import (
	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
)

// fallbackEvent produces a generic classification when no detector fired.
// Rules are tried in order; only the first match applies.
func fallbackEvent(receipt *model.Receipt, tx *model.Transaction, fees []model.Amount) *model.KnownEvent {
	var target *common.Address
	var input []byte
	if tx != nil {
		target = tx.To
		input = tx.Input
	}
	if target == nil {
		target = receipt.To
	}

	if target == nil && receipt.ContractAddress != nil {
		return &model.KnownEvent{
			Type: model.EventContractCreation,
			Parts: []model.Part{
				model.ActionPart("Deployed contract"),
				model.AccountPart(*receipt.ContractAddress),
			},
		}
	}

	if target != nil && len(input) > 0 {
		return &model.KnownEvent{
			Type: model.EventContractCall,
			Parts: []model.Part{
				model.ActionPart("Called contract"),
				model.ContractCallPart(*target, input),
			},
			Failed: receipt.Status == 0,
		}
	}

	if target != nil && *target == receipt.From && len(input) == 0 {
		return &model.KnownEvent{
			Type: model.EventSelfTransfer,
			Parts: []model.Part{
				model.AccountPart(receipt.From),
				model.ActionPart("Sent to self"),
			},
		}
	}

	if len(fees) > 0 {
		parts := make([]model.Part, 0, len(fees)*2+1)
		parts = append(parts, model.ActionPart("Pay Fee"))
		for i, fee := range fees {
			if i > 0 {
				parts = append(parts, model.TextPart("and"))
			}
			parts = append(parts, model.AmountPart(fee))
		}
		return &model.KnownEvent{
			Type:  model.EventFee,
			Parts: parts,
		}
	}

	return nil
}
