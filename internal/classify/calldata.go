package classify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
	"txscope/internal/registry"
)

// augmentFromCalls walks the call tree for an addLiquidity call into the
// fee collector. Liquidity deposits look identical to fee payments in the
// logs, so the call data is the only place the intent is visible. Decode
// failures on a candidate are swallowed and the walk continues.
func augmentFromCalls(tx *model.Transaction, tc *txContext) *model.KnownEvent {
	if tx == nil {
		return nil
	}

	calls := make([]model.Call, 0, len(tx.Calls)+1)
	calls = append(calls, model.Call{To: tx.To, Input: tx.Input})
	calls = append(calls, tx.Calls...)

	for _, call := range calls {
		if call.To == nil || *call.To != registry.FeeCollectorAddress {
			continue
		}
		token, amount, ok := decodeAddLiquidity(call.Input)
		if !ok {
			continue
		}
		return &model.KnownEvent{
			Type: model.EventMint,
			Parts: []model.Part{
				model.ActionPart("Added liquidity"),
				model.AmountPart(tc.amount(token, amount)),
			},
		}
	}
	return nil
}

func decodeAddLiquidity(input []byte) (common.Address, *big.Int, bool) {
	poolABI, err := registry.FeePoolABI()
	if err != nil || len(input) < 4 {
		return common.Address{}, nil, false
	}
	method, ok := registry.MethodBySelector(poolABI, input)
	if !ok || method.Name != "addLiquidity" {
		return common.Address{}, nil, false
	}
	values, err := method.Inputs.Unpack(input[4:])
	if err != nil || len(values) != 2 {
		return common.Address{}, nil, false
	}
	token, okToken := values[0].(common.Address)
	amount, okAmount := values[1].(*big.Int)
	if !okToken || !okAmount {
		return common.Address{}, nil, false
	}
	return token, amount, true
}

// ClassifyCall decodes a direct call to a known administrative contract
// that emits no events. Unknown targets and undecodable inputs yield nil.
func ClassifyCall(target common.Address, input []byte) *model.KnownEvent {
	if target != registry.ValidatorConfigAddress {
		return nil
	}
	configABI, err := registry.ValidatorConfigABI()
	if err != nil {
		return nil
	}
	method, ok := registry.MethodBySelector(configABI, input)
	if !ok {
		return nil
	}
	values, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil
	}

	switch method.Name {
	case "addValidator":
		validator, ok := singleAddress(values)
		if !ok {
			return nil
		}
		return &model.KnownEvent{
			Type: model.EventAddValidator,
			Parts: []model.Part{
				model.ActionPart("Added validator"),
				model.AccountPart(validator),
			},
		}
	case "removeValidator":
		validator, ok := singleAddress(values)
		if !ok {
			return nil
		}
		return &model.KnownEvent{
			Type: model.EventRemoveValidator,
			Parts: []model.Part{
				model.ActionPart("Removed validator"),
				model.AccountPart(validator),
			},
		}
	case "setValidatorOwner":
		if len(values) != 2 {
			return nil
		}
		validator, okValidator := values[0].(common.Address)
		owner, okOwner := values[1].(common.Address)
		if !okValidator || !okOwner {
			return nil
		}
		return &model.KnownEvent{
			Type: model.EventUpdateValidatorOwner,
			Parts: []model.Part{
				model.ActionPart("Set owner of validator"),
				model.AccountPart(validator),
				model.TextPart("to"),
				model.AccountPart(owner),
			},
		}
	}
	return nil
}

func singleAddress(values []interface{}) (common.Address, bool) {
	if len(values) != 1 {
		return common.Address{}, false
	}
	address, ok := values[0].(common.Address)
	return address, ok
}
