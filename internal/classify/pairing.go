package classify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/registry"
)

// pairKind identifies which fidelity of log last claimed a pairing key.
type pairKind int

const (
	pairNone pairKind = iota
	pairMemoTransfer
	pairMint
	pairBurn
)

func transferPairKey(from, to common.Address) string {
	return from.Hex() + "|" + to.Hex()
}

func mintPairKey(token common.Address, amount *big.Int, to common.Address) string {
	return "mint:" + token.Hex() + ":" + amount.String() + ":" + to.Hex()
}

func burnPairKey(token common.Address, amount *big.Int, from common.Address) string {
	return "burn:" + token.Hex() + ":" + amount.String() + ":" + from.Hex()
}

// buildPairingIndex records, per pairing key, which kind of log last
// claimed it. Annotated transfers key on (sender, recipient); Mint and
// Burn key on emitter, amount and counterparty.
func buildPairingIndex(parsed []*ParsedEvent) map[string]pairKind {
	claims := make(map[string]pairKind)
	for _, ev := range parsed {
		if ev == nil {
			continue
		}
		switch ev.Name {
		case "TransferWithMemo":
			from, okFrom := ev.address("from")
			to, okTo := ev.address("to")
			if okFrom && okTo {
				claims[transferPairKey(from, to)] = pairMemoTransfer
			}
		case "Mint":
			to, okTo := ev.address("to")
			amount, okAmount := ev.bigInt("amount")
			if okTo && okAmount {
				claims[mintPairKey(ev.Address, amount, to)] = pairMint
			}
		case "Burn":
			from, okFrom := ev.address("from")
			amount, okAmount := ev.bigInt("amount")
			if okFrom && okAmount {
				claims[burnPairKey(ev.Address, amount, from)] = pairBurn
			}
		}
	}
	return claims
}

// droppedIndices filters out the lower-fidelity duplicate of each action:
// mint/burn beats annotated transfer beats plain transfer.
func droppedIndices(parsed []*ParsedEvent, claims map[string]pairKind) map[int]struct{} {
	dropped := make(map[int]struct{})
	for i, ev := range parsed {
		if ev == nil {
			continue
		}
		from, okFrom := ev.address("from")
		to, okTo := ev.address("to")
		if !okFrom || !okTo {
			continue
		}
		value, okValue := ev.bigInt("value")

		switch ev.Name {
		case "Transfer":
			if claims[transferPairKey(from, to)] == pairMemoTransfer {
				dropped[i] = struct{}{}
				continue
			}
			if !okValue {
				continue
			}
			if from == registry.ZeroAddress && claims[mintPairKey(ev.Address, value, to)] == pairMint {
				dropped[i] = struct{}{}
			} else if to == registry.ZeroAddress && claims[burnPairKey(ev.Address, value, from)] == pairBurn {
				dropped[i] = struct{}{}
			}
		case "TransferWithMemo":
			if !okValue {
				continue
			}
			if from == registry.ZeroAddress && claims[mintPairKey(ev.Address, value, to)] == pairMint {
				dropped[i] = struct{}{}
			} else if to == registry.ZeroAddress && claims[burnPairKey(ev.Address, value, from)] == pairBurn {
				dropped[i] = struct{}{}
			}
		}
	}
	return dropped
}

// buildMemoIndex carries memo text from annotated mint/burn-pattern
// transfers over to the Mint/Burn log that claimed the same key.
func buildMemoIndex(parsed []*ParsedEvent, claims map[string]pairKind) map[string]string {
	memos := make(map[string]string)
	for _, ev := range parsed {
		if ev == nil || ev.Name != "TransferWithMemo" {
			continue
		}
		from, okFrom := ev.address("from")
		to, okTo := ev.address("to")
		value, okValue := ev.bigInt("value")
		memo, okMemo := ev.str("memo")
		if !okFrom || !okTo || !okValue || !okMemo || memo == "" {
			continue
		}

		if from == registry.ZeroAddress {
			key := mintPairKey(ev.Address, value, to)
			if claims[key] == pairMint {
				memos[key] = memo
			}
		} else if to == registry.ZeroAddress {
			key := burnPairKey(ev.Address, value, from)
			if claims[key] == pairBurn {
				memos[key] = memo
			}
		}
	}
	return memos
}
