package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Known event types surfaced to callers.
const (
	EventSend                 = "send"
	EventMint                 = "mint"
	EventBurn                 = "burn"
	EventSwap                 = "swap"
	EventFee                  = "fee"
	EventSponsorFee           = "sponsor fee"
	EventContractCall         = "contract call"
	EventSelfTransfer         = "self transfer"
	EventContractCreation     = "contract creation"
	EventGrantRole            = "grant role"
	EventRevokeRole           = "revoke role"
	EventPause                = "pause"
	EventUnpause              = "unpause"
	EventSetSupplyCap         = "set supply cap"
	EventUpdatePolicy         = "update policy"
	EventUpdateAdmin          = "update admin"
	EventCreateToken          = "create token"
	EventPlaceOrder           = "place order"
	EventPlaceFlipOrder       = "place flip order"
	EventFillOrder            = "fill order"
	EventCancelOrder          = "cancel order"
	EventCreatePair           = "create pair"
	EventCreatePolicy         = "create policy"
	EventUpdatePolicyAdmin    = "update policy admin"
	EventAllowAccount         = "allow account"
	EventDenyAccount          = "deny account"
	EventSetFeeToken          = "set fee token"
	EventSetValidatorFeeToken = "set validator fee token"
	EventAddLiquidity         = "add liquidity"
	EventRemoveLiquidity      = "remove liquidity"
	EventRebalance            = "rebalance"
	EventIncrementNonce       = "increment nonce"
	EventAuthorizeKey         = "authorize key"
	EventRevokeKey            = "revoke key"
	EventUpdateSpendingLimit  = "update spending limit"
	EventAddValidator         = "add validator"
	EventRemoveValidator      = "remove validator"
	EventUpdateValidatorOwner = "update validator owner"
)

// PartKind discriminates the members of the Part union.
type PartKind string

const (
	PartAccount      PartKind = "account"
	PartAction       PartKind = "action"
	PartAmount       PartKind = "amount"
	PartContractCall PartKind = "contractCall"
	PartDuration     PartKind = "duration"
	PartHex          PartKind = "hex"
	PartNumber       PartKind = "number"
	PartRole         PartKind = "role"
	PartText         PartKind = "text"
	PartTick         PartKind = "tick"
	PartToken        PartKind = "token"
)

// Part is one fragment of a KnownEvent sentence. Only the fields matching
// Kind are set; parts render left to right and their order is meaningful.
type Part struct {
	Kind    PartKind       `json:"kind"`
	Address *common.Address `json:"address,omitempty"`
	Text    string          `json:"text,omitempty"`
	Amount  *Amount         `json:"amount,omitempty"`
	Data    hexutil.Bytes   `json:"data,omitempty"`
	Seconds uint64          `json:"seconds,omitempty"`
	Number  *Number         `json:"number,omitempty"`
	Role    *common.Hash    `json:"role,omitempty"`
	Tick    *int32          `json:"tick,omitempty"`
	Symbol  string          `json:"symbol,omitempty"`
}

// Number is an integer with optional display decimals.
type Number struct {
	Value    string `json:"value"`
	Decimals *uint8 `json:"decimals,omitempty"`
}

// AccountPart references an address taking part in the action.
func AccountPart(address common.Address) Part {
	addr := address
	return Part{Kind: PartAccount, Address: &addr}
}

// ActionPart is the verb phrase of the sentence.
func ActionPart(verb string) Part {
	return Part{Kind: PartAction, Text: verb}
}

// AmountPart is a token amount.
func AmountPart(amount Amount) Part {
	a := amount
	return Part{Kind: PartAmount, Amount: &a}
}

// ContractCallPart is a target address with raw call bytes.
func ContractCallPart(address common.Address, data []byte) Part {
	addr := address
	return Part{Kind: PartContractCall, Address: &addr, Data: data}
}

// DurationPart is a span in seconds.
func DurationPart(seconds uint64) Part {
	return Part{Kind: PartDuration, Seconds: seconds}
}

// HexPart is raw bytes rendered as hex.
func HexPart(data []byte) Part {
	return Part{Kind: PartHex, Data: data}
}

// NumberPart is a plain integer.
func NumberPart(value string) Part {
	return Part{Kind: PartNumber, Number: &Number{Value: value}}
}

// NumberPartWithDecimals is an integer displayed with decimals.
func NumberPartWithDecimals(value string, decimals uint8) Part {
	d := decimals
	return Part{Kind: PartNumber, Number: &Number{Value: value, Decimals: &d}}
}

// RolePart is a 32-byte role identifier.
func RolePart(role common.Hash) Part {
	r := role
	return Part{Kind: PartRole, Role: &r}
}

// TextPart is a literal connective phrase.
func TextPart(text string) Part {
	return Part{Kind: PartText, Text: text}
}

// TickPart is a signed price tick.
func TickPart(tick int32) Part {
	t := tick
	return Part{Kind: PartTick, Tick: &t}
}

// TokenPart references a token contract with an optional symbol.
func TokenPart(address common.Address, symbol string) Part {
	addr := address
	return Part{Kind: PartToken, Address: &addr, Symbol: symbol}
}

// Meta carries from/to hints used only for viewer filtering.
type Meta struct {
	From *common.Address `json:"from,omitempty"`
	To   *common.Address `json:"to,omitempty"`
}

// NoteItem is one labeled part in a structured note.
type NoteItem struct {
	Label string `json:"label"`
	Part  Part   `json:"part"`
}

// Note is free text or a labeled list of parts attached to an event.
type Note struct {
	Text  string     `json:"text,omitempty"`
	Items []NoteItem `json:"items,omitempty"`
}

// TextNote builds a free-text note.
func TextNote(text string) *Note {
	return &Note{Text: text}
}

// KnownEvent is one human-meaningful action recovered from a transaction.
// Parts is never empty.
type KnownEvent struct {
	Type   string `json:"type"`
	Parts  []Part `json:"parts"`
	Note   *Note  `json:"note,omitempty"`
	Meta   *Meta  `json:"meta,omitempty"`
	Failed bool   `json:"failed,omitempty"`
}

// Render flattens the parts into a single display sentence.
func (e KnownEvent) Render() string {
	words := make([]string, 0, len(e.Parts))
	for _, part := range e.Parts {
		if s := part.Render(); s != "" {
			words = append(words, s)
		}
	}
	return strings.Join(words, " ")
}

// Render returns the display form of a single part.
func (p Part) Render() string {
	switch p.Kind {
	case PartAccount:
		if p.Address != nil {
			return p.Address.Hex()
		}
	case PartAction, PartText:
		return p.Text
	case PartAmount:
		if p.Amount != nil {
			return p.Amount.Format()
		}
	case PartContractCall:
		if p.Address != nil {
			return p.Address.Hex() + " " + hexutil.Encode(p.Data)
		}
	case PartDuration:
		return formatSeconds(p.Seconds)
	case PartHex:
		return hexutil.Encode(p.Data)
	case PartNumber:
		if p.Number != nil {
			return p.Number.Format()
		}
	case PartRole:
		if p.Role != nil {
			return p.Role.Hex()
		}
	case PartTick:
		if p.Tick != nil {
			return formatTick(*p.Tick)
		}
	case PartToken:
		if p.Symbol != "" {
			return p.Symbol
		}
		if p.Address != nil {
			return p.Address.Hex()
		}
	}
	return ""
}
