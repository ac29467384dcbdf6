package classify

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"txscope/internal/model"
	"txscope/internal/registry"
)

var (
	tokenA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	alice  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	carol  = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func findEvent(t *testing.T, name string, inputs int) abi.Event {
	t.Helper()
	abis, err := registry.All()
	if err != nil {
		t.Fatalf("parse abis: %v", err)
	}
	for _, a := range abis {
		for _, event := range a.Events {
			if event.Name == name && len(event.Inputs) == inputs {
				return event
			}
		}
	}
	t.Fatalf("no event %s with %d inputs", name, inputs)
	return abi.Event{}
}

func buildLog(t *testing.T, emitter common.Address, event abi.Event, indexed []common.Hash, nonIndexed ...interface{}) model.Log {
	t.Helper()
	topics := make([]common.Hash, 0, len(indexed)+1)
	topics = append(topics, event.ID)
	topics = append(topics, indexed...)

	var data []byte
	if len(nonIndexed) > 0 {
		packed, err := event.Inputs.NonIndexed().Pack(nonIndexed...)
		if err != nil {
			t.Fatalf("pack %s: %v", event.Name, err)
		}
		data = packed
	}

	return model.Log{
		Address:     emitter,
		Topics:      topics,
		Data:        data,
		BlockNumber: 100,
		LogIndex:    1,
	}
}

func topicFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func topicFromBig(value *big.Int) common.Hash {
	return common.BigToHash(value)
}

func transferLog(t *testing.T, token, from, to common.Address, value int64) model.Log {
	t.Helper()
	event := findEvent(t, "Transfer", 3)
	return buildLog(t, token, event, []common.Hash{topicFromAddress(from), topicFromAddress(to)}, big.NewInt(value))
}

func memoTransferLog(t *testing.T, token, from, to common.Address, value int64, memo string) model.Log {
	t.Helper()
	event := findEvent(t, "TransferWithMemo", 4)
	return buildLog(t, token, event, []common.Hash{topicFromAddress(from), topicFromAddress(to)}, big.NewInt(value), memo)
}

func mintLog(t *testing.T, token, to common.Address, amount int64) model.Log {
	t.Helper()
	event := findEvent(t, "Mint", 2)
	return buildLog(t, token, event, []common.Hash{topicFromAddress(to)}, big.NewInt(amount))
}

func burnLog(t *testing.T, token, from common.Address, amount int64) model.Log {
	t.Helper()
	event := findEvent(t, "Burn", 2)
	return buildLog(t, token, event, []common.Hash{topicFromAddress(from)}, big.NewInt(amount))
}

func receiptWithLogs(logs ...model.Log) *model.Receipt {
	to := carol
	return &model.Receipt{
		TxHash:      common.HexToHash("0x01"),
		BlockNumber: 100,
		From:        alice,
		To:          &to,
		Status:      1,
		Logs:        logs,
	}
}

func staticMeta(token common.Address) *model.TokenMeta {
	if token == tokenA {
		return &model.TokenMeta{Address: token.Hex(), Decimals: 6, Symbol: "USDT"}
	}
	return nil
}

func TestClassifySend(t *testing.T) {
	receipt := receiptWithLogs(transferLog(t, tokenA, alice, bob, 1500000))

	events := ClassifyTransaction(receipt, Options{TokenMetadata: staticMeta})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSend {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	got := events[0].Render()
	want := alice.Hex() + " Sent 1.5 USDT to " + bob.Hex()
	if got != want {
		t.Fatalf("render mismatch: %q != %q", got, want)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, bob, 100),
		mintLog(t, tokenB, bob, 50),
	)

	first := ClassifyTransaction(receipt, Options{})
	second := ClassifyTransaction(receipt, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification is not deterministic: %+v != %+v", first, second)
	}
}

func TestAnnotatedTransferAbsorbsPlain(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, bob, 100),
		memoTransferLog(t, tokenA, alice, bob, 100, "hi"),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSend {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	if events[0].Note == nil || events[0].Note.Text != "hi" {
		t.Fatalf("memo not attached: %+v", events[0].Note)
	}
}

func TestMintAbsorbsZeroTransfer(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, registry.ZeroAddress, bob, 500),
		mintLog(t, tokenA, bob, 500),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventMint {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestBurnAbsorbsZeroTransfer(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, bob, registry.ZeroAddress, 500),
		burnLog(t, tokenA, bob, 500),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventBurn {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestMintMemoCarriedFromAnnotatedTransfer(t *testing.T) {
	receipt := receiptWithLogs(
		memoTransferLog(t, tokenA, registry.ZeroAddress, bob, 500, "welcome"),
		mintLog(t, tokenA, bob, 500),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventMint {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	if events[0].Note == nil || events[0].Note.Text != "welcome" {
		t.Fatalf("memo not carried: %+v", events[0].Note)
	}
}

func TestSwapGrouping(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, registry.ExchangeAddress, 1000),
		transferLog(t, tokenB, registry.ExchangeAddress, alice, 900),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSwap {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	if events[0].Meta == nil || events[0].Meta.From == nil || *events[0].Meta.From != alice {
		t.Fatalf("trader meta mismatch: %+v", events[0].Meta)
	}
}

func TestSwapGroupingLeavesUnmatchedLegs(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, registry.ExchangeAddress, 1000),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSend {
		t.Fatalf("unmatched leg should stay a send: %s", events[0].Type)
	}
}

func TestViewerFiltering(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, bob, 100),
		transferLog(t, tokenA, carol, bob, 200),
	)

	viewer := alice
	events := ClassifyTransaction(receipt, Options{Viewer: &viewer})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Meta == nil || events[0].Meta.From == nil || *events[0].Meta.From != alice {
		t.Fatalf("wrong event kept: %+v", events[0])
	}
}

func TestViewerKeepsMetalessEvents(t *testing.T) {
	event := findEvent(t, "PairCreated", 2)
	receipt := receiptWithLogs(
		buildLog(t, registry.ExchangeAddress, event, []common.Hash{topicFromAddress(tokenA), topicFromAddress(tokenB)}),
	)

	viewer := alice
	events := ClassifyTransaction(receipt, Options{Viewer: &viewer})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventCreatePair {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestFeeAggregation(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, registry.FeeCollectorAddress, 10),
		transferLog(t, tokenB, alice, registry.FeeCollectorAddress, 20),
	)

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventFee {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	got := events[0].Render()
	want := "Pay Fee 10 " + tokenA.Hex() + " and 20 " + tokenB.Hex()
	if got != want {
		t.Fatalf("render mismatch: %q != %q", got, want)
	}
}

func TestFeeAggregationNonPayerViewer(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, registry.FeeCollectorAddress, 5),
	)

	viewer := bob
	events := ClassifyTransaction(receipt, Options{Viewer: &viewer})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventFee {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	got := events[0].Render()
	want := "Pay Fee 5 " + tokenA.Hex()
	if got != want {
		t.Fatalf("render mismatch: %q != %q", got, want)
	}
}

func TestSponsoredFee(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, bob, registry.FeeCollectorAddress, 10),
	)

	viewer := bob
	events := ClassifyTransaction(receipt, Options{Viewer: &viewer})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSponsorFee {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	if events[0].Meta == nil || events[0].Meta.To == nil || *events[0].Meta.To != alice {
		t.Fatalf("sponsored party mismatch: %+v", events[0].Meta)
	}
}

func TestSelfPaidFeeBecomesFeeEvent(t *testing.T) {
	receipt := receiptWithLogs(
		transferLog(t, tokenA, alice, registry.FeeCollectorAddress, 10),
	)

	viewer := alice
	events := ClassifyTransaction(receipt, Options{Viewer: &viewer})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventFee {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestFallbackContractCreation(t *testing.T) {
	contract := common.HexToAddress("0x4444444444444444444444444444444444444444")
	receipt := &model.Receipt{
		From:            alice,
		ContractAddress: &contract,
		Status:          1,
	}

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventContractCreation {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestFallbackContractCallFailed(t *testing.T) {
	receipt := receiptWithLogs()
	receipt.Status = 0

	events := ClassifyTransaction(receipt, Options{
		Transaction: &model.Transaction{To: receipt.To, Input: []byte{0xde, 0xad}},
	})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventContractCall {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
	if !events[0].Failed {
		t.Fatalf("expected failed flag")
	}
}

func TestFallbackSelfTransfer(t *testing.T) {
	self := alice
	receipt := &model.Receipt{
		From:   alice,
		To:     &self,
		Status: 1,
	}

	events := ClassifyTransaction(receipt, Options{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.EventSelfTransfer {
		t.Fatalf("type mismatch: %s", events[0].Type)
	}
}

func TestUnknownLogsYieldNoEvents(t *testing.T) {
	receipt := receiptWithLogs(model.Log{
		Address: tokenA,
		Topics:  []common.Hash{common.HexToHash("0xdead")},
	})

	events := ClassifyTransaction(receipt, Options{})
	if events == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestClassifyNilReceipt(t *testing.T) {
	events := ClassifyTransaction(nil, Options{})
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty slice, got %v", events)
	}
}

func TestClassifyEventFeeTransfer(t *testing.T) {
	event := ClassifyEvent(transferLog(t, tokenA, alice, registry.FeeCollectorAddress, 10), Options{})
	if event == nil {
		t.Fatalf("expected event")
	}
	if event.Type != model.EventFee {
		t.Fatalf("type mismatch: %s", event.Type)
	}
}

func TestClassifyEventUnknown(t *testing.T) {
	event := ClassifyEvent(model.Log{
		Address: tokenA,
		Topics:  []common.Hash{common.HexToHash("0xbeef")},
	}, Options{})
	if event != nil {
		t.Fatalf("expected nil, got %+v", event)
	}
}

func TestIsDisplayWorthy(t *testing.T) {
	if IsDisplayWorthy(model.KnownEvent{Type: model.EventIncrementNonce}) {
		t.Fatalf("nonce increments should be hidden by default")
	}
	if !IsDisplayWorthy(model.KnownEvent{Type: model.EventSend}) {
		t.Fatalf("sends should be displayed")
	}
}
