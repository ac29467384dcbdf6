package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"txscope/internal/config"
	"txscope/internal/model"
)

func writeReceiptLines(t *testing.T, path string, lines ...[]byte) {
	t.Helper()
	var data []byte
	for _, line := range lines {
		data = append(data, line...)
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
}

func TestClassifyFileWritesEventsJSONL(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "receipts.jsonl")
	outPath := filepath.Join(dir, "events.jsonl")

	deployer := common.HexToAddress("0x1111111111111111111111111111111111111111")
	contract := common.HexToAddress("0x4444444444444444444444444444444444444444")
	creation := model.Receipt{
		TxHash:          common.HexToHash("0x07"),
		From:            deployer,
		ContractAddress: &contract,
		Status:          1,
	}

	self := deployer
	selfTransfer := model.Receipt{
		TxHash: common.HexToHash("0x08"),
		From:   deployer,
		To:     &self,
		Status: 1,
	}

	creationLine, err := json.Marshal(creation)
	if err != nil {
		t.Fatalf("marshal receipt: %v", err)
	}
	selfLine, err := json.Marshal(selfTransfer)
	if err != nil {
		t.Fatalf("marshal receipt: %v", err)
	}
	writeReceiptLines(t, inPath, creationLine, []byte("{not json"), selfLine)

	out, err := newJSONLWriter(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}

	cfg := config.ClassifyConfig{In: inPath, Out: outPath, ShowAll: true}
	if err := classifyFile(cfg, nil, nil, out, zap.NewNop()); err != nil {
		t.Fatalf("classify file: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close output: %v", err)
	}

	file, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer file.Close()

	var records []classifiedEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record classifiedEvent
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 events, got %d", len(records))
	}
	if records[0].TxHash != creation.TxHash.Hex() || records[0].Ordinal != 0 {
		t.Fatalf("first record context mismatch: %+v", records[0])
	}
	if records[0].Event.Type != model.EventContractCreation {
		t.Fatalf("first record type mismatch: %s", records[0].Event.Type)
	}
	if records[0].Rendered == "" {
		t.Fatalf("rendered text should be set")
	}
	if records[1].Event.Type != model.EventSelfTransfer {
		t.Fatalf("second record type mismatch: %s", records[1].Event.Type)
	}
}

func TestClassifyFileMissingInput(t *testing.T) {
	cfg := config.ClassifyConfig{In: filepath.Join(t.TempDir(), "absent.jsonl")}
	if err := classifyFile(cfg, nil, nil, nil, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing input")
	}
}
