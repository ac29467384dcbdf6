package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Checkpoint records how far classification has progressed on one chain.
type Checkpoint struct {
	ChainID             uint64 `json:"chain_id"`
	LastClassifiedBlock uint64 `json:"last_classified_block"`
	SavedAt             string `json:"saved_at"`
}

// CheckpointStore persists classification progress as a JSON file,
// written atomically through a temp file.
type CheckpointStore struct {
	path    string
	enabled bool
}

func NewCheckpointStore(path string, enabled bool) *CheckpointStore {
	return &CheckpointStore{path: path, enabled: enabled}
}

func (c *CheckpointStore) Load() (Checkpoint, bool, error) {
	if !c.enabled || c.path == "" {
		return Checkpoint{}, false, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, false, fmt.Errorf("parse checkpoint: %w", err)
	}
	return cp, true, nil
}

// Resume returns the block classification should continue from. A
// checkpoint written for a different chain is an error rather than a
// silent restart, so stored events never mix chains.
func (c *CheckpointStore) Resume(chainID, from uint64) (uint64, error) {
	cp, ok, err := c.Load()
	if err != nil {
		return 0, err
	}
	if !ok {
		return from, nil
	}
	if cp.ChainID != chainID {
		return 0, fmt.Errorf("checkpoint belongs to chain %d, classifying chain %d", cp.ChainID, chainID)
	}
	if cp.LastClassifiedBlock >= from {
		return cp.LastClassifiedBlock + 1, nil
	}
	return from, nil
}

func (c *CheckpointStore) Save(chainID, lastClassified uint64) error {
	if !c.enabled || c.path == "" {
		return nil
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	data, err := json.Marshal(Checkpoint{
		ChainID:             chainID,
		LastClassifiedBlock: lastClassified,
		SavedAt:             time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint tmp: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("promote checkpoint: %w", err)
	}
	return nil
}
