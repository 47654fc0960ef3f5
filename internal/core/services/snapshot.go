package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

const SnapshotVersion = 1

// envelope wraps every persisted document with its format version.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

func EncodeSnapshot(v any, savedAt time.Time) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return json.Marshal(envelope{Version: SnapshotVersion, SavedAt: savedAt.UTC(), Data: data})
}

// DecodeSnapshot fails with ErrCorruptSnapshot on anything it cannot trust.
func DecodeSnapshot(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if env.Version < 1 || env.Version > SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptSnapshot, env.Version)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: empty document", domain.ErrCorruptSnapshot)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return nil
}
