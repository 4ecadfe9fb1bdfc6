package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/logging"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

// LoadSnapshot reads and decodes a capture file. With schema checking
// enabled the raw document is validated against the capture schema before
// decoding, so malformed captures fail with located errors instead of
// half-decoded content.
func LoadSnapshot(path string, schemaValidation bool) (*types.Snapshot, error) {
	log := logging.For(logging.ComponentLoader)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture file: %w", err)
	}
	log.Debugw("read capture file", "path", path, "bytes", len(data))

	if schemaValidation {
		if err := CheckSchema(data); err != nil {
			return nil, fmt.Errorf("capture file %s failed schema validation: %w", path, err)
		}
		logging.For(logging.ComponentSchema).Debugw("capture document matches schema", "path", path)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding capture file %s: %w", path, err)
	}
	log.Infow("decoded capture", "path", path, "hobs", len(snap.HobList), "fvs", len(snap.FvList))

	return &snap, nil
}
