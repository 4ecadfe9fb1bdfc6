package types

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the full decoded capture: the HOB list handed to the DXE core
// and the firmware volume contents discovered alongside it.
type Snapshot struct {
	HobList []Hob
	FvList  []FirmwareVolume
}

// UnmarshalJSON decodes the capture document, dispatching each hob_list
// element through DecodeHob so the tagged union lands on concrete types.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		HobList []json.RawMessage `json:"hob_list"`
		FvList  []FirmwareVolume  `json:"fv_list"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	hobs := make([]Hob, 0, len(raw.HobList))
	for i, msg := range raw.HobList {
		hob, err := DecodeHob(msg)
		if err != nil {
			return fmt.Errorf("hob_list[%d]: %w", i, err)
		}
		hobs = append(hobs, hob)
	}

	s.HobList = hobs
	s.FvList = raw.FvList
	return nil
}
