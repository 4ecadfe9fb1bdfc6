package types

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeGUID returns the canonical lowercase hyphenated form of a GUID
// string. Input that does not parse as a GUID comes back unchanged, so
// non-GUID file names still compare verbatim.
func NormalizeGUID(s string) string {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return id.String()
}
