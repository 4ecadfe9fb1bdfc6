package services

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

func TestLoadSnapshotCleanCapture(t *testing.T) {
	snap, err := LoadSnapshot("testdata/clean_capture.json", true)
	require.NoError(t, err)

	assert.Len(t, snap.HobList, 8)
	require.Len(t, snap.FvList, 1)
	assert.Equal(t, "FVMAIN_COMPACT", snap.FvList[0].Name)
	assert.Len(t, snap.FvList[0].Files, 3)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot("testdata/does_not_exist.json", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadSnapshotMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hob_list": [`), 0o644))

	_, err := LoadSnapshot(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding capture file")
}

func TestLoadSnapshotSchemaEnforcement(t *testing.T) {
	// Schema checking rejects a descriptor without an owner.
	_, err := LoadSnapshot("testdata/missing_owner.json", true)
	require.Error(t, err)

	var schemaErrs SchemaErrors
	require.ErrorAs(t, err, &schemaErrs)
	require.NotEmpty(t, schemaErrs)
	for _, se := range schemaErrs {
		assert.True(t, strings.HasPrefix(se.Path, "hob_list/0"), "unexpected error path %q", se.Path)
	}

	// With checking off the same capture decodes; the owner defaults empty.
	snap, err := LoadSnapshot("testdata/missing_owner.json", false)
	require.NoError(t, err)
	require.Len(t, snap.HobList, 1)
	desc, ok := snap.HobList[0].(*types.ResourceDescriptorHob)
	require.True(t, ok)
	assert.Empty(t, desc.Owner)
}
