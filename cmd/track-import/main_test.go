package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/herd.report/internal/trackdb"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "a", firstNonEmpty("a"))
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sim.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"Zebra_1": {"gps coordinates": [[0, 0], [1, 1]], "timestamp": [0, 1], "sound levels": [1, 2]},
		"Lion_1": {"gps coordinates": [[5, 5]], "timestamp": [0]}
	}`), 0o644))
	dbFile := filepath.Join(dir, "tracks.db")

	var out bytes.Buffer
	require.NoError(t, importFile(context.Background(), &out, in, dbFile))
	assert.Contains(t, out.String(), "2 entities, 3 position samples")

	db, err := trackdb.Open(dbFile)
	require.NoError(t, err)
	defer db.Close()

	ds, err := db.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zebra_1", "Lion_1"}, ds.IDs())
	assert.Equal(t, []float64{1, 2}, ds.Track("Zebra_1").SoundLevels)
}

func TestImportFileRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"Zebra_1": {"gps coordinates": [[0, "x"]], "timestamp": [0]}}`), 0o644))
	dbFile := filepath.Join(dir, "tracks.db")

	var out bytes.Buffer
	assert.Error(t, importFile(context.Background(), &out, in, dbFile))
	assert.Empty(t, out.String())

	_, err := os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err), "archive should not be created for bad input")
}
