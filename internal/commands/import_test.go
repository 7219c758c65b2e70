package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleboard/saleboard/internal/runlog"
)

func TestImport(t *testing.T) {
	dir := t.TempDir()
	_, err := runSaleboard(t, "init", dir)
	require.NoError(t, err)
	copyFixture(t, filepath.Join(dir, "import"), "june.csv", nil)

	out, err := runSaleboard(t, "import", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported june.csv: 6 of 6 rows")

	_, err = os.Stat(filepath.Join(dir, "exports", "june.csv"))
	assert.NoError(t, err, "export should exist")
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "june.csv"))
	assert.NoError(t, err, "sheet should be moved to processed")
	_, err = os.Stat(filepath.Join(dir, "import", "june.csv"))
	assert.True(t, os.IsNotExist(err))

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "june.csv", entries[0].File)
	assert.Equal(t, 6, entries[0].Mapped)
	assert.Equal(t, 0, entries[0].Failed)
	assert.Equal(t, "exports/june.csv", entries[0].Output)
}

func TestImport_Empty(t *testing.T) {
	dir := t.TempDir()
	_, err := runSaleboard(t, "init", dir)
	require.NoError(t, err)

	out, err := runSaleboard(t, "import", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No sheets to import")
}

func TestImport_BadSheetStays(t *testing.T) {
	dir := t.TempDir()
	_, err := runSaleboard(t, "init", dir)
	require.NoError(t, err)
	copyFixture(t, filepath.Join(dir, "import"), "a.csv", nil)
	copyFixture(t, filepath.Join(dir, "import"), "b.csv", func(s string) string {
		return strings.Replace(s, "Item Desc", "Item", 1)
	})

	out, err := runSaleboard(t, "import", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, out, "1 of 2 sheets could not be imported")

	_, err = os.Stat(filepath.Join(dir, "import", "b.csv"))
	assert.NoError(t, err, "failed sheet stays in import/")

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.csv", entries[0].File)
}

func TestImport_UsesRepoConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := runSaleboard(t, "init", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saleboard.yaml"), []byte("derive:\n  month_format: padded\n"), 0o644))
	copyFixture(t, filepath.Join(dir, "import"), "june.csv", nil)

	out, err := runSaleboard(t, "import", "--repo", dir)
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, "exports", "june.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ",2025–2026,07\n")
}
