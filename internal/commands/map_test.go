package commands_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMap_CSV(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)

	out, err := runSaleboard(t, "map", in)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Mapped 6 of 6 rows")

	f, err := os.Open(filepath.Join(dir, "sales-mapped.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "Month", records[0][14])
	assert.Equal(t, "00123", records[1][4])
	assert.Equal(t, "85", records[1][11])
}

func TestMap_Workbook(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)
	outPath := filepath.Join(dir, "out", "dashboard.xlsx")

	out, err := runSaleboard(t, "map", in, "--out", outPath)
	require.NoError(t, err, out)

	wb, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Mapped", "Platforms", "Products"}, wb.GetSheetList())
}

func TestMap_RowErrorsExitNonZero(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", func(s string) string {
		return strings.Replace(s, ",4,4,0,40,0,40,", ",4,four,0,40,0,40,", 1)
	})

	out, err := runSaleboard(t, "map", in)
	require.Error(t, err)
	assert.Contains(t, out, "Mapped 5 of 6 rows")
	assert.Contains(t, out, "row 3 (VchNo S-1002)")
	assert.Contains(t, out, "1 of 6 rows failed")

	// Good rows are still written.
	data, err := os.ReadFile(filepath.Join(dir, "sales-mapped.csv"))
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(data), "\n"))
}

func TestMap_HeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", func(s string) string {
		return strings.Replace(s, "Main Parties", "Platform", 1)
	})

	out, err := runSaleboard(t, "map", in)
	require.Error(t, err)
	assert.Contains(t, out, `missing columns: "Main Parties"`)
}

func TestMap_ConfigBlankReject(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)
	cfg := filepath.Join(dir, "strict.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("derive:\n  blank_numbers: reject\n"), 0o644))

	out, err := runSaleboard(t, "map", in, "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, out, "VchNo S-1004")
	assert.Contains(t, out, "is blank, expected a number")
}

func TestMap_MonthName(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)
	cfg := filepath.Join(dir, "names.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("derive:\n  month_format: name\n"), 0o644))

	out, err := runSaleboard(t, "map", in, "--config", cfg)
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, "sales-mapped.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ",2025–2026,July\n")
}

func TestMap_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)

	out, err := runSaleboard(t, "map", in, "--format", "ods")
	require.Error(t, err)
	assert.Contains(t, out, "unknown output format")
}

func TestMap_JSONLogs(t *testing.T) {
	dir := t.TempDir()
	in := copyFixture(t, dir, "sales.csv", nil)

	out, err := runSaleboard(t, "map", in, "--log-format", "json")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"message":"sheet mapped"`)
	assert.Contains(t, out, `"mapped":6`)
}
