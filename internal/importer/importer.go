package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saleboard/saleboard/internal/model"
)

// Table is a worksheet read into typed cells. Every row has len(Header)
// cells, except blank lines which are kept as nil.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]model.Value
	// Lines holds the 1-based sheet line of each row, when known.
	Lines []int
}

// Line returns the sheet line of Rows[i]. Without Lines, rows are assumed
// to follow the header with no gaps.
func (t *Table) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Reader converts a spreadsheet file into a Table.
type Reader interface {
	Read(r io.Reader) (*Table, error)
	Format() string
}

// Registry holds readers by format name.
type Registry struct {
	readers map[string]Reader
}

// FileInfo describes a spreadsheet in the import directory.
type FileInfo struct {
	Name   string
	Path   string
	Format string
	Size   int64
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// ForFile returns the reader matching a file's extension, or nil.
func (r *Registry) ForFile(name string) Reader {
	return r.Get(FormatOf(name))
}

// DefaultRegistry returns a registry with the xlsx and csv readers. The
// workbook reader reads sheet, and date text is parsed with layouts.
func DefaultRegistry(sheet string, layouts []string) *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{Sheet: sheet, DateLayouts: layouts})
	r.Register(&CSVReader{DateLayouts: layouts})
	return r
}

// FormatOf returns the format name implied by a file extension.
func FormatOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// ReadFile opens path and reads it with the reader for its extension.
func ReadFile(reg *Registry, path string) (*Table, error) {
	rd := reg.ForFile(path)
	if rd == nil {
		return nil, fmt.Errorf("no reader for %s", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// ImportDir is the subdirectory scanned for spreadsheets.
const ImportDir = "import"

// ProcessedDir is the subdirectory processed spreadsheets are moved to.
const ProcessedDir = "import/processed"

var scanFormats = map[string]bool{"xlsx": true, "csv": true}

// Scan returns spreadsheets in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format := FormatOf(e.Name())
		if !scanFormats[format] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Format: format,
			Size:   info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, ImportDir, fileName)
	dstDir := filepath.Join(repoRoot, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
