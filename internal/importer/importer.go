package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/cashflow/internal/model"
)

// Parser converts a statement export into RawTransactions, preserving input order.
type Parser interface {
	Parse(r io.Reader) ([]model.RawTransaction, error)
	Format() string
	Extensions() []string
}

// Registry holds named parsers and the file extensions they claim.
type Registry struct {
	parsers map[string]Parser
	byExt   map[string]Parser
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
		byExt:   make(map[string]Parser),
	}
}

// Register adds a parser. Panics on duplicate format or extension.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	for _, ext := range p.Extensions() {
		ext = strings.ToLower(ext)
		if _, ok := r.byExt[ext]; ok {
			panic("duplicate parser extension: " + ext)
		}
		r.byExt[ext] = p
	}
}

// ForFile returns the parser claiming the file's extension, or nil.
func (r *Registry) ForFile(name string) Parser {
	return r.byExt[strings.ToLower(filepath.Ext(name))]
}

// Supports reports whether some parser claims the file's extension.
func (r *Registry) Supports(name string) bool {
	return r.ForFile(name) != nil
}

// DefaultRegistry returns a registry with the tabular and document parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TabularParser{})
	r.Register(&DocumentParser{})
	return r
}

// ParseFile picks a parser by extension and parses r. Named errors carry the file name.
func (r *Registry) ParseFile(name string, rd io.Reader) ([]model.RawTransaction, Parser, error) {
	p := r.ForFile(name)
	if p == nil {
		return nil, nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	txns, err := p.Parse(rd)
	if err != nil {
		return nil, p, withFile(err, name)
	}
	return txns, p, nil
}

// importDir is the subdirectory for statement files.
const importDir = "import"

// processedDir is the subdirectory for processed statement files.
const processedDir = "import/processed"

// Scan returns files in <repoRoot>/import/ that some parser in reg supports.
func Scan(repoRoot string, reg *Registry) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
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
		if !reg.Supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
