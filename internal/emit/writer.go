package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbsmedya/nlplaces/internal/reconcile"
)

// Writer writes one artifact per municipality under root/<province>/<municipality>/.
type Writer struct {
	root     string
	artifact string
	country  string
}

// NewWriter creates a Writer. artifact is the fixed file name inside each
// municipality directory; country is the last part of every entry.
func NewWriter(root, artifact, country string) (*Writer, error) {
	if root == "" {
		return nil, fmt.Errorf("output root is empty")
	}
	if artifact == "" {
		return nil, fmt.Errorf("artifact name is empty")
	}
	return &Writer{root: root, artifact: artifact, country: country}, nil
}

// Root returns the destination root.
func (w *Writer) Root() string {
	return w.root
}

// Reset removes the destination root and creates it again empty.
func (w *Writer) Reset() error {
	return Reset(w.root)
}

// Reset removes dir with everything below it and recreates it.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// Path returns the artifact path for an entity.
func (w *Writer) Path(e reconcile.Entity) string {
	return filepath.Join(w.root, Slugify(e.Region), Slugify(e.Name), w.artifact)
}

// Entries formats the location entries of an entity.
func (w *Writer) Entries(e reconcile.Entity) []string {
	entries := make([]string, len(e.Children))
	for i, child := range e.Children {
		entries[i] = FormatLocation(child, e.Name, e.Region, w.country)
	}
	return entries
}

// WriteEntity writes the artifact for e and returns its path. Entities without
// children are skipped and return "".
func (w *Writer) WriteEntity(e reconcile.Entity) (string, error) {
	if len(e.Children) == 0 {
		return "", nil
	}

	path := w.Path(e)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", e.Name, err)
	}
	if err := WriteFile(path, w.Entries(e)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile renders entries and writes them to path.
func WriteFile(path string, entries []string) error {
	if err := os.WriteFile(path, Render(entries), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
