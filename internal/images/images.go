// Package images stores uploaded photos on disk and hands opaque stored
// filenames back to the service layer. The service never interprets the
// file contents, only associates names with entries.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store is the collaborator the entry service delegates image
// persistence to.
type Store interface {
	// Save writes one upload and returns its stored filename.
	Save(originalName string, r io.Reader) (string, error)

	// Remove deletes a stored file. Removing a file that is already
	// gone is not an error.
	Remove(name string) error
}

// Dir is a Store writing into a single flat directory. Stored names
// follow <unix-ms>-<original-name> so they sort by upload time and
// re-uploads of the same file get distinct names.
type Dir struct {
	root string
	now  func() time.Time
}

// NewDir creates the upload directory if needed and returns a Dir over it.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Dir{root: root, now: time.Now}, nil
}

// Root returns the directory uploads are written to.
func (d *Dir) Root() string { return d.root }

// Save writes the upload to disk and returns the stored filename.
func (d *Dir) Save(originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", d.now().UnixMilli(), sanitize(originalName))

	f, err := os.Create(filepath.Join(d.root, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// Remove deletes a stored file, treating the name as a bare filename so
// a stored reference can never reach outside the upload directory.
func (d *Dir) Remove(name string) error {
	err := os.Remove(filepath.Join(d.root, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// sanitize strips path components from a client-supplied filename and
// collapses characters that are awkward in URLs.
func sanitize(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "" || name == string(filepath.Separator) {
		return "upload"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
