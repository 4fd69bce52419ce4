// Package fs provides file-based storage for link artifacts.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/archeion"
)

// Ensure Writer implements archeion.ArtifactWriter at compile time.
var _ archeion.ArtifactWriter = (*Writer)(nil)

// Writer writes artifacts to one directory per link under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the path an artifact is stored at.
func (w *Writer) Path(linkID, name string) string {
	return filepath.Join(w.baseDir, linkID, name)
}

// WriteArtifact writes content to baseDir/linkID/name. The file is written
// to a temporary file first and renamed into place, so readers never see a
// partial artifact. Returns EINVALID if linkID or name is not a plain
// file name.
func (w *Writer) WriteArtifact(ctx context.Context, linkID, name string, content []byte) (string, error) {
	if err := validName(linkID); err != nil {
		return "", archeion.Errorf(archeion.EINVALID, "invalid link ID %q", linkID)
	}
	if err := validName(name); err != nil {
		return "", archeion.Errorf(archeion.EINVALID, "invalid artifact name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := w.Path(linkID, name)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return os.ErrInvalid
	}
	return nil
}
