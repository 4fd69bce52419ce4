package mock

import (
	"context"

	"github.com/fwojciec/archeion"
)

var _ archeion.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of archeion.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, linkID, name string, content []byte) (string, error)
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, linkID, name string, content []byte) (string, error) {
	return w.WriteArtifactFn(ctx, linkID, name, content)
}
