package mock

import (
	"context"

	"github.com/fwojciec/archeion"
)

var _ archeion.ArtifactService = (*ArtifactService)(nil)

// ArtifactService is a mock implementation of archeion.ArtifactService.
type ArtifactService struct {
	UpsertArtifactFn func(ctx context.Context, artifact *archeion.Artifact) error
	FindArtifactsFn  func(ctx context.Context, filter archeion.ArtifactFilter) ([]*archeion.Artifact, error)
}

func (s *ArtifactService) UpsertArtifact(ctx context.Context, artifact *archeion.Artifact) error {
	return s.UpsertArtifactFn(ctx, artifact)
}

func (s *ArtifactService) FindArtifacts(ctx context.Context, filter archeion.ArtifactFilter) ([]*archeion.Artifact, error) {
	return s.FindArtifactsFn(ctx, filter)
}
