package archeion

import (
	"context"
	"time"
)

// Plugin names of the artifacts produced from a captured DOM.
const (
	PluginHTMLMetadata = "html_metadata"
	PluginMarkdown     = "markdown"
)

// ArtifactStatus is the state of one capture or post-processing output.
type ArtifactStatus string

// ArtifactStatus constants.
const (
	ArtifactPending   ArtifactStatus = "pending"
	ArtifactSucceeded ArtifactStatus = "succeeded"
	ArtifactFailed    ArtifactStatus = "failed"
)

// Artifact records one stored output for a link.
type Artifact struct {
	ID          string         `json:"id"`
	LinkID      string         `json:"linkId"`
	PluginName  string         `json:"pluginName"`
	OutputPath  string         `json:"outputPath"`
	Status      ArtifactStatus `json:"status"`
	ContentHash string         `json:"contentHash"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Validate returns an error if the artifact contains invalid fields.
func (a *Artifact) Validate() error {
	if a.LinkID == "" {
		return Errorf(EINVALID, "artifact link ID required")
	}
	if a.PluginName == "" {
		return Errorf(EINVALID, "artifact plugin name required")
	}
	switch a.Status {
	case ArtifactPending, ArtifactSucceeded, ArtifactFailed:
	default:
		return Errorf(EINVALID, "invalid artifact status %q", a.Status)
	}
	return nil
}

// ArtifactService represents a service for managing artifact records.
type ArtifactService interface {
	// UpsertArtifact creates the artifact or replaces the existing one with
	// the same link ID and plugin name.
	UpsertArtifact(ctx context.Context, artifact *Artifact) error

	// FindArtifacts retrieves artifacts matching the filter.
	FindArtifacts(ctx context.Context, filter ArtifactFilter) ([]*Artifact, error)
}

// ArtifactFilter represents a filter for FindArtifacts.
type ArtifactFilter struct {
	LinkID     *string `json:"linkId"`
	PluginName *string `json:"pluginName"`
}

// ArtifactWriter stores artifact content for a link.
type ArtifactWriter interface {
	// WriteArtifact stores content under name in the link's archive
	// directory and returns the path it was written to.
	WriteArtifact(ctx context.Context, linkID, name string, content []byte) (string, error)
}
