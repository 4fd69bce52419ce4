package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/archeion"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ archeion.ArtifactService = (*ArtifactService)(nil)

// ArtifactService implements archeion.ArtifactService using SQLite.
type ArtifactService struct {
	db *DB
}

// NewArtifactService creates a new ArtifactService.
func NewArtifactService(db *DB) *ArtifactService {
	return &ArtifactService{db: db}
}

// UpsertArtifact creates or replaces the artifact for its link and plugin.
// Returns ENOTFOUND if the link does not exist.
func (s *ArtifactService) UpsertArtifact(ctx context.Context, artifact *archeion.Artifact) error {
	if err := artifact.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM links WHERE id = ?", artifact.LinkID).Scan(&exists)
	if err == sql.ErrNoRows {
		return archeion.Errorf(archeion.ENOTFOUND, "link not found")
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	var id, createdAt string

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO artifacts (id, link_id, plugin_name, output_path, status, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (link_id, plugin_name) DO UPDATE SET
			output_path = excluded.output_path,
			status = excluded.status,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, uuid.New().String(), artifact.LinkID, artifact.PluginName, artifact.OutputPath,
		string(artifact.Status), artifact.ContentHash, formatTime(now), formatTime(now)).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	artifact.ID = id
	if artifact.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return err
	}
	artifact.UpdatedAt = now
	return nil
}

// FindArtifacts retrieves artifacts matching the filter.
func (s *ArtifactService) FindArtifacts(ctx context.Context, filter archeion.ArtifactFilter) ([]*archeion.Artifact, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, link_id, plugin_name, output_path, status, content_hash, created_at, updated_at FROM artifacts WHERE 1=1")

	if filter.LinkID != nil {
		query.WriteString(" AND link_id = ?")
		args = append(args, *filter.LinkID)
	}
	if filter.PluginName != nil {
		query.WriteString(" AND plugin_name = ?")
		args = append(args, *filter.PluginName)
	}

	query.WriteString(" ORDER BY link_id, plugin_name")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []*archeion.Artifact
	for rows.Next() {
		var a archeion.Artifact
		var status, createdAt, updatedAt string

		if err := rows.Scan(&a.ID, &a.LinkID, &a.PluginName, &a.OutputPath, &status,
			&a.ContentHash, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		a.Status = archeion.ArtifactStatus(status)

		if a.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		artifacts = append(artifacts, &a)
	}

	return artifacts, rows.Err()
}
