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
var _ archeion.LinkService = (*LinkService)(nil)

// LinkService implements archeion.LinkService using SQLite.
type LinkService struct {
	db *DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB) *LinkService {
	return &LinkService{db: db}
}

const linkColumns = "id, url, title, ld_type, metadata, created_at, updated_at"

// CreateLink creates a new link.
func (s *LinkService) CreateLink(ctx context.Context, link *archeion.Link) error {
	if err := link.Validate(); err != nil {
		return err
	}

	metadata, err := encodeMetadata(link.Metadata)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO links (id, url, title, ld_type, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`, id, link.URL, link.Title, link.LDType, metadata, formatTime(now), formatTime(now))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return archeion.Errorf(archeion.ECONFLICT, "link already exists: %s", link.URL)
	}

	tags := archeion.SortTags(link.Tags)
	if err := replaceTags(ctx, tx, id, tags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	link.ID = id
	link.Tags = tags
	link.CreatedAt = now
	link.UpdatedAt = now
	return nil
}

// FindLinkByID retrieves a link by ID.
func (s *LinkService) FindLinkByID(ctx context.Context, id string) (*archeion.Link, error) {
	links, err := s.FindLinks(ctx, archeion.LinkFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, archeion.Errorf(archeion.ENOTFOUND, "link not found")
	}
	return links[0], nil
}

// FindLinks retrieves links matching the filter, newest first.
func (s *LinkService) FindLinks(ctx context.Context, filter archeion.LinkFilter) ([]*archeion.Link, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + linkColumns + " FROM links WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Tag != nil {
		query.WriteString(" AND id IN (SELECT link_id FROM link_tags WHERE tag = ?)")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	links, err := s.queryLinks(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	// Tags are loaded once the link rows are closed; the pool holds a
	// single connection.
	for _, link := range links {
		if link.Tags, err = s.findTags(ctx, link.ID); err != nil {
			return nil, err
		}
	}
	return links, nil
}

func (s *LinkService) queryLinks(ctx context.Context, query string, args ...any) ([]*archeion.Link, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*archeion.Link
	for rows.Next() {
		var link archeion.Link
		var metadata, createdAt, updatedAt string

		if err := rows.Scan(&link.ID, &link.URL, &link.Title, &link.LDType, &metadata,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if link.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, err
		}
		if link.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if link.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		links = append(links, &link)
	}

	return links, rows.Err()
}

func (s *LinkService) findTags(ctx context.Context, linkID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tag FROM link_tags WHERE link_id = ? ORDER BY tag", linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// UpdateLink updates an existing link.
func (s *LinkService) UpdateLink(ctx context.Context, id string, upd archeion.LinkUpdate) (*archeion.Link, error) {
	link, err := s.FindLinkByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		link.Title = *upd.Title
	}
	if upd.LDType != nil {
		link.LDType = *upd.LDType
	}
	if upd.Metadata != nil {
		link.Metadata = upd.Metadata
	}
	if upd.Tags != nil {
		link.Tags = archeion.SortTags(*upd.Tags)
	}

	if err := link.Validate(); err != nil {
		return nil, err
	}

	metadata, err := encodeMetadata(link.Metadata)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	link.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		UPDATE links
		SET title = ?, ld_type = ?, metadata = ?, updated_at = ?
		WHERE id = ?
	`, link.Title, link.LDType, metadata, formatTime(link.UpdatedAt), id); err != nil {
		return nil, err
	}

	if upd.Tags != nil {
		if err := replaceTags(ctx, tx, id, link.Tags); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink permanently removes a link. Its tags and artifact records are
// removed with it.
func (s *LinkService) DeleteLink(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM links WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return archeion.Errorf(archeion.ENOTFOUND, "link not found")
	}

	return nil
}

func replaceTags(ctx context.Context, tx *sql.Tx, linkID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM link_tags WHERE link_id = ?", linkID); err != nil {
		return err
	}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, "INSERT INTO link_tags (link_id, tag) VALUES (?, ?)", linkID, tag); err != nil {
			return err
		}
	}
	return nil
}
