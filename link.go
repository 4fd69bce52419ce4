package archeion

import (
	"context"
	"time"
)

// Link represents an archived URL.
type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	LDType    string    `json:"ldType"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the link contains invalid fields.
func (l *Link) Validate() error {
	if l.URL == "" {
		return Errorf(EINVALID, "link URL required")
	}
	return nil
}

// ApplyMetadata records md on the link. Keywords are merged into the tags.
// Title and LDType are only filled in when they are currently empty, so a
// title the user set is never overwritten by extracted metadata.
func (l *Link) ApplyMetadata(md *Metadata) {
	if md == nil {
		return
	}

	tags := NewKeywordSet(l.Tags...).Union(md.Keywords)
	l.Tags = tags.Sorted()

	if l.Title == "" {
		l.Title = md.Headline
	}
	if l.LDType == "" {
		l.LDType = md.Type
	}
	l.Metadata = md
}

// LinkService represents a service for managing links.
type LinkService interface {
	// CreateLink creates a new link.
	// Returns ECONFLICT if a link with the same URL already exists.
	CreateLink(ctx context.Context, link *Link) error

	// FindLinkByID retrieves a link by ID.
	// Returns ENOTFOUND if link does not exist.
	FindLinkByID(ctx context.Context, id string) (*Link, error)

	// FindLinks retrieves links matching the filter.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*Link, error)

	// UpdateLink updates an existing link.
	// Returns ENOTFOUND if link does not exist.
	UpdateLink(ctx context.Context, id string, upd LinkUpdate) (*Link, error)

	// DeleteLink permanently removes a link and its artifacts.
	// Returns ENOTFOUND if link does not exist.
	DeleteLink(ctx context.Context, id string) error
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`
	Tag *string `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LinkUpdate represents fields that can be updated on a link.
// A non-nil Tags replaces the whole tag list.
type LinkUpdate struct {
	Title    *string   `json:"title"`
	LDType   *string   `json:"ldType"`
	Metadata *Metadata `json:"metadata"`
	Tags     *[]string `json:"tags"`
}

// SortTags returns tags deduplicated and sorted.
func SortTags(tags []string) []string {
	return NewKeywordSet(tags...).Sorted()
}
