package mock

import (
	"context"

	"github.com/fwojciec/archeion"
)

var _ archeion.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of archeion.LinkService.
type LinkService struct {
	CreateLinkFn   func(ctx context.Context, link *archeion.Link) error
	FindLinkByIDFn func(ctx context.Context, id string) (*archeion.Link, error)
	FindLinksFn    func(ctx context.Context, filter archeion.LinkFilter) ([]*archeion.Link, error)
	UpdateLinkFn   func(ctx context.Context, id string, upd archeion.LinkUpdate) (*archeion.Link, error)
	DeleteLinkFn   func(ctx context.Context, id string) error
}

func (s *LinkService) CreateLink(ctx context.Context, link *archeion.Link) error {
	return s.CreateLinkFn(ctx, link)
}

func (s *LinkService) FindLinkByID(ctx context.Context, id string) (*archeion.Link, error) {
	return s.FindLinkByIDFn(ctx, id)
}

func (s *LinkService) FindLinks(ctx context.Context, filter archeion.LinkFilter) ([]*archeion.Link, error) {
	return s.FindLinksFn(ctx, filter)
}

func (s *LinkService) UpdateLink(ctx context.Context, id string, upd archeion.LinkUpdate) (*archeion.Link, error) {
	return s.UpdateLinkFn(ctx, id, upd)
}

func (s *LinkService) DeleteLink(ctx context.Context, id string) error {
	return s.DeleteLinkFn(ctx, id)
}
