package mock

import (
	"context"

	"github.com/fwojciec/archeion"
)

var _ archeion.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of archeion.Fetcher. It stands in for
// the page capture that feeds the archiver.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close calls CloseFn, or reports success when it is not set.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
