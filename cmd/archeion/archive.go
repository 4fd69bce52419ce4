package main

import (
	"fmt"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/archive"
)

// Run executes the archive command.
func (c *ArchiveCmd) Run(deps *Dependencies) error {
	if c.Concurrency > 0 {
		deps.Archiver.Concurrency = c.Concurrency
	}

	progress := func(event archive.ProgressEvent) {
		switch event.Type {
		case archive.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, archive.TruncateURL(event.URL, 70))
		case archive.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	urls, err := c.urls(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	result, err := deps.Archiver.ArchiveAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error archiving: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Archived %d links (%d failed)\n", result.Archived, result.Failed)
	if result.Archived == 0 && result.Failed > 0 {
		return fmt.Errorf("all %d URLs failed", result.Failed)
	}
	return nil
}

// urls returns the URL arguments followed by the links read from --from.
func (c *ArchiveCmd) urls(deps *Dependencies) ([]string, error) {
	urls := c.URLs
	if c.From != "" {
		input, err := readHTML(c.From, deps.Stdin)
		if err != nil {
			return nil, err
		}
		links, err := deps.Parser.ParseLinks(input, c.Base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.From, err)
		}
		urls = append(urls[:len(urls):len(urls)], links...)
	}
	if len(urls) == 0 {
		return nil, archeion.Errorf(archeion.EINVALID, "no URLs to archive")
	}
	return urls, nil
}
