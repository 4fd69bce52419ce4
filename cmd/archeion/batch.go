package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/archeion"
	"golang.org/x/sync/errgroup"
)

// BatchLine is one line of batch output.
type BatchLine struct {
	File     string             `json:"file"`
	Metadata *archeion.Metadata `json:"metadata,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Run executes the batch command. Files are processed concurrently and
// reported in input order.
func (c *BatchCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	lines := make([]BatchLine, len(c.Files))

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, file := range c.Files {
		g.Go(func() error {
			lines[i].File = file
			html, err := readHTML(file, deps.Stdin)
			if err != nil {
				lines[i].Error = err.Error()
				return nil
			}
			md, err := deps.Metadata.ExtractMetadata(gctx, html, "")
			if err != nil {
				return err
			}
			lines[i].Metadata = md
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for _, line := range lines {
		if line.Error != "" {
			failed++
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "%d of %d files could not be read\n", failed, len(lines))
	}
	return nil
}
