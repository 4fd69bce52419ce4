// Package archive coordinates capturing pages and post-processing the
// captured DOM into link metadata and stored artifacts.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/archeion"
	"golang.org/x/sync/errgroup"
)

// Artifact file names within a link's archive directory.
const (
	MetadataFile = "html_metadata.json"
	MarkdownFile = "dom.md"
)

// DefaultConcurrency is the number of URLs archived at once by ArchiveAll.
const DefaultConcurrency = 4

// Archiver captures URLs and turns the captured DOM into canonical
// metadata, a markdown rendition and the matching artifact records.
type Archiver struct {
	Fetcher   archeion.Fetcher
	Metadata  archeion.MetadataService
	Converter archeion.Converter
	Links     archeion.LinkService
	Artifacts archeion.ArtifactService
	Writer    archeion.ArtifactWriter

	// Content narrows the DOM to its main content before conversion. The
	// whole DOM is converted when it is nil or finds no content.
	Content archeion.ContentExtractor

	// Overwrite regenerates artifacts that already succeeded.
	Overwrite bool

	Concurrency int
	Logger      *slog.Logger

	// Now returns the archive time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of an ArchiveAll operation.
type Result struct {
	Archived int
	Failed   int
}

// ProgressEvent reports progress during ArchiveAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting archive progress.
type ProgressFunc func(event ProgressEvent)

// Archive fetches url, records it as a link if it is not known yet and
// processes the captured DOM.
func (a *Archiver) Archive(ctx context.Context, url string) (*archeion.Link, error) {
	html, err := a.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	link, err := a.findOrCreateLink(ctx, url)
	if err != nil {
		return nil, err
	}

	return a.ProcessDOM(ctx, link, html)
}

// ArchiveAll archives urls concurrently. A failed URL is reported through
// progress and counted; it does not stop the others. An error is returned
// only when ctx is done.
func (a *Archiver) ArchiveAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type outcome struct {
		url string
		err error
	}
	outcomes := make(chan outcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, url := range urls {
			g.Go(func() error {
				_, err := a.Archive(gctx, url)
				outcomes <- outcome{url: url, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	var result Result
	var completed atomic.Int64
	for o := range outcomes {
		n := int(completed.Add(1))
		if o.err != nil {
			result.Failed++
			a.logger().Warn("archive failed", "url", o.url, "error", o.err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: o.url, Error: o.err})
			}
			continue
		}
		result.Archived++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: o.url})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// ProcessDOM runs the post-processors over a captured DOM: the canonical
// metadata is applied to the link and saved as html_metadata.json, and the
// markdown rendition is saved as dom.md. A post-processor that already
// succeeded is skipped unless Overwrite is set. A post-processor failure is
// recorded as a failed artifact; errors are returned for storage failures.
func (a *Archiver) ProcessDOM(ctx context.Context, link *archeion.Link, html string) (*archeion.Link, error) {
	runMetadata, err := a.shouldRun(ctx, link.ID, archeion.PluginHTMLMetadata)
	if err != nil {
		return nil, err
	}
	if runMetadata {
		link, err = a.processMetadata(ctx, link, html)
		if err != nil {
			return nil, err
		}
	}

	if a.Converter == nil {
		return link, nil
	}
	runMarkdown, err := a.shouldRun(ctx, link.ID, archeion.PluginMarkdown)
	if err != nil {
		return nil, err
	}
	if runMarkdown {
		if err := a.processMarkdown(ctx, link, html); err != nil {
			return nil, err
		}
	}
	return link, nil
}

func (a *Archiver) processMetadata(ctx context.Context, link *archeion.Link, html string) (*archeion.Link, error) {
	md, err := a.Metadata.ExtractMetadata(ctx, html, link.URL)
	if err != nil {
		return nil, err
	}

	content, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		err = a.recordFailure(ctx, link.ID, archeion.PluginHTMLMetadata, err)
	} else {
		err = a.store(ctx, link.ID, archeion.PluginHTMLMetadata, MetadataFile, content)
	}
	if err != nil {
		return nil, err
	}

	link.ApplyMetadata(md)
	return a.Links.UpdateLink(ctx, link.ID, archeion.LinkUpdate{
		Title:    &link.Title,
		LDType:   &link.LDType,
		Metadata: link.Metadata,
		Tags:     &link.Tags,
	})
}

func (a *Archiver) processMarkdown(ctx context.Context, link *archeion.Link, html string) error {
	source := html
	if a.Content != nil {
		content, err := a.Content.ExtractContent(html, link.URL)
		if err != nil {
			return a.recordFailure(ctx, link.ID, archeion.PluginMarkdown, err)
		}
		if strings.TrimSpace(content.ContentHTML) != "" {
			source = content.ContentHTML
		}
	}

	markdown, err := a.Converter.Convert(source, link.URL)
	if err != nil {
		return a.recordFailure(ctx, link.ID, archeion.PluginMarkdown, err)
	}
	content := FormatMarkdown(link, markdown, a.now())
	return a.store(ctx, link.ID, archeion.PluginMarkdown, MarkdownFile, []byte(content))
}

// store writes content and records the artifact. A write failure is
// recorded as a failed artifact and is not returned.
func (a *Archiver) store(ctx context.Context, linkID, plugin, name string, content []byte) error {
	path, err := a.Writer.WriteArtifact(ctx, linkID, name, content)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return a.recordFailure(ctx, linkID, plugin, err)
	}

	return a.Artifacts.UpsertArtifact(ctx, &archeion.Artifact{
		LinkID:      linkID,
		PluginName:  plugin,
		OutputPath:  path,
		Status:      archeion.ArtifactSucceeded,
		ContentHash: ComputeHash(content),
	})
}

func (a *Archiver) recordFailure(ctx context.Context, linkID, plugin string, cause error) error {
	a.logger().Warn("post-processing failed", "link", linkID, "plugin", plugin, "error", cause)
	return a.Artifacts.UpsertArtifact(ctx, &archeion.Artifact{
		LinkID:     linkID,
		PluginName: plugin,
		Status:     archeion.ArtifactFailed,
	})
}

// shouldRun reports whether plugin must run for the link.
func (a *Archiver) shouldRun(ctx context.Context, linkID, plugin string) (bool, error) {
	if a.Overwrite {
		return true, nil
	}
	artifacts, err := a.Artifacts.FindArtifacts(ctx, archeion.ArtifactFilter{
		LinkID:     &linkID,
		PluginName: &plugin,
	})
	if err != nil {
		return false, err
	}
	for _, artifact := range artifacts {
		if artifact.Status == archeion.ArtifactSucceeded {
			return false, nil
		}
	}
	return true, nil
}

func (a *Archiver) findOrCreateLink(ctx context.Context, url string) (*archeion.Link, error) {
	if link, err := a.findLinkByURL(ctx, url); err != nil || link != nil {
		return link, err
	}

	link := &archeion.Link{URL: url}
	err := a.Links.CreateLink(ctx, link)
	if archeion.ErrorCode(err) == archeion.ECONFLICT {
		// Created concurrently by another worker.
		return a.findLinkByURL(ctx, url)
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (a *Archiver) findLinkByURL(ctx context.Context, url string) (*archeion.Link, error) {
	links, err := a.Links.FindLinks(ctx, archeion.LinkFilter{URL: &url, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

func (a *Archiver) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Archiver) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
