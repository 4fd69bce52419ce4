package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/archive"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor archeion.MetadataExtractor
	Parser    archeion.LinkParser
	Metadata  archeion.MetadataService
	Links     archeion.LinkService
	Artifacts archeion.ArtifactService
	Archiver  *archive.Archiver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB         string `help:"Database path (overrides config and ARCHEION_DB)"`
	ArchiveDir string `name:"archive-dir" help:"Archive directory (overrides config and ARCHEION_ARCHIVE)"`
	Verbose    bool   `short:"v" help:"Log debug output to stderr"`

	Extract ExtractCmd `cmd:"" help:"Print canonical metadata for an HTML file"`
	Batch   BatchCmd   `cmd:"" help:"Extract metadata from many HTML files as JSON lines"`
	Archive ArchiveCmd `cmd:"" help:"Capture URLs and store their metadata and artifacts"`
	List    ListCmd    `cmd:"" help:"List archived links"`
	Show    ShowCmd    `cmd:"" help:"Show an archived link with its artifacts"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" help:"HTML file to read, or - for stdin"`
	URL  string `short:"u" help:"Source URL of the page"`
	Raw  bool   `help:"Print the per-schema fragments instead of merged metadata"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Files       []string `arg:"" help:"HTML files to read"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// ArchiveCmd is the "archive" subcommand.
type ArchiveCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"URLs to archive"`
	From        string   `short:"f" placeholder:"FILE" help:"Also archive the links in an HTML page, RSS/Atom feed or text file (- for stdin)"`
	Base        string   `help:"Base URL for relative links read with --from"`
	Overwrite   bool     `help:"Regenerate artifacts that already succeeded"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent archive limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Tag    string `short:"t" help:"Only list links with this tag"`
	Limit  int    `short:"n" help:"Maximum number of links"`
	Offset int    `help:"Number of links to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Link ID"`
}

// needsStorage reports whether the named command reads or writes the database.
func needsStorage(cmd string) bool {
	switch cmd {
	case "archive", "list", "show":
		return true
	}
	return false
}
