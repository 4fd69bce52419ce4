package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/archive"
	"github.com/fwojciec/archeion/etree"
	"github.com/fwojciec/archeion/fs"
	"github.com/fwojciec/archeion/goquery"
	"github.com/fwojciec/archeion/htmltomarkdown"
	"github.com/fwojciec/archeion/http"
	"github.com/fwojciec/archeion/jsongold"
	"github.com/fwojciec/archeion/jsonld"
	"github.com/fwojciec/archeion/normalize"
	"github.com/fwojciec/archeion/parse"
	"github.com/fwojciec/archeion/readability"
	"github.com/fwojciec/archeion/rod"
	archslog "github.com/fwojciec/archeion/slog"
	"github.com/fwojciec/archeion/sqlite"
	"github.com/fwojciec/archeion/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded in Run unless ConfigLoaded is set.
	Config       Config
	ConfigLoaded bool

	// Getenv reads the environment. Defaults to os.Getenv.
	Getenv func(string) string

	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("archeion"),
		kong.Description("Personal web archive with structured metadata extraction"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'archeion --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if !m.ConfigLoaded {
		path, required := configPath(m.Getenv)
		m.Config, err = LoadConfig(path, required)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		m.Config.ApplyEnv(m.Getenv)
	}
	if cli.DB != "" {
		m.Config.Database = cli.DB
	}
	if cli.ArchiveDir != "" {
		m.Config.ArchiveDir = cli.ArchiveDir
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	deps.Extractor = goquery.NewExtractor(goquery.WithLogger(logger))
	deps.Parser = newLinkParser(logger)
	deps.Metadata, err = newMetadataService(m.Config, deps.Extractor, logger)
	if err != nil {
		return err
	}

	if needsStorage(cmd) {
		if err := os.MkdirAll(filepath.Dir(m.Config.Database), 0755); err != nil {
			return err
		}
		m.DB = sqlite.NewDB(m.Config.Database)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ARCHEION_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.Config.Database, err)
		}
		defer m.Close()

		deps.Links = sqlite.NewLinkService(m.DB)
		deps.Artifacts = sqlite.NewArtifactService(m.DB)
	}

	if cmd == "archive" {
		fetcher, err := newFetcher(m.Config, logger)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Archiver = &archive.Archiver{
			Fetcher:     archslog.NewLoggingFetcher(fetcher, logger),
			Metadata:    deps.Metadata,
			Converter:   htmltomarkdown.NewConverter(),
			Content:     newContentExtractor(m.Config),
			Links:       deps.Links,
			Artifacts:   deps.Artifacts,
			Writer:      fs.NewWriter(m.Config.ArchiveDir),
			Overwrite:   cli.Archive.Overwrite,
			Concurrency: cli.Archive.Concurrency,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

// newMetadataService wires the extraction, normalization and merge pipeline
// for the schemas enabled in cfg.
func newMetadataService(cfg Config, extractor archeion.MetadataExtractor, logger *slog.Logger) (archeion.MetadataService, error) {
	schemas, err := cfg.EnabledSchemas()
	if err != nil {
		return nil, err
	}

	var opts []jsongold.Option
	if cfg.JSONLD.RemoteContexts {
		opts = append(opts, jsongold.WithRemoteContexts(&nethttp.Client{Timeout: cfg.Fetch.Timeout}))
	}
	compactor := archslog.NewLoggingCompactor(jsongold.NewCompactor(opts...), logger)

	registry := normalize.NewDefaultRegistry(jsonld.NewResolver(compactor, jsonld.WithLogger(logger)))
	enabled := make(map[archeion.Schema]bool, len(schemas))
	for _, s := range schemas {
		enabled[s] = true
	}
	for _, s := range registry.List() {
		if !enabled[s] {
			registry.Unregister(s)
			continue
		}
		registry.Register(archslog.NewLoggingNormalizer(registry.Get(s), logger))
	}

	svc := normalize.NewService(extractor, registry, normalize.WithLogger(logger))
	return archslog.NewLoggingMetadataService(svc, logger), nil
}

// newFetcher returns the browser fetcher when configured, else the HTTP one.
func newFetcher(cfg Config, logger *slog.Logger) (archeion.Fetcher, error) {
	if cfg.Fetch.Browser {
		f, err := rod.NewFetcher(rod.WithTimeout(cfg.Fetch.Timeout))
		if err != nil {
			logger.Error("Chrome or Chromium must be installed for fetch.browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return http.NewFetcher(
		http.WithTimeout(cfg.Fetch.Timeout),
		http.WithRateLimit(cfg.Fetch.Rate),
		http.WithUserAgent(cfg.Fetch.UserAgent),
		http.WithLogger(logger),
	), nil
}

// newLinkParser reads archive input as an HTML page of anchors, then as an
// RSS or Atom feed, then as plain text.
func newLinkParser(logger *slog.Logger) archeion.LinkParser {
	return parse.NewChain([]archeion.LinkParser{
		goquery.NewLinkParser(),
		etree.NewFeedParser(),
		parse.NewTextParser(),
	}, parse.WithLogger(logger))
}

func newContentExtractor(cfg Config) archeion.ContentExtractor {
	switch cfg.Markdown.Extractor {
	case ExtractorTrafilatura:
		return trafilatura.NewExtractor()
	case ExtractorNone:
		return goquery.NewCleaner()
	default:
		return readability.NewExtractor()
	}
}
