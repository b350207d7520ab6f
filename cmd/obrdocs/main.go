// Command obrdocs harvests the Owlbear Rodeo extensions documentation into a
// local tree of Markdown files plus the raw and cleaned HTML it was derived
// from.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/obrtools/obrdocs"
	"github.com/obrtools/obrdocs/crawl"
	"github.com/obrtools/obrdocs/fs"
	"github.com/obrtools/obrdocs/goquery"
	"github.com/obrtools/obrdocs/htmltomarkdown"
	obrhttp "github.com/obrtools/obrdocs/http"
	"github.com/obrtools/obrdocs/readability"
	obrslog "github.com/obrtools/obrdocs/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface.
type CLI struct {
	Out        string  `short:"o" default:"out" help:"Output root directory"`
	Single     string  `help:"Harvest a single page URL instead of discovering"`
	URLsFile   string  `name:"urls-file" help:"File with one page URL per line; # starts a comment"`
	SleepMin   float64 `name:"sleep-min" default:"0.5" help:"Minimum inter-request delay in seconds"`
	SleepMax   float64 `name:"sleep-max" default:"1.5" help:"Maximum inter-request delay in seconds"`
	ForceFetch bool    `name:"force-fetch" help:"Refetch every page, bypassing the raw HTML cache"`
	BaseURL    string  `name:"base-url" default:"https://docs.owlbear.rodeo" help:"Documentation site base URL"`
	Verbose    bool    `short:"v" help:"Mirror the run log to stderr"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("obrdocs"),
		kong.Description("Harvest the Owlbear Rodeo extensions docs to local Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.SleepMin < 0 {
		return fmt.Errorf("sleep-min must not be negative")
	}
	if cli.SleepMax < cli.SleepMin {
		return fmt.Errorf("sleep-max must be >= sleep-min")
	}
	if cli.Single != "" && cli.URLsFile != "" {
		return fmt.Errorf("--single and --urls-file are mutually exclusive")
	}

	site := obrdocs.Site{BaseURL: cli.BaseURL}

	layout := fs.NewLayout(cli.Out)
	if err := layout.EnsureDirs(); err != nil {
		return err
	}

	logFile, err := os.OpenFile(layout.RunLog(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer logFile.Close()

	var logOut io.Writer = logFile
	if cli.Verbose {
		logOut = io.MultiWriter(logFile, stderr)
	}
	logger := crawl.NewRunLogger(logOut, slog.LevelInfo)

	overrides, err := resolveOverrides(site, cli)
	if err != nil {
		return err
	}

	pipeline := buildPipeline(site, layout, logger, cli)

	summary, err := pipeline.Run(ctx, overrides)
	if err != nil {
		return err
	}

	for _, line := range summary.Lines() {
		fmt.Fprintln(stdout, line)
	}
	if len(summary.Manifest.Items) == 0 && len(summary.Manifest.ExpectedItems) > 0 {
		fmt.Fprintf(stdout, "no pages produced; see %s\n", layout.FailuresLog())
	}
	fmt.Fprintf(stdout, "manifest: %s\n", layout.URLMap())
	return nil
}

// buildPipeline wires the harvest stages from the CLI configuration.
func buildPipeline(site obrdocs.Site, layout *fs.Layout, logger *slog.Logger, cli *CLI) *crawl.Pipeline {
	fetcher := obrslog.NewLoggingFetcher(
		obrhttp.NewFetcher(
			obrhttp.WithReferer(site.BaseURL),
			obrhttp.WithDelay(secondsToDuration(cli.SleepMin), secondsToDuration(cli.SleepMax)),
		),
		logger,
	)

	discoverer := crawl.NewFallback(
		obrslog.NewLoggingDiscoverer(obrhttp.NewSitemapDiscoverer(site, fetcher), "sitemap", logger),
		obrslog.NewLoggingDiscoverer(goquery.NewIndexDiscoverer(site, fetcher), "index", logger),
	)

	return &crawl.Pipeline{
		Discoverer: discoverer,
		Source:     obrslog.NewLoggingRawSource(fs.NewRawCache(layout, fetcher), logger),
		Cleaner:    goquery.NewCleaner(goquery.WithFallback(readability.NewCleaner())),
		Converter:  htmltomarkdown.NewConverter(site),
		Layout:     layout,
		Logger:     logger,
		Force:      cli.ForceFetch,
	}
}

// resolveOverrides turns --single or --urls-file into explicit page tasks.
// An empty result means discovery runs.
func resolveOverrides(site obrdocs.Site, cli *CLI) ([]obrdocs.PageTask, error) {
	switch {
	case cli.Single != "":
		task, err := site.TaskFromURL(cli.Single)
		if err != nil {
			return nil, err
		}
		return []obrdocs.PageTask{task}, nil
	case cli.URLsFile != "":
		urls, err := ReadURLsFile(cli.URLsFile)
		if err != nil {
			return nil, err
		}
		tasks := make([]obrdocs.PageTask, 0, len(urls))
		for _, u := range urls {
			task, err := site.TaskFromURL(u)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
		return tasks, nil
	default:
		return nil, nil
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
