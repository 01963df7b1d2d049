package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ironsheep/card-tools-mcp/internal/batch"
	"github.com/ironsheep/card-tools-mcp/internal/cards"
	"github.com/ironsheep/card-tools-mcp/internal/config"
	"github.com/ironsheep/card-tools-mcp/internal/imaging"
	"github.com/ironsheep/card-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("card-tools - read playing cards from table screenshots")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  card-tools [classify] [-workers N] [-dump DIR] DIR")
	fmt.Println("                        Print \"<file> <hand>\" for every image in DIR")
	fmt.Println("  card-tools inspect FILE")
	fmt.Println("                        Print each card of FILE with its bounds and rank vector")
	fmt.Println("  card-tools patterns DIR")
	fmt.Println("                        Build the rank pattern table from labeled card images")
	fmt.Println("                        named like 5h.png or 5h.1.png")
	fmt.Println("  card-tools serve      Run the MCP server over stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", config.EnvLogLevel)
	fmt.Printf("  %s=N          Files read concurrently (0 = one per CPU)\n", config.EnvWorkers)
	fmt.Printf("  %s=DIR       Write every segmented card there as PNG\n", config.EnvDumpDir)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Printf("card-tools %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// Configure logging to stderr (stdout carries results and the MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("card-tools v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var err error
	switch args[0] {
	case "serve":
		err = serve(cfg)
	case "patterns":
		err = patterns(cfg, args[1:])
	case "inspect":
		err = inspect(args[1:])
	case "classify":
		err = classify(cfg, args[1:])
	default:
		err = classify(cfg, args)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func serve(cfg *config.Config) error {
	srv := server.New()
	srv.SetDebug(cfg.Debug())
	return srv.Run()
}

func classify(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	workers := fs.Int("workers", cfg.Workers, "files read concurrently (0 = one per CPU)")
	dump := fs.String("dump", cfg.DumpDir, "write every segmented card to this directory")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("expected one directory, got %d arguments", fs.NArg())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := batch.ClassifyDir(ctx, fs.Arg(0), batch.Options{
		Workers: *workers,
		DumpDir: *dump,
		Verbose: cfg.Debug(),
	})
	if err != nil && results == nil {
		return err
	}

	// Results print in name order up to the first failure.
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
		fmt.Println(r)
	}
	return err
}

func inspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one file, got %d arguments", len(args))
	}
	table, err := imaging.Load(args[0])
	if err != nil {
		return err
	}
	rects, err := cards.SegmentRects(table)
	if err != nil {
		return err
	}

	for i, r := range rects {
		card, err := imaging.SubImage(table, r)
		if err != nil {
			return err
		}
		c, err := cards.Classify(card)
		if err != nil {
			return fmt.Errorf("card %d at %v: %w", i, r, err)
		}
		v, err := cards.RankVector(card)
		if err != nil {
			return fmt.Errorf("card %d at %v: %w", i, r, err)
		}
		fmt.Printf("%d %-3s %v ink=%s %v\n", i, c.Code(), r, cards.InkColor(card), v)
	}
	return nil
}

func patterns(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one directory, got %d arguments", len(args))
	}
	paths, err := batch.ListImages(args[0])
	if err != nil {
		return err
	}

	var samples []cards.Sample
	for _, p := range paths {
		rank, _, ok := cards.ParseSampleName(p)
		if !ok {
			if cfg.Debug() {
				log.Printf("[DEBUG] skipping %s: not a <rank><suit> name", filepath.Base(p))
			}
			continue
		}
		img, err := imaging.Load(p)
		if err != nil {
			return err
		}
		samples = append(samples, cards.Sample{Name: p, Rank: rank, Image: img})
	}

	table, err := cards.BuildPatterns(samples)
	if err != nil {
		return err
	}
	for _, p := range table {
		fmt.Println(cards.FormatPattern(p))
	}
	return nil
}
