// Package batch classifies every table screenshot in a directory.
//
// Each file is read independently, so files are spread across workers with
// no shared state beyond the result slice, where every worker owns its own
// indices.
package batch

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/card-tools-mcp/internal/cards"
	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

// Options controls a batch run.
type Options struct {
	// Workers is the number of files read concurrently. 0 splits the files
	// evenly across GOMAXPROCS, 1 reads them one at a time.
	Workers int

	// DumpDir, when set, receives every segmented card as
	// "<file>_<i>.png" before it is classified.
	DumpDir string

	// Verbose logs one line per file.
	Verbose bool
}

// Result is the outcome for a single file.
type Result struct {
	Path string
	Hand cards.Hand
	Err  error
}

// String renders "<path> <hand>", or the error in place of the hand.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s error: %v", r.Path, r.Err)
	}
	return fmt.Sprintf("%s %s", r.Path, r.Hand)
}

// ListImages returns the image files of dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !imaging.IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ClassifyDir reads every image in dir. Results come back in file name
// order whether or not individual files failed; the returned error is only
// set when the directory cannot be listed or ctx ends early.
func ClassifyDir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	if opts.DumpDir != "" {
		if err := os.MkdirAll(opts.DumpDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create dump directory: %w", err)
		}
	}

	results := ClassifyFiles(ctx, paths, opts)
	return results, ctx.Err()
}

// ClassifyFiles reads the given files, keeping their order in the results.
// Files not started before ctx is done get ctx's error.
func ClassifyFiles(ctx context.Context, paths []string, opts Options) []Result {
	results := make([]Result, len(paths))
	work := func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = classifyFile(ctx, paths[i], opts)
		}
	}

	switch {
	case len(paths) == 0:
	case opts.Workers == 0:
		parallel.Line(len(paths), work)
	case opts.Workers == 1:
		work(0, len(paths))
	default:
		runPool(len(paths), opts.Workers, func(i int) { work(i, i+1) })
	}
	return results
}

// runPool calls fn for every index in [0,n) from at most workers goroutines.
func runPool(n, workers int, fn func(i int)) {
	if workers > n {
		workers = n
	}
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

func classifyFile(ctx context.Context, path string, opts Options) Result {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	img, err := imaging.Load(path)
	if err != nil {
		res.Err = err
		return res
	}

	if opts.DumpDir != "" {
		if err := dumpCards(img, path, opts.DumpDir); err != nil {
			res.Err = err
			return res
		}
	}

	res.Hand, res.Err = cards.ReadTable(img)
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", path, res.Err)
	}
	if opts.Verbose {
		if res.Err != nil {
			log.Printf("[DEBUG] %s: %v", path, res.Err)
		} else {
			log.Printf("[DEBUG] %s: %d cards, %s", path, len(res.Hand), res.Hand)
		}
	}
	return res
}

// dumpCards writes each segmented card of table to dir. Tables that cannot
// be segmented are left to ReadTable to report.
func dumpCards(table image.Image, path, dir string) error {
	rects, err := cards.SegmentRects(table)
	if err != nil {
		return nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, r := range rects {
		card, err := imaging.SubImage(table, r)
		if err != nil {
			return fmt.Errorf("%s: card %d: %w", path, i, err)
		}
		out := filepath.Join(dir, fmt.Sprintf("%s_%d.png", stem, i))
		if err := imgio.Save(out, card, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
	}
	return nil
}

// FirstError returns the error of the first failed result in order, or nil.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
