// Package runner drives a whole analysis run: variable resolution,
// per-variable extraction, statistics, histogram and report writing, and
// the run summary. A single variable's failure never aborts the run.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gridstat/internal/histogram"
	"gridstat/internal/ncfile"
	"gridstat/internal/report"
)

// ErrNoDataVariables is returned when auto-discovery finds no variable of
// rank >= 2 and the caller named none explicitly.
var ErrNoDataVariables = errors.New("no data variables found")

// Options configures one run. Defaults are threaded in by the caller;
// there are no package-level mutable defaults.
type Options struct {
	InputPath string
	OutputDir string   // empty = the input file's own directory
	Bins      int
	Variables []string // explicit selection; empty = auto-discovery
	Workers   int      // <= 1 means sequential
	Quiet     bool
	Out       io.Writer // defaults to os.Stdout
	Err       io.Writer // defaults to os.Stderr
}

// Skip records one variable the run could not process and why.
type Skip struct {
	Variable string
	Reason   string
}

// Summary aggregates the outcome of a run for end-of-run reporting. It is
// never persisted.
type Summary struct {
	Attempted int
	Processed int
	Skipped   []Skip
}

type result struct {
	outFile string
	count   int
	lo, hi  float64
	skip    string
}

// Run processes every selected variable of the input file to a report
// file. Per-variable failures (absent name, read error, empty sample set,
// write error) become recorded skips with a warning; only structural
// failures — unreadable source, invalid bin count, or empty auto-discovery
// with no explicit list — abort the run.
func Run(opts Options) (*Summary, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Bins <= 0 {
		return nil, fmt.Errorf("bins %d: %w", opts.Bins, histogram.ErrInvalidBinCount)
	}

	ds, err := ncfile.Open(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	selected, preskips, err := resolveVariables(ds, opts.Variables)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(opts.InputPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	base := report.SourceBase(opts.InputPath)

	if !opts.Quiet {
		fmt.Fprintf(opts.Out, "Processing file: %s\n", opts.InputPath)
		fmt.Fprintf(opts.Out, "Output directory: %s\n", outDir)
	}

	// Whole-array reads share one file handle; everything downstream of
	// the read is per-variable local.
	var readMu sync.Mutex
	results := make([]result, len(selected))
	process := func(i int) {
		results[i] = processVariable(selected[i], base, outDir, opts.Bins, &readMu)
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range selected {
			g.Go(func() error {
				process(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range selected {
			if !opts.Quiet {
				fmt.Fprintf(opts.Out, "[%d/%d] Processing %s...\n", i+1, len(selected), selected[i].Name)
			}
			process(i)
		}
	}

	sum := &Summary{Attempted: len(selected) + len(preskips)}
	for _, s := range preskips {
		fmt.Fprintf(opts.Err, "⚠ Warning: skipping %s: %s\n", s.Variable, s.Reason)
		sum.Skipped = append(sum.Skipped, s)
	}
	for i, r := range results {
		name := selected[i].Name
		if r.skip != "" {
			fmt.Fprintf(opts.Err, "⚠ Warning: skipping %s: %s\n", name, r.skip)
			sum.Skipped = append(sum.Skipped, Skip{Variable: name, Reason: r.skip})
			continue
		}
		sum.Processed++
		if !opts.Quiet {
			fmt.Fprintf(opts.Out, "  ✓ Histogram saved to: %s\n", r.outFile)
			fmt.Fprintf(opts.Out, "    Valid data points: %d, range [%.6f, %.6f]\n", r.count, r.lo, r.hi)
		}
	}
	if !opts.Quiet {
		fmt.Fprintf(opts.Out, "Processing complete. %d variables processed, %d skipped.\n", sum.Processed, len(sum.Skipped))
	}
	return sum, nil
}

// resolveVariables returns the variables to process. Explicit names bypass
// the rank filter; absent names become skips, not fatal errors. With no
// explicit list, auto-discovery keeps rank >= 2 data variables and an
// empty result is a structural failure.
func resolveVariables(ds *ncfile.Dataset, names []string) ([]*ncfile.Variable, []Skip, error) {
	if len(names) == 0 {
		data := ncfile.DataVariables(ds.Variables())
		if len(data) == 0 {
			return nil, nil, fmt.Errorf("%w in %s", ErrNoDataVariables, ds.Path())
		}
		return data, nil, nil
	}
	var selected []*ncfile.Variable
	var skips []Skip
	for _, name := range names {
		v, err := ds.Var(name)
		if err != nil {
			skips = append(skips, Skip{Variable: name, Reason: "no such variable in file"})
			continue
		}
		selected = append(selected, v)
	}
	return selected, skips, nil
}

func processVariable(v *ncfile.Variable, base, outDir string, bins int, readMu *sync.Mutex) result {
	readMu.Lock()
	raw, err := v.ReadFloat64s()
	readMu.Unlock()
	if err != nil {
		return result{skip: fmt.Sprintf("read error: %v", err)}
	}

	clean, _ := histogram.Clean(raw)
	sum, err := histogram.Describe(clean)
	if err != nil {
		if errors.Is(err, histogram.ErrEmptySampleSet) {
			return result{skip: "empty sample set (no finite values)"}
		}
		return result{skip: err.Error()}
	}
	h, err := histogram.Build(clean, bins)
	if err != nil {
		return result{skip: err.Error()}
	}

	body := report.Render(v, sum, h, time.Now())
	outFile := filepath.Join(outDir, report.Filename(base, v.Name))
	if err := report.Write(outFile, []byte(body)); err != nil {
		return result{skip: fmt.Sprintf("write error: %v", err)}
	}
	return result{outFile: outFile, count: sum.Count, lo: sum.Min, hi: sum.Max}
}
