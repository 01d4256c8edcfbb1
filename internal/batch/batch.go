// Package batch drives a full generate run: sample the records, write every
// configured output atomically, archive the run and report statistics.
package batch

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"pkg.jsn.cam/landdeeds/internal/archive"
	"pkg.jsn.cam/landdeeds/internal/config"
	"pkg.jsn.cam/landdeeds/internal/deed"
	"pkg.jsn.cam/landdeeds/internal/metrics"
	"pkg.jsn.cam/landdeeds/internal/output"
)

// ProgressInterval is how many records pass between progress lines
const ProgressInterval = 50

// Deps are the collaborators of a run. Zero values are replaced with
// working defaults, except Archive where nil disables archiving.
type Deps struct {
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Archive  archive.Archive
	Stdout   io.Writer
	Progress io.Writer // progress bar destination
	Clock    func() time.Time
}

func (d *Deps) fill() {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Progress == nil {
		d.Progress = os.Stderr
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
}

// File describes one written output
type File struct {
	Format string
	Path   string
	Bytes  int64
}

// Result is what a completed run produced
type Result struct {
	Seed    uint64
	RunID   string // empty when archiving is disabled
	Records []deed.Record
	Files   []File
	Summary Summary
}

// Run executes one generate run. An unseeded config still draws a concrete
// seed, which is logged and archived so the batch can be reproduced.
func Run(ctx context.Context, cfg config.Generate, deps Deps) (*Result, error) {
	deps.fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := deps.Log.Named("batch")
	started := deps.Clock()

	seed := cfg.Seed
	if !cfg.Seeded() {
		seed = rand.Uint64()
	}
	log.Info("starting run", zap.Int("count", cfg.Count), zap.Uint64("seed", seed), zap.Bool("seeded", cfg.Seeded()))

	opts := []deed.Option{deed.WithClock(deps.Clock)}
	if cfg.DeedType != "" {
		opts = append(opts, deed.WithDeedType(deed.DeedType(cfg.DeedType)))
	}
	gen, err := deed.NewGenerator(deed.NewSeededRand(seed), opts...)
	if err != nil {
		return nil, err
	}

	records, err := generate(ctx, gen, cfg, deps)
	if err != nil {
		return nil, err
	}

	res := &Result{Seed: seed, Records: records, Summary: Summarize(records)}

	res.Files, err = Export(cfg, records, deps)
	if err != nil {
		return nil, err
	}

	if deps.Archive != nil {
		run := archive.NewRun(len(records), seed, cfg.Seeded(), started)
		for _, f := range res.Files {
			run.Outputs[f.Format] = f.Path
		}
		if err := deps.Archive.SaveRun(run, records); err != nil {
			return nil, fmt.Errorf("failed to archive run: %w", err)
		}
		res.RunID = run.ID
		log.Info("run archived", zap.String("run_id", run.ID))
	}

	finished := deps.Clock()
	deps.Metrics.ObserveRun(finished.Sub(started), finished)
	if cfg.MetricsPath != "" {
		if err := deps.Metrics.WriteTextfile(cfg.MetricsPath); err != nil {
			return nil, err
		}
	}

	report(deps.Stdout, res)
	return res, nil
}

// Export writes records in every configured format. Each file is replaced
// atomically; an error stops at the first format that fails.
func Export(cfg config.Generate, records []deed.Record, deps Deps) ([]File, error) {
	deps.fill()
	log := deps.Log.Named("batch")

	files := make([]File, 0, len(cfg.Formats))
	for _, name := range cfg.Formats {
		f, err := output.Get(name)
		if err != nil {
			return nil, err
		}
		path := cfg.Path(name)
		n, err := output.WriteFile(f, path, records)
		if err != nil {
			return nil, err
		}
		deps.Metrics.ObserveWrite(name, n)
		files = append(files, File{Format: name, Path: path, Bytes: n})
		log.Debug("output written", zap.String("format", name), zap.String("path", path), zap.Int64("bytes", n))
	}
	return files, nil
}

func generate(ctx context.Context, gen *deed.Generator, cfg config.Generate, deps Deps) ([]deed.Record, error) {
	fmt.Fprintf(deps.Stdout, "Generating %d dummy land deed records for Sri Lankan blockchain system...\n", cfg.Count)

	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.NewOptions(cfg.Count,
			progressbar.OptionSetWriter(deps.Progress),
			progressbar.OptionSetDescription("generating deeds"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
	}

	records := make([]deed.Record, 0, cfg.Count)
	for i := range cfg.Count {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation stopped after %d records: %w", i, err)
		}

		rec := gen.Next()
		records = append(records, rec)
		deps.Metrics.ObserveRecord(string(rec.DeedType))

		if bar != nil {
			bar.Add(1)
		}
		if (i+1)%ProgressInterval == 0 {
			fmt.Fprintf(deps.Stdout, "Generated %d records...\n", i+1)
		}
	}

	return records, nil
}

func report(w io.Writer, res *Result) {
	fmt.Fprintf(w, "\n✓ Successfully generated %d land deed records!\n", len(res.Records))
	for _, f := range res.Files {
		fmt.Fprintf(w, "✓ %s saved to: %s (%s)\n", f.Format, f.Path, humanize.Bytes(uint64(f.Bytes)))
	}
	if res.RunID != "" {
		fmt.Fprintf(w, "✓ Run archived as %s (seed %d)\n", res.RunID, res.Seed)
	}
	res.Summary.Print(w)
}
