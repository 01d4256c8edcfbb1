package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"pkg.jsn.cam/landdeeds/internal/deed"
	"pkg.jsn.cam/landdeeds/internal/output"
)

// DefaultCount is the batch size of a plain run
const DefaultCount = 250

var ErrInvalidConfig = errors.New("invalid configuration")

// Generate captures everything a generate run needs
type Generate struct {
	Count       int
	Seed        uint64 // 0 picks a random seed
	OutDir      string
	Files       map[string]string // format name -> file name inside OutDir
	Formats     []string
	ArchivePath string
	MetricsPath string
	DeedType    string
	Progress    bool
	Env         string
}

// Seeded reports whether the run is reproducible
func (c Generate) Seeded() bool {
	return c.Seed != 0
}

// Path returns where the given format is written
func (c Generate) Path(format string) string {
	name, ok := c.Files[format]
	if !ok {
		if f, err := output.Get(format); err == nil {
			name = f.DefaultFile()
		}
	}
	return filepath.Join(c.OutDir, name)
}

// Defaults returns the values of a run with no flags or environment
func Defaults() Generate {
	files := make(map[string]string)
	for _, name := range output.List() {
		f, _ := output.Get(name)
		files[name] = f.DefaultFile()
	}
	return Generate{
		Count:    DefaultCount,
		OutDir:   ".",
		Files:    files,
		Formats:  append([]string(nil), output.DefaultFormats...),
		Progress: true,
		Env:      "development",
	}
}

// FromEnv layers DEEDGEN_* variables over Defaults. Malformed numbers are
// reported rather than silently ignored.
func FromEnv(getenv func(string) string) (Generate, error) {
	cfg := Defaults()

	if v := getenv("DEEDGEN_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: DEEDGEN_COUNT: %w", ErrInvalidConfig, err)
		}
		cfg.Count = n
	}
	if v := getenv("DEEDGEN_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: DEEDGEN_SEED: %w", ErrInvalidConfig, err)
		}
		cfg.Seed = n
	}
	if v := getenv("DEEDGEN_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := getenv("DEEDGEN_FORMATS"); v != "" {
		cfg.Formats = splitList(v)
	}
	if v := getenv("DEEDGEN_ARCHIVE"); v != "" {
		cfg.ArchivePath = v
	}
	if v := getenv("DEEDGEN_METRICS"); v != "" {
		cfg.MetricsPath = v
	}
	if v := getenv("DEEDGEN_DEED_TYPE"); v != "" {
		cfg.DeedType = v
	}
	if v := getenv("DEEDGEN_PROGRESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: DEEDGEN_PROGRESS: %w", ErrInvalidConfig, err)
		}
		cfg.Progress = b
	}
	if v := getenv("DEEDGEN_ENV"); v != "" {
		cfg.Env = v
	}

	return cfg, nil
}

// ParseGenerate resolves a generate run's configuration. Flags win over
// the environment, which wins over defaults.
func ParseGenerate(args []string, getenv func(string) string) (Generate, error) {
	cfg, err := FromEnv(getenv)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Number of deed records to generate")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for a reproducible batch (0 = random)")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "Directory the output files are written to")
	formats := fs.String("formats", strings.Join(cfg.Formats, ","), "Comma-separated output formats ("+strings.Join(output.List(), ", ")+")")
	for _, name := range output.List() {
		fs.Func(name, fmt.Sprintf("File name for %s output (default %s)", name, cfg.Files[name]), func(v string) error {
			cfg.Files[name] = v
			return nil
		})
	}
	fs.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "bbolt database to archive the run into (empty = disabled)")
	fs.StringVar(&cfg.MetricsPath, "metrics", cfg.MetricsPath, "Prometheus textfile to write run metrics to (empty = disabled)")
	fs.StringVar(&cfg.DeedType, "deed-type", cfg.DeedType, "Force every record to this deed type")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "Show a progress bar")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Logging environment (development|production)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Formats = splitList(*formats)

	return cfg, cfg.Validate()
}

// Validate rejects configurations that cannot produce a batch
func (c Generate) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidConfig, c.Count)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: no output formats", ErrInvalidConfig)
	}
	for _, name := range c.Formats {
		if _, err := output.Get(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.DeedType != "" && !deed.DeedType(c.DeedType).Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, deed.ErrUnknownDeedType, c.DeedType)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
