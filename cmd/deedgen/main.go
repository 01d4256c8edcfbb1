package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"pkg.jsn.cam/landdeeds/internal/archive"
	"pkg.jsn.cam/landdeeds/internal/batch"
	"pkg.jsn.cam/landdeeds/internal/config"
	"pkg.jsn.cam/landdeeds/internal/logger"
)

/* generates synthetic Sri Lankan land deed registrations as JSON and CSV fixtures */

const usage = `usage: deedgen [generate] [flags]
       deedgen verify [-in land_deeds_data.json]
       deedgen runs -archive runs.db [-delete RUN_ID]
       deedgen export -archive runs.db -run RUN_ID [generate flags]

Run "deedgen <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := "generate", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(ctx, args)
	case "verify":
		err = runVerify(args)
	case "runs":
		err = runRuns(args)
	case "export":
		err = runExport(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "deedgen %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func newLogger(env string) *zap.Logger {
	log, err := logger.New(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

func openArchive(path string, log *zap.Logger) (archive.Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: -archive is required", config.ErrInvalidConfig)
	}
	return archive.NewBboltArchive(path, log.Named("archive"))
}

func runGenerate(ctx context.Context, args []string) error {
	cfg, err := config.ParseGenerate(args, os.Getenv)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Env)
	defer log.Sync()

	deps := batch.Deps{Log: log}
	if cfg.ArchivePath != "" {
		a, err := openArchive(cfg.ArchivePath, log)
		if err != nil {
			return err
		}
		defer a.Close()
		deps.Archive = a
	}

	_, err = batch.Run(ctx, cfg, deps)
	return err
}

func runVerify(args []string) error {
	defaults := config.Defaults()
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	in := fs.String("in", defaults.Path("json"), "JSON batch to verify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := batch.VerifyFile(*in)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)
	if !report.OK() {
		return fmt.Errorf("%d records failed verification", len(report.Failures))
	}
	return nil
}

func runRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	path := fs.String("archive", os.Getenv("DEEDGEN_ARCHIVE"), "bbolt archive database")
	del := fs.String("delete", "", "Delete the run with this ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := newLogger(os.Getenv("DEEDGEN_ENV"))
	defer log.Sync()

	a, err := openArchive(*path, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if *del != "" {
		if _, err := a.LoadRun(*del); err != nil && !errors.Is(err, archive.ErrIncompatibleRun) {
			return err
		}
		if err := a.DeleteRun(*del); err != nil {
			return err
		}
		fmt.Printf("Run deleted: %s\n", *del)
		return nil
	}

	runs, err := a.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs archived")
		return nil
	}

	fmt.Printf("%-36s %-19s %7s %s\n", "RUN ID", "CREATED", "RECORDS", "SEED")
	fmt.Println("────────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		seed := fmt.Sprintf("%d", run.Seed)
		if !run.Seeded {
			seed += " (drawn)"
		}
		fmt.Printf("%-36s %-19s %7d %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Count, seed)
	}
	return nil
}

func runExport(args []string) error {
	var runID string
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-run" && i+1 < len(args):
			runID = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-run="):
			runID = strings.TrimPrefix(args[i], "-run=")
		default:
			rest = append(rest, args[i])
		}
	}
	if runID == "" {
		return fmt.Errorf("%w: -run is required", config.ErrInvalidConfig)
	}

	cfg, err := config.ParseGenerate(rest, os.Getenv)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Env)
	defer log.Sync()

	a, err := openArchive(cfg.ArchivePath, log)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.Records(runID)
	if err != nil {
		return err
	}
	files, err := batch.Export(cfg, records, batch.Deps{Log: log})
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("✓ %s saved to: %s\n", f.Format, f.Path)
	}
	return nil
}
