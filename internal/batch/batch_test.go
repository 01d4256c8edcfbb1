package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/landdeeds/internal/archive"
	"pkg.jsn.cam/landdeeds/internal/config"
	"pkg.jsn.cam/landdeeds/internal/deed"
	"pkg.jsn.cam/landdeeds/internal/output"
)

func fixedClock() time.Time {
	return time.Date(2025, time.July, 8, 9, 10, 11, 0, time.Local)
}

func testConfig(t *testing.T, count int, seed uint64) config.Generate {
	t.Helper()
	cfg := config.Defaults()
	cfg.Count = count
	cfg.Seed = seed
	cfg.OutDir = t.TempDir()
	cfg.Progress = false
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func readJSON(t *testing.T, path string) []deed.Record {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := output.ReadJSON(f)
	require.NoError(t, err)
	return records
}

func TestRunWritesConsistentOutputs(t *testing.T) {
	cfg := testConfig(t, config.DefaultCount, 1)
	cfg.Formats = []string{"json", "csv", "ndjson"}
	cfg.MetricsPath = filepath.Join(cfg.OutDir, "landdeeds.prom")
	arch := archive.NewMemoryArchive()
	var stdout bytes.Buffer

	res, err := Run(context.Background(), cfg, Deps{Archive: arch, Stdout: &stdout, Clock: fixedClock})
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.Equal(t, uint64(1), res.Seed)

	records := readJSON(t, cfg.Path("json"))
	rows := readCSV(t, cfg.Path("csv"))

	require.Len(t, records, config.DefaultCount)
	require.Len(t, rows, config.DefaultCount+1)
	assert.Equal(t, output.CSVHeader, rows[0])
	for i, rec := range records {
		row := rows[i+1]
		assert.Equal(t, rec.DeedID, row[0])
		assert.Equal(t, rec.DocumentHash[:16]+"...", row[6])
		assert.NoError(t, deed.Check(rec))
	}

	ndjson, err := os.ReadFile(cfg.Path("ndjson"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCount, strings.Count(string(ndjson), "\n"))

	t.Run("ConsoleOutput", func(t *testing.T) {
		out := stdout.String()
		for _, n := range []string{"50", "100", "150", "200", "250"} {
			assert.Contains(t, out, "Generated "+n+" records...\n")
		}
		assert.Equal(t, 5, strings.Count(out, "records...\n"))
		assert.Contains(t, out, "--- Summary Statistics ---")
		assert.Contains(t, out, "Total Records: 250")
		assert.Contains(t, out, "Date Range: "+res.Summary.EarliestDate+" to "+res.Summary.LatestDate)
	})

	t.Run("Archived", func(t *testing.T) {
		require.NotEmpty(t, res.RunID)
		run, err := arch.LoadRun(res.RunID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), run.Seed)
		assert.True(t, run.Seeded)
		assert.Equal(t, cfg.Path("csv"), run.Outputs["csv"])

		archived, err := arch.Records(res.RunID)
		require.NoError(t, err)
		assert.Equal(t, records, archived)
	})

	t.Run("MetricsTextfile", func(t *testing.T) {
		data, err := os.ReadFile(cfg.MetricsPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "landdeeds_output_bytes_total")
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		entries, err := os.ReadDir(cfg.OutDir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp-")
		}
	})
}

func TestRunSeededIsReproducible(t *testing.T) {
	cfgA := testConfig(t, 60, 2024)
	cfgB := testConfig(t, 60, 2024)

	_, err := Run(context.Background(), cfgA, Deps{Stdout: &bytes.Buffer{}, Clock: fixedClock})
	require.NoError(t, err)
	_, err = Run(context.Background(), cfgB, Deps{Stdout: &bytes.Buffer{}, Clock: fixedClock})
	require.NoError(t, err)

	for _, format := range cfgA.Formats {
		a, err := os.ReadFile(cfgA.Path(format))
		require.NoError(t, err)
		b, err := os.ReadFile(cfgB.Path(format))
		require.NoError(t, err)
		assert.Equal(t, a, b, format)
	}
}

func TestRunUnseededDiffers(t *testing.T) {
	a, err := Run(context.Background(), testConfig(t, 5, 0), Deps{Stdout: &bytes.Buffer{}, Clock: fixedClock})
	require.NoError(t, err)
	b, err := Run(context.Background(), testConfig(t, 5, 0), Deps{Stdout: &bytes.Buffer{}, Clock: fixedClock})
	require.NoError(t, err)

	assert.NotEqual(t, a.Seed, b.Seed)
	assert.NotEqual(t, a.Records, b.Records)
}

func TestRunForcedDeedType(t *testing.T) {
	cfg := testConfig(t, 20, 3)
	cfg.DeedType = string(deed.LeaseDeed)
	cfg.Progress = true
	var bar bytes.Buffer

	res, err := Run(context.Background(), cfg, Deps{Stdout: &bytes.Buffer{}, Progress: &bar, Clock: fixedClock})
	require.NoError(t, err)
	assert.NotEmpty(t, bar.String())
	assert.Equal(t, 1, res.Summary.DeedTypes)
	for _, rec := range res.Records {
		assert.Nil(t, rec.PreviousOwner)
		assert.Nil(t, rec.TransactionValue)
	}
}

func TestRunFailures(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := testConfig(t, 10, 1)

		_, err := Run(ctx, cfg, Deps{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.NoFileExists(t, cfg.Path("json"))
	})

	t.Run("UnwritableOutput", func(t *testing.T) {
		cfg := testConfig(t, 10, 1)
		blocker := filepath.Join(cfg.OutDir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		cfg.OutDir = blocker

		_, err := Run(context.Background(), cfg, Deps{Stdout: &bytes.Buffer{}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, output.ErrWriteFailed))
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := testConfig(t, 0, 1)
		_, err := Run(context.Background(), cfg, Deps{Stdout: &bytes.Buffer{}})
		assert.True(t, errors.Is(err, config.ErrInvalidConfig))
	})
}

func TestSummarize(t *testing.T) {
	records := []deed.Record{
		{District: "Galle", DeedType: deed.GiftDeed, RegistrationDate: "2001-05-01"},
		{District: "Kandy", DeedType: deed.GiftDeed, RegistrationDate: "1990-01-02"},
		{District: "Galle", DeedType: deed.TrustDeed, RegistrationDate: "2024-12-31"},
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 2, s.Districts)
	assert.Equal(t, 2, s.DeedTypes)
	assert.Equal(t, "1990-01-02", s.EarliestDate)
	assert.Equal(t, "2024-12-31", s.LatestDate)
	assert.Equal(t, 2, s.ByType[deed.GiftDeed])

	var buf bytes.Buffer
	s.Print(&buf)
	assert.Contains(t, buf.String(), "Districts Covered: 2\n")
	assert.Contains(t, buf.String(), "Date Range: 1990-01-02 to 2024-12-31\n")
}

func TestVerifyFile(t *testing.T) {
	cfg := testConfig(t, 30, 5)
	res, err := Run(context.Background(), cfg, Deps{Stdout: &bytes.Buffer{}, Clock: fixedClock})
	require.NoError(t, err)

	t.Run("Clean", func(t *testing.T) {
		report, err := VerifyFile(cfg.Path("json"))
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, 30, report.Records)
	})

	t.Run("Tampered", func(t *testing.T) {
		records := append([]deed.Record(nil), res.Records...)
		records[4].StampDutyPaid++
		path := filepath.Join(t.TempDir(), "tampered.json")
		_, err := output.WriteFile(&output.JSONFormat{Indent: "  "}, path, records)
		require.NoError(t, err)

		report, err := VerifyFile(path)
		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.True(t, errors.Is(report.Failures[0], deed.ErrHashMismatch))
		assert.Contains(t, report.Failures[0].Error(), records[4].DeedID)

		var buf bytes.Buffer
		report.Print(&buf)
		assert.Contains(t, buf.String(), "29 of 30 records verified")
	})

	t.Run("Unreadable", func(t *testing.T) {
		_, err := VerifyFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)

		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
		_, err = VerifyFile(bad)
		assert.Error(t, err)
	})
}
