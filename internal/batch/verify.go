package batch

import (
	"fmt"
	"io"
	"os"

	"pkg.jsn.cam/landdeeds/internal/deed"
	"pkg.jsn.cam/landdeeds/internal/output"
)

// VerifyReport lists the records of a batch file that failed Check
type VerifyReport struct {
	Records  int
	Failures []error
}

// OK reports whether every record passed
func (r VerifyReport) OK() bool {
	return len(r.Failures) == 0
}

// Print writes one line per failure followed by a totals line
func (r VerifyReport) Print(w io.Writer) {
	for _, err := range r.Failures {
		fmt.Fprintf(w, "✗ %v\n", err)
	}
	fmt.Fprintf(w, "%d of %d records verified\n", r.Records-len(r.Failures), r.Records)
}

// VerifyRecords checks every record of an in-memory batch
func VerifyRecords(records []deed.Record) VerifyReport {
	report := VerifyReport{Records: len(records)}
	for _, rec := range records {
		if err := deed.Check(rec); err != nil {
			report.Failures = append(report.Failures, err)
		}
	}
	return report
}

// VerifyFile reads a JSON batch and checks every record. The error is
// reserved for files that cannot be read or decoded.
func VerifyFile(path string) (VerifyReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("failed to open batch: %w", err)
	}
	defer f.Close()

	records, err := output.ReadJSON(f)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("%s: %w", path, err)
	}
	return VerifyRecords(records), nil
}
