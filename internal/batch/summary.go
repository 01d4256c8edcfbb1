package batch

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

// Summary aggregates a generated batch for the console report
type Summary struct {
	Records      int
	Districts    int
	DeedTypes    int
	EarliestDate string
	LatestDate   string
	ByType       map[deed.DeedType]int
}

// Summarize computes batch statistics. Dates are compared as strings: the
// zero-padded ISO layout sorts chronologically.
func Summarize(records []deed.Record) Summary {
	s := Summary{
		Records: len(records),
		ByType:  make(map[deed.DeedType]int),
	}
	districts := make(map[string]struct{})

	for _, rec := range records {
		districts[rec.District] = struct{}{}
		s.ByType[rec.DeedType]++

		if s.EarliestDate == "" || rec.RegistrationDate < s.EarliestDate {
			s.EarliestDate = rec.RegistrationDate
		}
		if rec.RegistrationDate > s.LatestDate {
			s.LatestDate = rec.RegistrationDate
		}
	}

	s.Districts = len(districts)
	s.DeedTypes = len(s.ByType)
	return s
}

// Print writes the human-readable statistics block
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "\n--- Summary Statistics ---")
	fmt.Fprintf(w, "Total Records: %s\n", humanize.Comma(int64(s.Records)))
	fmt.Fprintf(w, "Districts Covered: %d\n", s.Districts)
	fmt.Fprintf(w, "Deed Types: %d\n", s.DeedTypes)
	fmt.Fprintf(w, "Date Range: %s to %s\n", s.EarliestDate, s.LatestDate)

	for _, t := range deed.DeedTypes {
		if n := s.ByType[t]; n > 0 {
			fmt.Fprintf(w, "  %-15s %s\n", t, humanize.Comma(int64(n)))
		}
	}
}
