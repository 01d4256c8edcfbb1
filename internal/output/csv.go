package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

// CSVHeader is the exact header row of the summary file
var CSVHeader = []string{"Deed ID", "Type", "District", "Owner", "Extent", "Registration Date", "Document Hash"}

const truncationMarker = "..."

// CSVFormat writes a one-row-per-deed projection for quick viewing
type CSVFormat struct {
	HashPrefix int
}

func (f *CSVFormat) Write(w io.Writer, records []deed.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.DeedID,
			string(rec.DeedType),
			rec.District,
			rec.CurrentOwner.Name,
			rec.PropertyDetails.Extent,
			rec.RegistrationDate,
			ShortHash(rec.DocumentHash, f.HashPrefix),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", rec.DeedID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (f *CSVFormat) Description() string {
	return "Summary projection: id, type, district, owner, extent, date, short hash"
}

func (f *CSVFormat) DefaultFile() string {
	return "land_deeds_summary.csv"
}

// ShortHash returns the first n characters of hash followed by "..."
func ShortHash(hash string, n int) string {
	if len(hash) > n {
		hash = hash[:n]
	}
	return hash + truncationMarker
}
