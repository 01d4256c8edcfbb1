package output

import (
	"encoding/json"
	"fmt"
	"io"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

// JSONFormat writes the full batch as one indented JSON array
type JSONFormat struct {
	Indent string
}

func (f *JSONFormat) Write(w io.Writer, records []deed.Record) error {
	if records == nil {
		records = []deed.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", f.Indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (f *JSONFormat) Description() string {
	return "Full deed records as an indented JSON array"
}

func (f *JSONFormat) DefaultFile() string {
	return "land_deeds_data.json"
}

// NDJSONFormat writes one compact record per line
type NDJSONFormat struct{}

func (f *NDJSONFormat) Write(w io.Writer, records []deed.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode deed %s: %w", rec.DeedID, err)
		}
	}
	return nil
}

func (f *NDJSONFormat) Description() string {
	return "Full deed records, one JSON object per line"
}

func (f *NDJSONFormat) DefaultFile() string {
	return "land_deeds_data.ndjson"
}

// ReadJSON decodes a batch written by JSONFormat
func ReadJSON(r io.Reader) ([]deed.Record, error) {
	var records []deed.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return records, nil
}
