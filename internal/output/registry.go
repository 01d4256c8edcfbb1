package output

import (
	"fmt"
	"sort"
)

// Registry maps format names to factories
var Registry = map[string]func() Format{
	"json":   func() Format { return &JSONFormat{Indent: "  "} },
	"csv":    func() Format { return &CSVFormat{HashPrefix: 16} },
	"ndjson": func() Format { return &NDJSONFormat{} },
}

// DefaultFormats are written when no format list is configured
var DefaultFormats = []string{"json", "csv"}

// Get returns a format by name
func Get(name string) (Format, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return factory(), nil
}

// List returns all available format names, sorted
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
