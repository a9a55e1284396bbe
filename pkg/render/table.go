package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	CSV  Format = "csv"
	TSV  Format = "tsv"
	JSON Format = "json"
	YAML Format = "yaml"
	// SQLite is handled by pkg/db, not by this package.
	SQLite Format = "sqlite"
)

// ParseFormat checks s against the formats a command accepts.
func ParseFormat(s string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unsupported format %q, choices are: %s", s, strings.Join(names, ", "))
}

// Table writes header and rows as comma or tab separated values.
func Table(w io.Writer, format Format, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	switch format {
	case CSV:
	case TSV:
		cw.Comma = '\t'
	default:
		return fmt.Errorf("table format %q is not csv or tsv", format)
	}
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
