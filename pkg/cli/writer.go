package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/khalid-nowaf/pathtrie/pkg/pathmap"
)

type Writer interface {
	Write(w io.Writer, results []*pathmap.Resolution) error
}

// newWriter returns the writer for an output format, text is the fallback.
func newWriter(format string) Writer {
	switch format {
	case "csv":
		return CsvWriter{}
	case "tsv":
		return CsvWriter{isTSV: true}
	case "json":
		return JsonWriter{}
	default:
		return TextWriter{}
	}
}

// TextWriter writes one line per result.
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, results []*pathmap.Resolution) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// JsonWriter writes the results as a JSON array.
type JsonWriter struct{}

func (JsonWriter) Write(w io.Writer, results []*pathmap.Resolution) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

type CsvWriter struct {
	isTSV bool
}

var csvHeaders = []string{"path", "matched", "destination", "resolved", "found"}

// Write writes a header row, then one row per result.
func (cw CsvWriter) Write(w io.Writer, results []*pathmap.Resolution) error {
	writer := csv.NewWriter(w)
	if cw.isTSV {
		writer.Comma = '\t'
	}

	if err := writer.Write(csvHeaders); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{r.Path, r.Matched, r.Destination, r.Resolved, strconv.FormatBool(r.Found)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
