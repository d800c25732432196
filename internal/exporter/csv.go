package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"volvedash/internal/production"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility
	BOMPrefix bool
	// Comma overrides the field delimiter when non-zero
	Comma rune
}

// WriteCSV writes the table header and rows to w
func WriteCSV(w io.Writer, table *production.Table, options WriteOptions) error {
	sw, err := NewStreamWriter(w, table.Columns, options)
	if err != nil {
		return err
	}

	for i, row := range table.Rows {
		if err := sw.WriteRecord(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return sw.Close()
}

// StreamWriter writes CSV records one at a time
type StreamWriter struct {
	writer *csv.Writer
}

// NewStreamWriter writes the optional BOM and the headers and returns a
// writer for the records that follow
func NewStreamWriter(w io.Writer, headers []string, options WriteOptions) (*StreamWriter, error) {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{writer: writer}, nil
}

// WriteRecord writes a single record
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes buffered records and reports any write error
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	return s.writer.Error()
}
