package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
)

// RecordReader streams delimiter-separated records from an input stream.
// Quoting follows RFC 4180: a delimiter inside a double-quoted field does
// not split the field.
type RecordReader struct {
	reader *csv.Reader
}

// NewRecordReader creates a RecordReader over r. A zero delimiter means comma.
func NewRecordReader(r io.Reader, delimiter rune) *RecordReader {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	// Arity is enforced by the backing store, not the parser
	cr.FieldsPerRecord = -1
	return &RecordReader{reader: cr}
}

// Read returns the next record, or io.EOF at end of input.
func (r *RecordReader) Read() ([]string, error) {
	return r.reader.Read()
}

// ForEach reads every remaining record and passes it to fn.
// It stops at the first error fn returns.
func (r *RecordReader) ForEach(fn func(record []string) error) error {
	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}
