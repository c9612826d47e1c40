package staging

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/1mikegrn/michaelgreen.dev/internal/datastore"
	"github.com/1mikegrn/michaelgreen.dev/internal/errors"
)

const (
	// placeholderLength is the length of synthesized names for blank header fields
	placeholderLength = 8

	letters = "abcdefghijklmnopqrstuvwxyz"
)

// normalizeHeader turns raw header fields into the relation's column names.
// Blank fields get a fresh random alphabetic name; synthesis avoids only
// emptiness, not collisions with existing names. Duplicate names, original
// or synthesized, are rejected because the relation cannot represent them.
func normalizeHeader(fields []string) ([]string, error) {
	columns := make([]string, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for i, field := range fields {
		name := field
		if name == "" {
			name = randomName(placeholderLength)
		}
		if _, ok := seen[name]; ok {
			return nil, errors.NewDuplicateColumnError(name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}

	return columns, nil
}

// randomName generates a fixed-length lowercase alphabetic name
func randomName(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

// tableSchema builds the CREATE TABLE statement for the staging relation.
// Every column is TEXT; SQLite's implicit rowid serves as the hidden
// surrogate key that preserves ingestion order.
func tableSchema(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = datastore.QuoteIdentifier(col) + " TEXT"
	}
	return fmt.Sprintf(
		"CREATE TABLE %s (%s)",
		datastore.QuoteIdentifier(table),
		strings.Join(defs, ", "),
	)
}
