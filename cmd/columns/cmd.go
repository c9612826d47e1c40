// Package columns implements the columns command: it stages an input file
// and prints the resulting schema.
package columns

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1mikegrn/michaelgreen.dev/internal/config"
	"github.com/1mikegrn/michaelgreen.dev/internal/staging"
)

var output io.Writer = os.Stdout

// ListColumnsWithParams stages the input file and prints its column names
// in schema order, one per line or as a JSON array.
func ListColumnsWithParams(input string, asJSON bool) error {
	store, err := staging.Open(input, storeOptions())
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", input, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to tear down staging store", "error", err)
		}
	}()

	columns := store.Columns()

	if asJSON {
		data, err := json.MarshalIndent(columns, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal columns: %w", err)
		}
		if _, err := fmt.Fprintln(output, string(data)); err != nil {
			return err
		}
		return nil
	}

	for _, column := range columns {
		if _, err := fmt.Fprintln(output, column); err != nil {
			return err
		}
	}

	slog.Debug("Listed staged columns", "file", input, "columns", len(columns), "rows", store.Len())
	return nil
}

func storeOptions() staging.Options {
	return staging.Options{
		Delimiter:  config.Delimiter,
		MaxRows:    config.MaxRows,
		ScratchDir: config.ScratchDir,
	}
}
