// Package publish implements the publish command: it stages an input file
// and bulk-inserts its rows into a remote Datasette instance.
package publish

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/1mikegrn/michaelgreen.dev/internal/config"
	"github.com/1mikegrn/michaelgreen.dev/internal/datastore"
	"github.com/1mikegrn/michaelgreen.dev/internal/staging"
)

var newClient = func(url, database, token string) datastore.Store {
	return datastore.NewDatasetteClient(url, database, token)
}

// Params holds the parameters for a publish run.
type Params struct {
	Input    string
	Table    string
	URL      string
	Database string
	Token    string
}

// PublishTableWithParams stages the input file and sends every row to the
// Datasette insert API as a single request.
func PublishTableWithParams(p Params) error {
	store, err := staging.Open(p.Input, storeOptions())
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", p.Input, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to tear down staging store", "error", err)
		}
	}()

	records, err := store.Records()
	if err != nil {
		return err
	}

	client := newClient(p.URL, p.Database, p.Token)
	if err := client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datasette: %w", err)
	}
	defer func() { _ = client.Close() }()

	columns := store.Columns()
	if err := client.InsertRows(p.Table, columns, recordSource(records, columns)); err != nil {
		return fmt.Errorf("failed to publish table: %w", err)
	}

	slog.Info("Published staged table",
		"file", p.Input,
		"table", p.Table,
		"rows", len(records),
	)
	return nil
}

// recordSource adapts a row-wise snapshot back into positional rows in
// schema column order.
func recordSource(records []map[string]string, columns []string) datastore.RowSource {
	i := 0
	return func() ([]string, error) {
		if i >= len(records) {
			return nil, io.EOF
		}
		record := records[i]
		i++

		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = record[col]
		}
		return row, nil
	}
}

func storeOptions() staging.Options {
	return staging.Options{
		Delimiter:  config.Delimiter,
		MaxRows:    config.MaxRows,
		ScratchDir: config.ScratchDir,
	}
}
