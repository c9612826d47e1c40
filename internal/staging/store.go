// Package staging implements a transient, column-oriented staging store for
// delimited text tables. A store ingests one header-led table into a scratch
// SQLite relation at construction time and answers column projections until
// it is closed, at which point all scratch storage is removed.
package staging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/1mikegrn/michaelgreen.dev/internal/csvutil"
	"github.com/1mikegrn/michaelgreen.dev/internal/datastore"
	"github.com/1mikegrn/michaelgreen.dev/internal/errors"
)

// tableName is the fixed name of the staging relation. Each store owns an
// isolated scratch database, so the name never collides across instances.
const tableName = "staging"

// Options configures store construction.
type Options struct {
	// Delimiter separates fields in the input; zero means comma.
	Delimiter rune

	// MaxRows caps the number of ingested data rows as a guard against
	// unbounded input; zero means unlimited.
	MaxRows int64

	// ScratchDir is the parent directory for scratch storage;
	// empty means the system temp directory.
	ScratchDir string
}

// Store is a write-once, query-only staging relation. Ingestion happens
// entirely during construction; afterwards the store only serves column
// projections. A Store is not safe for concurrent use.
type Store struct {
	db         *datastore.SQLiteStore
	scratchDir string
	columns    []string
	rowCount   int64
	closed     bool
}

// Open is a convenience constructor that opens the file at path, ingests it
// via New and closes the file before returning.
func Open(path string, opts Options) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return New(file, opts)
}

// New ingests the delimited table read from r into a fresh staging store.
// The first record is the header; blank header fields are replaced with
// synthesized names. All remaining records are streamed into the scratch
// relation in a single committed transaction, so the full table is never
// materialized in memory. On any failure the scratch storage is removed
// before the error is returned.
func New(r io.Reader, opts Options) (_ *Store, err error) {
	reader := csvutil.NewRecordReader(r, opts.Delimiter)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewEndOfInputError(err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}

	scratchDir, err := os.MkdirTemp(opts.ScratchDir, "staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate scratch directory: %w", err)
	}
	// Construction failures must not leak scratch storage
	defer func() {
		if err != nil {
			_ = os.RemoveAll(scratchDir)
		}
	}()

	db := datastore.NewSQLiteStore(filepath.Join(scratchDir, uuid.NewString()+".db"))
	if err = db.Connect(); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = db.Close()
		}
	}()

	if err = db.CreateTable(tableSchema(tableName, columns)); err != nil {
		return nil, err
	}

	var rowCount int64
	next := func() ([]string, error) {
		record, err := reader.Read()
		if err != nil {
			return nil, err
		}
		rowCount++
		if opts.MaxRows > 0 && rowCount > opts.MaxRows {
			return nil, fmt.Errorf("input exceeds row limit of %d", opts.MaxRows)
		}
		return record, nil
	}
	if err = db.InsertRows(tableName, columns, next); err != nil {
		return nil, errors.NewStorageWriteError(tableName, err)
	}

	slog.Debug("Staged input table",
		"columns", len(columns),
		"rows", rowCount,
		"scratch", scratchDir,
	)

	return &Store{
		db:         db,
		scratchDir: scratchDir,
		columns:    columns,
		rowCount:   rowCount,
	}, nil
}

// Columns returns the relation's column names in creation order,
// after blank-header synthesis.
func (s *Store) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Len returns the number of ingested data rows.
func (s *Store) Len() int64 {
	return s.rowCount
}

// ScratchDir returns the store's scratch storage location.
func (s *Store) ScratchDir() string {
	return s.scratchDir
}

// Project returns every value of the named column, one per ingested row,
// in ingestion order. Projections are repeatable and do not mutate state.
func (s *Store) Project(column string) ([]string, error) {
	if s.closed {
		return nil, errors.NewClosedStoreError("project")
	}
	if !s.hasColumn(column) {
		return nil, errors.NewUnknownColumnError(column)
	}

	values, err := s.db.QueryColumn(tableName, column)
	if err != nil {
		return nil, fmt.Errorf("failed to project column %q: %w", column, err)
	}
	return values, nil
}

// Records returns a row-wise snapshot of the whole relation in ingestion
// order, keyed by column name.
func (s *Store) Records() ([]map[string]string, error) {
	if s.closed {
		return nil, errors.NewClosedStoreError("records")
	}

	records := make([]map[string]string, s.rowCount)
	for i := range records {
		records[i] = make(map[string]string, len(s.columns))
	}

	for _, column := range s.columns {
		values, err := s.Project(column)
		if err != nil {
			return nil, err
		}
		if int64(len(values)) != s.rowCount {
			return nil, fmt.Errorf("column %q has %d values, want %d", column, len(values), s.rowCount)
		}
		for i, value := range values {
			records[i][column] = value
		}
	}

	return records, nil
}

// Close tears down the store: it closes the storage connection and removes
// the scratch directory and its contents. Close is idempotent; calling it
// again after a successful teardown returns nil.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	closeErr := s.db.Close()
	removeErr := os.RemoveAll(s.scratchDir)
	if closeErr != nil {
		return fmt.Errorf("failed to close staging database: %w", closeErr)
	}
	if removeErr != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", removeErr)
	}
	return nil
}

func (s *Store) hasColumn(name string) bool {
	for _, col := range s.columns {
		if col == name {
			return true
		}
	}
	return false
}
