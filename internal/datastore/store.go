package datastore

// RowSource yields one data row per call, in ingestion order.
// It returns io.EOF once the input is exhausted.
type RowSource func() ([]string, error)

// Store defines the interface for staging-table storage backends
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// InsertRows streams rows from the source into the specified table
	// as a single all-or-nothing bulk insert
	InsertRows(table string, columns []string, next RowSource) error

	// Close closes the connection to the data store
	Close() error
}
