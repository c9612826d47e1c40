package staging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1mikegrn/michaelgreen.dev/internal/errors"
)

func newStore(t *testing.T, input string, opts Options) *Store {
	t.Helper()
	if opts.ScratchDir == "" {
		opts.ScratchDir = t.TempDir()
	}
	store, err := New(strings.NewReader(input), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNew_ProjectsColumnsInIngestionOrder(t *testing.T) {
	store := newStore(t, "a,b\n1,2\n3,4\n", Options{})

	assert.Equal(t, []string{"a", "b"}, store.Columns())
	assert.Equal(t, int64(2), store.Len())

	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, a)

	b, err := store.Project("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4"}, b)
}

func TestProject_IsRepeatable(t *testing.T) {
	store := newStore(t, "a,b\n1,2\n3,4\n", Options{})

	first, err := store.Project("a")
	require.NoError(t, err)
	second, err := store.Project("a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNew_SynthesizesBlankHeaderNames(t *testing.T) {
	store := newStore(t, ",b\n1,2\n", Options{})

	columns := store.Columns()
	require.Len(t, columns, 2)

	synthesized := columns[0]
	assert.NotEmpty(t, synthesized)
	assert.Len(t, synthesized, placeholderLength)

	values, err := store.Project(synthesized)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, values)

	b, err := store.Project("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, b)
}

func TestNew_ArityMismatchFailsAndCleansUp(t *testing.T) {
	scratch := t.TempDir()

	_, err := New(strings.NewReader("a,b\n1\n"), Options{ScratchDir: scratch})
	require.Error(t, err)
	assert.True(t, errors.IsStorageWriteError(err), "expected StorageWriteError, got %v", err)

	// No scratch storage left behind after a construction failure
	entries, readErr := os.ReadDir(scratch)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestNew_EmptyInputFailsWithEndOfInput(t *testing.T) {
	_, err := New(strings.NewReader(""), Options{ScratchDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsEndOfInputError(err), "expected EndOfInputError, got %v", err)
}

func TestNew_DuplicateHeaderFails(t *testing.T) {
	scratch := t.TempDir()

	_, err := New(strings.NewReader("a,a\n1,2\n"), Options{ScratchDir: scratch})
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateColumnError(err), "expected DuplicateColumnError, got %v", err)

	entries, readErr := os.ReadDir(scratch)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestNew_MaxRowsGuard(t *testing.T) {
	scratch := t.TempDir()

	_, err := New(strings.NewReader("a\n1\n2\n3\n"), Options{MaxRows: 2, ScratchDir: scratch})
	require.Error(t, err)
	assert.True(t, errors.IsStorageWriteError(err), "expected StorageWriteError, got %v", err)

	entries, readErr := os.ReadDir(scratch)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestNew_CustomDelimiter(t *testing.T) {
	store := newStore(t, "a;b\n1;2\n", Options{Delimiter: ';'})

	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, a)
}

func TestNew_QuotedDelimiterStaysInField(t *testing.T) {
	store := newStore(t, "a,b\n\"1,5\",2\n", Options{})

	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1,5"}, a)
}

func TestProject_UnknownColumn(t *testing.T) {
	store := newStore(t, "a,b\n1,2\n", Options{})

	_, err := store.Project("missing")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownColumnError(err), "expected UnknownColumnError, got %v", err)

	// A failed projection does not affect subsequent valid queries
	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, a)
}

func TestClose_RemovesScratchStorageAndIsIdempotent(t *testing.T) {
	scratch := t.TempDir()
	store, err := New(strings.NewReader("a\n1\n"), Options{ScratchDir: scratch})
	require.NoError(t, err)

	scratchDir := store.ScratchDir()
	require.DirExists(t, scratchDir)

	require.NoError(t, store.Close())
	assert.NoDirExists(t, scratchDir)

	// Second close never fails
	require.NoError(t, store.Close())
}

func TestProject_AfterCloseFails(t *testing.T) {
	store, err := New(strings.NewReader("a\n1\n"), Options{ScratchDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Project("a")
	require.Error(t, err)
	assert.True(t, errors.IsClosedStoreError(err), "expected ClosedStoreError, got %v", err)

	_, err = store.Records()
	require.Error(t, err)
	assert.True(t, errors.IsClosedStoreError(err), "expected ClosedStoreError, got %v", err)
}

func TestRecords_ZipsWithProjections(t *testing.T) {
	store := newStore(t, "a,b\n1,2\n3,4\n", Options{})

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, records[0])
	assert.Equal(t, map[string]string{"a": "3", "b": "4"}, records[1])
}

func TestNew_HeaderOnlyInput(t *testing.T) {
	store := newStore(t, "a,b\n", Options{})

	assert.Equal(t, int64(0), store.Len())

	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Empty(t, a)
}

func TestOpen_ReadsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/input.csv"
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	store, err := Open(path, Options{ScratchDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	a, err := store.Project("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, a)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(t.TempDir()+"/missing.csv", Options{})
	require.Error(t, err)
}
