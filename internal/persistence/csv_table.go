package persistence

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ga-helpdesk/pkg/util"
)

// Record is one table row keyed by column name. Absent columns read as the
// empty string, so optional fields never error.
type Record map[string]string

// Table is a record store over a single flat CSV file: the only durable
// representation of its rows. Every mutation is a full load-modify-save
// cycle over the whole file, serialized by the table mutex so concurrent
// callers in this process cannot lose each other's writes. There is no
// cross-process locking; a single active writer process is assumed.
type Table struct {
	path    string
	columns []string
	seed    []Record
	logger  *zap.Logger

	mu sync.Mutex
}

// NewTable builds a store for the file at path with the given header.
func NewTable(path string, columns []string, logger *zap.Logger) *Table {
	return &Table{path: path, columns: columns, logger: logger}
}

// WithSeed registers rows written when the file is first created, e.g. the
// default admin account.
func (t *Table) WithSeed(rows ...Record) *Table {
	t.seed = rows
	return t
}

// Path returns the backing file path.
func (t *Table) Path() string {
	return t.path
}

// Columns returns the header this table persists with.
func (t *Table) Columns() []string {
	return t.columns
}

// Load reads all rows. A missing file is initialized (header plus seed
// rows) and the seed returned; an unreadable or corrupt file is logged and
// recovered as an empty collection so the caller stays usable.
func (t *Table) Load() ([]Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadLocked()
}

// Save serializes rows and overwrites the whole file.
func (t *Table) Save(rows []Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveLocked(rows)
}

// Mutate runs fn over the loaded rows and persists its result, all under
// the table lock. This is the single-writer serialization point for every
// mutation in the system.
func (t *Table) Mutate(fn func(rows []Record) ([]Record, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.loadLocked()
	if err != nil {
		return err
	}
	updated, err := fn(rows)
	if err != nil {
		return err
	}
	return t.saveLocked(updated)
}

func (t *Table) loadLocked() ([]Record, error) {
	file, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		if initErr := t.saveLocked(t.seed); initErr != nil {
			return nil, initErr
		}
		return append([]Record{}, t.seed...), nil
	}
	if err != nil {
		t.logger.Warn("data file unreadable, continuing with empty collection",
			zap.String("path", t.path), zap.Error(util.NewStorageReadError(t.path, err)))
		return []Record{}, nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	raw, err := reader.ReadAll()
	if err != nil {
		t.logger.Warn("data file corrupt, continuing with empty collection",
			zap.String("path", t.path), zap.Error(util.NewStorageReadError(t.path, err)))
		return []Record{}, nil
	}
	if len(raw) == 0 {
		return []Record{}, nil
	}

	// Rows are keyed by the file's own header, so either column dialect
	// parses without the repositories caring which one is on disk.
	header := raw[0]
	rows := make([]Record, 0, len(raw)-1)
	for _, fields := range raw[1:] {
		record := make(Record, len(header))
		for i, name := range header {
			if i < len(fields) {
				record[name] = fields[i]
			}
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (t *Table) saveLocked(rows []Record) error {
	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(t.path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.columns); err != nil {
		return err
	}
	for _, record := range rows {
		fields := make([]string, len(t.columns))
		for i, name := range t.columns {
			fields[i] = record[name]
		}
		if err := writer.Write(fields); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
