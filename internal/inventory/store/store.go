package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/stockroom/stockroom/internal/inventory"
	"github.com/stockroom/stockroom/pkg/metrics"
)

// FileStore owns the single on-disk JSON document. All mutations go through
// Update, which serializes the load/mutate/save cycle behind one mutex; reads
// use Load directly and may observe either side of an in-flight write.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the configured document location (reported by /health).
func (s *FileStore) Path() string {
	return s.path
}

// rawDocument defers per-collection decoding so a missing or non-array field
// can be repaired instead of failing the whole load.
type rawDocument struct {
	Products json.RawMessage `json:"products"`
	Orders   json.RawMessage `json:"orders"`
}

// Load reads the document. An absent, empty, or whitespace-only file is
// seeded with empty collections before parsing. A missing products/orders
// key, or one that is not an array, is repaired to an empty slice. Anything
// else that fails to parse is a real error.
func (s *FileStore) Load() (*inventory.Document, error) {
	if err := s.ensureExists(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read document %s", s.path)
	}
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse document %s", s.path)
	}
	doc := &inventory.Document{}
	if doc.Products, err = decodeProducts(raw.Products); err != nil {
		return nil, errors.Wrapf(err, "parse products in %s", s.path)
	}
	if doc.Orders, err = decodeOrders(raw.Orders); err != nil {
		return nil, errors.Wrapf(err, "parse orders in %s", s.path)
	}
	return doc, nil
}

// Save serializes the full document and atomically replaces the file via a
// temp file in the same directory plus rename, so a crash mid-write cannot
// leave a truncated document behind.
func (s *FileStore) Save(doc *inventory.Document) error {
	if err := s.save(doc); err != nil {
		metrics.StoreSaveErrors.Inc()
		return err
	}
	return nil
}

func (s *FileStore) save(doc *inventory.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode document")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create data dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp document")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "write temp document")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "close temp document")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replace document %s", s.path)
	}
	return nil
}

// Update runs one mutation cycle: load, apply fn, save. The mutex is held for
// the whole cycle so concurrent writers cannot interleave a load with another
// writer's save. When fn returns an error nothing is saved and the error is
// returned as-is.
func (s *FileStore) Update(fn func(*inventory.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}

func (s *FileStore) ensureExists() error {
	data, err := os.ReadFile(s.path)
	if err == nil && len(bytes.TrimSpace(data)) > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat document %s", s.path)
	}
	empty := &inventory.Document{Products: []inventory.Product{}, Orders: []inventory.Order{}}
	return s.save(empty)
}

func decodeProducts(raw json.RawMessage) ([]inventory.Product, error) {
	if !isArray(raw) {
		return []inventory.Product{}, nil
	}
	var out []inventory.Product
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []inventory.Product{}
	}
	return out, nil
}

func decodeOrders(raw json.RawMessage) ([]inventory.Order, error) {
	if !isArray(raw) {
		return []inventory.Order{}, nil
	}
	var out []inventory.Order
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []inventory.Order{}
	}
	return out, nil
}

// isArray reports whether raw holds a JSON array. Absent keys, null, and
// non-array values are all repaired to empty collections by the callers.
func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
