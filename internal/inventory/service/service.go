package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroom/stockroom/internal/inventory"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// ValidationError marks request-level failures (missing fields, bad numbers,
// duplicate ids, unknown product references). The handler layer maps it to a
// 400 response; everything else is surfaced as a server error.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func badRequestf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// DocumentStore is the persistence contract the service needs: plain loads
// for reads and serialized load/mutate/save cycles for writes.
type DocumentStore interface {
	Load() (*inventory.Document, error)
	Update(fn func(*inventory.Document) error) error
}

// Service implements the inventory business operations over the document
// store. Validation and referential integrity run entirely inside the store's
// mutation cycle so no half-validated state is ever persisted.
type Service struct {
	store DocumentStore
}

func New(store DocumentStore) *Service {
	return &Service{store: store}
}

// newID builds a prefixed short random id, e.g. "p-3f9c01ab". Caller-supplied
// ids are used verbatim instead and only checked against their own collection.
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
