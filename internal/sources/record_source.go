package sources

import (
	"context"
	"errors"
	"io"

	"log-analyzer/internal/models"
)

var (
	// ErrSourceExhausted is returned by Next when HasNext would report false.
	ErrSourceExhausted = errors.New("record source exhausted")
	// ErrInvalidSourceName is returned by Open for names that escape the storage root.
	ErrInvalidSourceName = errors.New("invalid source name")
)

// RecordSource is a lazy, forward-only sequence of access records. Once HasNext reports
// false it keeps doing so; a fresh sequence needs a new source from an Opener.
// A RecordSource must not be consumed from more than one goroutine.
//
//go:generate mockgen -source=record_source.go -destination=./mocks/record_source_mock.go -package=mocks
type RecordSource interface {
	// HasNext reports whether at least one more record remains.
	HasNext() bool
	// Next returns the next record and advances. It returns ErrSourceExhausted when no record remains.
	Next() (models.AccessRecord, error)
	// Dump writes the raw underlying lines to w without moving the iteration position.
	Dump(w io.Writer) error
	// Err returns the read error that ended the sequence early, if any.
	Err() error
	// Close releases the underlying file. It is safe to call more than once.
	Close() error
}

// Opener acquires a RecordSource bound to a named log. An empty name selects the default log.
type Opener interface {
	Open(ctx context.Context, name string) (RecordSource, error)
	DefaultName() string
}
