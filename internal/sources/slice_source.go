package sources

import (
	"fmt"
	"io"

	"log-analyzer/internal/models"
)

// SliceSource is a materialized RecordSource over an in-memory record list.
// Each SliceSource has its own position, so several can share one slice.
type SliceSource struct {
	records []models.AccessRecord
	pos     int
}

func NewSliceSource(records []models.AccessRecord) *SliceSource {
	return &SliceSource{records: records}
}

// Collect drains src into a slice. Useful when the same records must feed several engines.
func Collect(src RecordSource) ([]models.AccessRecord, error) {
	var records []models.AccessRecord
	for src.HasNext() {
		record, err := src.Next()
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, src.Err()
}

func (s *SliceSource) HasNext() bool {
	return s.pos < len(s.records)
}

func (s *SliceSource) Next() (models.AccessRecord, error) {
	if !s.HasNext() {
		return models.AccessRecord{}, ErrSourceExhausted
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}

func (s *SliceSource) Dump(w io.Writer) error {
	for _, record := range s.records {
		if _, err := fmt.Fprintln(w, record.String()); err != nil {
			return err
		}
	}
	return nil
}

func (s *SliceSource) Err() error { return nil }

func (s *SliceSource) Close() error { return nil }
