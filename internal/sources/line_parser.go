package sources

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"log-analyzer/internal/models"

	"github.com/mileusna/useragent"
	"github.com/valyala/fastjson"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrMalformedLine  = errors.New("malformed log line")
	ErrFilteredRecord = errors.New("record filtered")
	ErrUnknownFormat  = errors.New("unknown log format")
)

// LineParser turns one non-empty log line into an AccessRecord.
type LineParser interface {
	Parse(line string) (models.AccessRecord, error)
}

// NewLineParser returns the parser for format. excludeBots only applies to formats that
// carry a user agent.
func NewLineParser(format string, excludeBots bool) (LineParser, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return &textLineParser{}, nil
	case FormatJSON:
		return &jsonLineParser{excludeBots: excludeBots}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// textLineParser reads "year month day hour minute" with any trailing fields ignored.
type textLineParser struct{}

func (p *textLineParser) Parse(line string) (models.AccessRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return models.AccessRecord{}, fmt.Errorf("%w: expected 5 date fields, got %d", ErrMalformedLine, len(fields))
	}

	var values [5]int
	for i := range values {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return models.AccessRecord{}, fmt.Errorf("%w: field %d: %w", ErrMalformedLine, i+1, err)
		}
		values[i] = v
	}

	record := models.AccessRecord{Year: values[0], Month: values[1], Day: values[2], Hour: values[3], Minute: values[4]}
	if err := validateRecord(record); err != nil {
		return models.AccessRecord{}, err
	}
	return record, nil
}

// jsonLineParser reads one JSON object per line. The timestamp comes from "receivedAt"
// (RFC3339) or from explicit year/month/day/hour/minute numbers.
type jsonLineParser struct {
	parser      fastjson.Parser
	excludeBots bool
}

func (p *jsonLineParser) Parse(line string) (models.AccessRecord, error) {
	v, err := p.parser.Parse(line)
	if err != nil {
		return models.AccessRecord{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	if v.Type() != fastjson.TypeObject {
		return models.AccessRecord{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedLine)
	}

	if p.excludeBots {
		if ua := string(v.GetStringBytes("userAgent")); ua != "" && useragent.Parse(ua).Bot {
			return models.AccessRecord{}, ErrFilteredRecord
		}
	}

	var record models.AccessRecord
	if receivedAt := v.GetStringBytes("receivedAt"); receivedAt != nil {
		t, err := time.Parse(time.RFC3339, string(receivedAt))
		if err != nil {
			return models.AccessRecord{}, fmt.Errorf("%w: receivedAt: %w", ErrMalformedLine, err)
		}
		t = t.UTC()
		record = models.AccessRecord{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}
	} else {
		for _, key := range []string{"year", "month", "day", "hour"} {
			if !v.Exists(key) {
				return models.AccessRecord{}, fmt.Errorf("%w: missing receivedAt or %s", ErrMalformedLine, key)
			}
		}
		record = models.AccessRecord{
			Year:   v.GetInt("year"),
			Month:  v.GetInt("month"),
			Day:    v.GetInt("day"),
			Hour:   v.GetInt("hour"),
			Minute: v.GetInt("minute"),
		}
	}

	if err := validateRecord(record); err != nil {
		return models.AccessRecord{}, err
	}
	return record, nil
}

// validateRecord enforces the field ranges the source guarantees to its consumers.
func validateRecord(r models.AccessRecord) error {
	switch {
	case r.Year <= 0:
		return fmt.Errorf("%w: year %d", ErrMalformedLine, r.Year)
	case r.Month < 1 || r.Month > 12:
		return fmt.Errorf("%w: month %d", ErrMalformedLine, r.Month)
	case r.Day < 1 || r.Day > 31:
		return fmt.Errorf("%w: day %d", ErrMalformedLine, r.Day)
	case r.Hour < 0 || r.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrMalformedLine, r.Hour)
	case r.Minute < 0 || r.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrMalformedLine, r.Minute)
	}
	return nil
}
