package sources

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
)

const maxLineBytes = 1024 * 1024

const (
	skipReasonMalformed = "malformed"
	skipReasonFiltered  = "filtered"
)

// logfileReader streams access records from one stored log file. Records are parsed
// one line ahead of the caller so HasNext can skip unusable lines.
type logfileReader struct {
	storage filestorages.FileStorage
	name    string
	format  string
	codec   compressions.Codec
	parser  LineParser
	logger  loggers.Logger

	file    io.ReadCloser
	stream  io.ReadCloser
	scanner *bufio.Scanner

	lineNo  int
	pending *models.AccessRecord
	done    bool
	err     error
}

func newLogfileReader(ctx context.Context, storage filestorages.FileStorage, name, format string, codec compressions.Codec, parser LineParser) (*logfileReader, error) {
	file, err := storage.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	stream, err := compressions.NewReader(codec, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return &logfileReader{
		storage: storage,
		name:    name,
		format:  format,
		codec:   codec,
		parser:  parser,
		logger:  loggers.Ctx(ctx).With().Str(loggers.FieldSource, name).Logger(),
		file:    file,
		stream:  stream,
		scanner: scanner,
	}, nil
}

func (s *logfileReader) HasNext() bool {
	if s.pending != nil {
		return true
	}
	if s.done {
		return false
	}
	s.advance()
	return s.pending != nil
}

func (s *logfileReader) Next() (models.AccessRecord, error) {
	if !s.HasNext() {
		return models.AccessRecord{}, ErrSourceExhausted
	}
	record := *s.pending
	s.pending = nil
	return record, nil
}

// advance scans forward to the next parsable line, or marks the source done.
func (s *logfileReader) advance() {
	for s.scanner.Scan() {
		s.lineNo++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record, err := s.parser.Parse(line)
		if err != nil {
			if errors.Is(err, ErrFilteredRecord) {
				metricLinesSkippedTotal.WithLabelValues(s.format, skipReasonFiltered).Inc()
				continue
			}
			metricLinesSkippedTotal.WithLabelValues(s.format, skipReasonMalformed).Inc()
			s.logger.Warn().Err(err).Int(loggers.FieldLine, s.lineNo).Msg("skipping unparsable log line")
			continue
		}

		metricRecordsReadTotal.WithLabelValues(s.format).Inc()
		s.pending = &record
		return
	}

	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("failed to read %q at line %d: %w", s.name, s.lineNo+1, err)
	}
	s.done = true
	_ = s.Close()
}

// Dump re-reads the stored file from the start, so the iteration position is untouched.
func (s *logfileReader) Dump(w io.Writer) error {
	file, err := s.storage.Get(context.Background(), s.name)
	if err != nil {
		return fmt.Errorf("failed to reopen %q: %w", s.name, err)
	}
	defer file.Close()

	stream, err := compressions.NewReader(s.codec, file)
	if err != nil {
		return err
	}
	defer stream.Close()

	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("failed to dump %q: %w", s.name, err)
	}
	return nil
}

func (s *logfileReader) Err() error {
	return s.err
}

func (s *logfileReader) Close() error {
	if s.file == nil {
		return nil
	}
	streamErr := s.stream.Close()
	fileErr := s.file.Close()
	s.file, s.stream = nil, nil
	s.done = true
	return errors.Join(streamErr, fileErr)
}
