package generators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/validators"
)

// CreateResult describes a generated log file.
type CreateResult struct {
	FileKey     string
	Records     int
	Size        int64
	Compression compressions.Codec
}

// Options configures a LogfileCreator.
type Options struct {
	BaseYear    int
	Seed        uint64 // 0 picks a random seed
	Compression compressions.Codec
	Overwrite   bool
}

type LogfileCreator interface {
	// Create writes count random access records, oldest first, to the file key.
	Create(ctx context.Context, key string, count int) (*CreateResult, error)
}

type logfileCreator struct {
	storage filestorages.FileStorage
	opts    Options
}

func NewLogfileCreator(storage filestorages.FileStorage, opts Options) LogfileCreator {
	return &logfileCreator{storage: storage, opts: opts}
}

func (c *logfileCreator) Create(ctx context.Context, key string, count int) (*CreateResult, error) {
	logger := loggers.Ctx(ctx)

	result, err := c.create(ctx, key, count)
	if err != nil {
		metricFilesCreatedTotal.WithLabelValues(errorCode(err)).Inc()
		return nil, err
	}

	metricFilesCreatedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricRecordsWrittenTotal.Add(float64(result.Records))
	logger.Info().
		Str(loggers.FieldSource, result.FileKey).
		Int("records", result.Records).
		Int64("size", result.Size).
		Msg("created log file")
	return result, nil
}

func (c *logfileCreator) create(ctx context.Context, key string, count int) (*CreateResult, error) {
	if count < 1 {
		return nil, errInvalidRecordCount(count)
	}
	if !validators.IsRelPath(key) {
		return nil, errInvalidFileName(key, nil)
	}
	codec, err := compressions.Resolve(c.opts.Compression, key)
	if err != nil {
		return nil, errInvalidFileName(key, err)
	}

	records := c.generate(count)

	var buf bytes.Buffer
	w, err := compressions.NewWriter(codec, &buf)
	if err != nil {
		return nil, errInternalWriteFailed(err)
	}
	for _, record := range records {
		if _, err := fmt.Fprintln(w, record.String()); err != nil {
			return nil, errInternalWriteFailed(err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, errInternalWriteFailed(err)
	}

	put, err := c.storage.Put(ctx, key, &buf, filestorages.PutOptions{AllowOverwrite: c.opts.Overwrite})
	if err != nil {
		switch {
		case errors.Is(err, filestorages.ErrFileAlreadyExists):
			return nil, errFileAlreadyExists(key, err)
		case errors.Is(err, filestorages.ErrInvalidKey):
			return nil, errInvalidFileName(key, err)
		default:
			return nil, errInternalWriteFailed(err)
		}
	}

	return &CreateResult{
		FileKey:     put.FileKey,
		Records:     len(records),
		Size:        put.Size,
		Compression: codec,
	}, nil
}

// generate draws records uniformly from the modeled calendar: the seven years from
// BaseYear, 28-day months, every hour and minute. The result is sorted oldest first.
func (c *logfileCreator) generate(count int) []models.AccessRecord {
	seed := c.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	records := make([]models.AccessRecord, count)
	for i := range records {
		records[i] = models.AccessRecord{
			Year:   c.opts.BaseYear + rng.IntN(models.YearsInWindow),
			Month:  1 + rng.IntN(models.MonthsPerYear),
			Day:    1 + rng.IntN(models.DaysPerMonth),
			Hour:   rng.IntN(models.HoursPerDay),
			Minute: rng.IntN(60),
		}
	}
	slices.SortFunc(records, models.CompareAccessRecords)
	return records
}
