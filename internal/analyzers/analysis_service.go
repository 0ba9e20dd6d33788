package analyzers

import (
	"context"
	"errors"
	"io"
	"time"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
	"log-analyzer/internal/sources"
)

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// NewEngine acquires a fresh source for name (empty selects the default log) and
	// returns an engine over it. The caller owns the engine and must Close it.
	NewEngine(ctx context.Context, name string) (*Engine, error)
	// Analyze runs a combined pass over a fresh source and summarizes every dimension.
	Analyze(ctx context.Context, name string) (*models.AnalysisSummary, error)
	// Dump writes the raw lines of name to w.
	Dump(ctx context.Context, name string, w io.Writer) error
}

type analysisService struct {
	opener   sources.Opener
	baseYear int
	now      func() time.Time
}

func NewAnalysisService(opener sources.Opener, baseYear int) AnalysisService {
	return &analysisService{
		opener:   opener,
		baseYear: baseYear,
		now:      time.Now,
	}
}

func (s *analysisService) NewEngine(ctx context.Context, name string) (*Engine, error) {
	source, err := s.opener.Open(ctx, name)
	if err != nil {
		return nil, s.mapOpenError(name, err)
	}
	return NewEngine(source, s.baseYear), nil
}

func (s *analysisService) Analyze(ctx context.Context, name string) (*models.AnalysisSummary, error) {
	if name == "" {
		name = s.opener.DefaultName()
	}
	runID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldRunID, runID).
		Str(loggers.FieldSource, name).
		Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Msg("started analysis")

	engine, err := s.NewEngine(ctx, name)
	if err != nil {
		s.countRun(err)
		return nil, err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close record source")
		}
	}()

	if err := engine.AnalyzeAll(ctx); err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); !ok || !svcErr.IsOutOfRange() {
			s.countRun(err)
			return nil, err
		}
		// partial data is still a valid analysis; the rejections travel in the summary
		logger.Warn().Err(err).Msg("records outside the modeled window were skipped")
	}

	summary, err := engine.Summary()
	if err != nil {
		s.countRun(err)
		return nil, err
	}
	summary.RunID = runID
	summary.Source = name
	summary.AnalyzedAt = s.now().UTC()

	metricAnalysisRunsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Info().
		Int64("accesses", summary.NumberOfAccesses).
		Int("busiestTwoHour", summary.BusiestTwoHour).
		Msg("completed analysis")
	return summary, nil
}

func (s *analysisService) Dump(ctx context.Context, name string, w io.Writer) error {
	source, err := s.opener.Open(ctx, name)
	if err != nil {
		return s.mapOpenError(name, err)
	}
	defer source.Close()

	if err := source.Dump(w); err != nil {
		return errInternalSourceDumpFailed(err)
	}
	return nil
}

func (s *analysisService) mapOpenError(name string, err error) error {
	if name == "" {
		name = s.opener.DefaultName()
	}
	switch {
	case errors.Is(err, sources.ErrInvalidSourceName):
		return errInvalidSourceName(err)
	case errors.Is(err, filestorages.ErrFileNotFound):
		return errSourceNotFound(name, err)
	default:
		return errInternalSourceOpenFailed(err)
	}
}

func (s *analysisService) countRun(err error) {
	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		svcErr = svcerrors.NewInternalErrorUndefined(err)
	}
	metricAnalysisRunsTotal.WithLabelValues(svcErr.Code).Inc()
}
