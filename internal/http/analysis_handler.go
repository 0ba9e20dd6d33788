package http

import (
	"bytes"
	"net/http"

	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/models"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
)

const (
	paramDimension = "dimension"

	codeInvalidDimension = "HTTP_1000"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// DimensionResponse is the body of GET /analysis/{dimension}.
type DimensionResponse struct {
	Source string `json:"source"`
	models.DimensionSummary
	Total    int64 `json:"total"`
	Rejected int64 `json:"rejected"`
}

type analysisSummaryHandler struct {
	analysisService analyzers.AnalysisService
}

func NewAnalysisSummaryHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &analysisSummaryHandler{analysisService: analysisService}
}

// Handle processes GET /analysis: one combined pass over the selected log.
func (h *analysisSummaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.analysisService.Analyze(r.Context(), fileName(r))
	if err != nil {
		return err
	}

	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetRunID(summary.RunID)
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

type dimensionHandler struct {
	analysisService analyzers.AnalysisService
}

func NewDimensionHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &dimensionHandler{analysisService: analysisService}
}

// Handle processes GET /analysis/{dimension}: a single-dimension pass over a fresh source.
func (h *dimensionHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dim, err := models.ParseDimension(chi.URLParam(r, paramDimension))
	if err != nil {
		return svcerrors.NewInvalidArgumentError(codeInvalidDimension,
			"dimension must be one of hour, day, month, year", err)
	}

	engine, err := h.analysisService.NewEngine(r.Context(), fileName(r))
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Analyze(r.Context(), dim); err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); !ok || !svcErr.IsOutOfRange() {
			return err
		}
		loggers.Ctx(r.Context()).Warn().Err(err).Str(loggers.FieldDimension, string(dim)).Msg("records skipped")
	}

	summary, err := engine.DimensionSummary(dim)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, DimensionResponse{
		Source:           fileName(r),
		DimensionSummary: summary,
		Total:            summary.Total(),
		Rejected:         engine.Rejected(dim),
	})
	return nil
}

type hourlyReportHandler struct {
	analysisService analyzers.AnalysisService
}

func NewHourlyReportHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &hourlyReportHandler{analysisService: analysisService}
}

// Handle processes GET /analysis/hourly-report. The body is the plain "Hr: Count" report,
// followed by an ASCII chart when chart=true.
func (h *hourlyReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	engine, err := h.analysisService.NewEngine(r.Context(), fileName(r))
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.AnalyzeHourly(r.Context()); err != nil {
		return err
	}

	// render fully before writing so a failure can still become an error response
	var body bytes.Buffer
	if err := engine.PrintHourlyCounts(&body); err != nil {
		return svcerrors.NewInternalErrorUndefined(err)
	}
	if wantsChart(r) {
		body.WriteByte('\n')
		if err := reports.PlotHourly(&body, engine.HourlyCounts()); err != nil {
			return svcerrors.NewInternalErrorUndefined(err)
		}
	}

	w.Header().Set(headerContentType, contentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
	return nil
}
