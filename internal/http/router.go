package http

import (
	"net/http"

	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	summaryHandler := NewAnalysisSummaryHandler(analysisService)
	dimensionHandler := NewDimensionHandler(analysisService)
	hourlyReportHandler := NewHourlyReportHandler(analysisService)

	router.Get("/analysis", errorHandlingAdapter(summaryHandler))
	router.Get("/analysis/hourly-report", errorHandlingAdapter(hourlyReportHandler))
	router.Get("/analysis/{"+paramDimension+"}", errorHandlingAdapter(dimensionHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
