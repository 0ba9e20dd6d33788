package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"
	headerRunID       = "x-analysis-run-id"

	queryFile  = "file"
	queryChart = "chart"

	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// fileName returns the log file selected by the request; empty selects the default log.
func fileName(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get(queryFile))
}

func wantsChart(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(queryChart))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
