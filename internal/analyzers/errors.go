package analyzers

import (
	"errors"
	"fmt"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/svcerrors"
)

// ErrOutOfRange marks a record field outside the bucket range of its dimension:
// day 29-31 in the 28-day model or a year outside the 7-year window.
var ErrOutOfRange = errors.New("value out of modeled range")

const (
	codeRecordsOutOfRange = "ANL_1000"
	codeNotYetAnalyzed    = "ANL_1001"
	codeInvalidSourceName = "ANL_1002"
	codeSourceNotFound    = "ANL_1003"

	codeInternalSourceOpenFailed = "ANL_9000"
	codeInternalSourceReadFailed = "ANL_9001"
	codeInternalSourceDumpFailed = "ANL_9002"
)

// errRecordsOutOfRange reports how many records a pass rejected; cause is the first rejection.
func errRecordsOutOfRange(rejected int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewOutOfRangeError(codeRecordsOutOfRange,
		fmt.Sprintf("%d record(s) outside the modeled calendar window were not counted", rejected), cause)
}

// errNotYetAnalyzed returns an error when a dimension is queried before its pass ran.
func errNotYetAnalyzed(dimension models.Dimension) *svcerrors.ServiceError {
	return svcerrors.NewFailedPreconditionError(codeNotYetAnalyzed,
		fmt.Sprintf("%s data has not been analyzed", dimension), nil)
}

func errInvalidSourceName(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidSourceName, "invalid log file name", cause)
}

func errSourceNotFound(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSourceNotFound, fmt.Sprintf("log file %q not found", name), cause)
}

// errInternalSourceOpenFailed returns an error when a record source cannot be acquired.
func errInternalSourceOpenFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourceOpenFailed, fmt.Errorf("sourceOpenFailed: %w", cause))
}

// errInternalSourceReadFailed returns an error when a record source fails mid-stream.
func errInternalSourceReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourceReadFailed, fmt.Errorf("sourceReadFailed: %w", cause))
}

func errInternalSourceDumpFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourceDumpFailed, fmt.Errorf("sourceDumpFailed: %w", cause))
}
