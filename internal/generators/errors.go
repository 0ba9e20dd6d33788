package generators

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeInvalidRecordCount = "GEN_1000"
	codeInvalidFileName    = "GEN_1001"
	codeFileAlreadyExists  = "GEN_1002"

	codeInternalWriteFailed = "GEN_9000"
)

func errInvalidRecordCount(count int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRecordCount,
		fmt.Sprintf("record count must be at least 1, got %d", count), nil)
}

func errInvalidFileName(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFileName, fmt.Sprintf("invalid log file name %q", key), cause)
}

// errFileAlreadyExists returns an error when the target exists and overwriting is off.
func errFileAlreadyExists(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewFailedPreconditionError(codeFileAlreadyExists, fmt.Sprintf("log file %q already exists", key), cause)
}

func errInternalWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalWriteFailed, fmt.Errorf("logfileWriteFailed: %w", cause))
}

func errorCode(err error) string {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code
	}
	return svcerrors.NewInternalErrorUndefined(err).Code
}
