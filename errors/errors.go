package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return AppError{}, false
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

// Media Validation Errors
func ErrUnsupportedFormat(filename string, allowed []string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MEDIA_UNSUPPORTED_FORMAT,
		Message:  "Unsupported media format",
	}.WithDetail("filename", filename).
		WithDetail("allowed", fmt.Sprintf("%v", allowed))
}

func ErrFileTooLarge(size, limit int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_MEDIA_FILE_TOO_LARGE,
		Message:  "Media file exceeds size limit",
	}.WithDetail("size", fmt.Sprintf("%d", size)).
		WithDetail("limit", fmt.Sprintf("%d", limit))
}

func ErrEmptyFile(filename string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MEDIA_EMPTY_FILE,
		Message:  "Media file is empty",
	}.WithDetail("filename", filename)
}

// Ingestion Errors
func ErrDuplicateMeeting(filename string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_DUPLICATE_MEETING,
		Message:  "Meeting already processed for this filename",
	}.WithDetail("filename", filename)
}

func ErrQueueBusy() AppError {
	return AppError{
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_QUEUE_BUSY,
		Message:  "Ingestion queue is full, try again later",
	}
}

func ErrJobNotFound(jobID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Job not found",
	}.WithDetail("job_id", jobID)
}

func ErrJobNotCancellable(jobID, state string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_JOB_NOT_CANCELLABLE,
		Message:  "Job already finished",
	}.WithDetail("job_id", jobID).WithDetail("state", state)
}

// Capability Errors
func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_CAPABILITY_TRANSCRIPTION,
		Message:  "Audio transcription failed",
	}
}

func ErrSummarizationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_CAPABILITY_SUMMARIZATION,
		Message:  "Failed to generate meeting minutes",
	}
}

func ErrCapabilityUnavailable(capability string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_CAPABILITY_UNAVAILABLE,
		Message:  "Inference capability temporarily unavailable",
	}.WithDetail("capability", capability)
}

// Lifecycle Errors
func ErrActionNotFound(actionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Action not found",
	}.WithDetail("action_id", actionID)
}

func ErrInvalidTransition(actionID, current string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_INVALID_TRANSITION,
		Message:  "Action is not in a completable state",
	}.WithDetail("action_id", actionID).WithDetail("current_status", current)
}

func ErrMeetingNotFound(filename string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("filename", filename)
}

// Report Errors
func ErrReportExportFailed(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_EXPORT_FAILED,
		Message:  "Failed to export report",
	}.WithDetail("format", format)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:  fmt.Sprintf("External API call failed: %s", service),
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}
