package errors

// ErrorCode is a stable machine-readable error identifier returned to API
// clients. Codes never change meaning once published.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS

	ErrorCode_MEDIA_UNSUPPORTED_FORMAT
	ErrorCode_MEDIA_FILE_TOO_LARGE
	ErrorCode_MEDIA_EMPTY_FILE

	ErrorCode_DUPLICATE_MEETING
	ErrorCode_QUEUE_BUSY
	ErrorCode_JOB_NOT_CANCELLABLE

	ErrorCode_CAPABILITY_TRANSCRIPTION
	ErrorCode_CAPABILITY_SUMMARIZATION
	ErrorCode_CAPABILITY_UNAVAILABLE

	ErrorCode_INVALID_TRANSITION

	ErrorCode_REPORT_EXPORT_FAILED

	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED

	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:          "UNKNOWN",
	ErrorCode_INTERNAL:         "INTERNAL",
	ErrorCode_INVALID_ARGUMENT: "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:        "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:   "ALREADY_EXISTS",

	ErrorCode_MEDIA_UNSUPPORTED_FORMAT: "MEDIA_UNSUPPORTED_FORMAT",
	ErrorCode_MEDIA_FILE_TOO_LARGE:     "MEDIA_FILE_TOO_LARGE",
	ErrorCode_MEDIA_EMPTY_FILE:         "MEDIA_EMPTY_FILE",

	ErrorCode_DUPLICATE_MEETING:   "DUPLICATE_MEETING",
	ErrorCode_QUEUE_BUSY:          "QUEUE_BUSY",
	ErrorCode_JOB_NOT_CANCELLABLE: "JOB_NOT_CANCELLABLE",

	ErrorCode_CAPABILITY_TRANSCRIPTION: "CAPABILITY_TRANSCRIPTION",
	ErrorCode_CAPABILITY_SUMMARIZATION: "CAPABILITY_SUMMARIZATION",
	ErrorCode_CAPABILITY_UNAVAILABLE:   "CAPABILITY_UNAVAILABLE",

	ErrorCode_INVALID_TRANSITION: "INVALID_TRANSITION",

	ErrorCode_REPORT_EXPORT_FAILED: "REPORT_EXPORT_FAILED",

	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",

	ErrorCode_DB_CONNECTION_FAILED:  "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED: "DB_TRANSACTION_FAILED",
}

// String returns the stable name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
