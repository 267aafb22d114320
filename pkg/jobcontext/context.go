package jobcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobBegin derives a job-scoped context with a timeout and the job's
// identity attached. Every pipeline stage runs under this context so a
// stalled provider call cannot hang the worker forever.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, deadlocks, rate limits
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Database deadlock/lock errors (Postgres)
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") || // serialization_failure
		strings.Contains(errStr, "40p01") { // deadlock_detected
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
