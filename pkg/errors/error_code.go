package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidTimestamp     ErrorCode = 102
	ErrCodeInvalidInterval      ErrorCode = 103
	ErrCodeInvalidWindow        ErrorCode = 104
	ErrCodeInvalidSession       ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106

	// Data/Resource errors (200-299)
	ErrCodeNoData       ErrorCode = 200
	ErrCodeEmptyRange   ErrorCode = 201
	ErrCodeDataNotFound ErrorCode = 202

	// Ingestion errors (300-399)
	ErrCodeIngestFailed   ErrorCode = 300
	ErrCodeFileReadFailed ErrorCode = 301
	ErrCodeNoInputFiles   ErrorCode = 302

	// Output errors (400-499)
	ErrCodeWriteFailed    ErrorCode = 400
	ErrCodeFinalizeFailed ErrorCode = 401
	ErrCodeWriterClosed   ErrorCode = 402
)
