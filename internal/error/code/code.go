package code

// HTTP status codes.
const (
	// StatusOK - 200
	StatusOK = 200
	// StatusBadRequest - 400
	StatusBadRequest = 400
	// StatusUnauthorized - 401
	StatusUnauthorized = 401
	// StatusForbidden - 403
	StatusForbidden = 403
	// StatusNotFound - 404
	StatusNotFound = 404
	// StatusTooManyRequests - 429
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503
	StatusServiceUnavailable = 503
)

// General codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unexpected failure.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request failed validation.
	ErrValidation
	// ErrTokenMissing - 401: no bearer token.
	ErrTokenMissing
	// ErrTokenInvalid - 401: bad or expired bearer token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limited.
	ErrTooManyRequests
)

// Professional codes (101xxx).
const (
	// ErrProfessionalNotFound - 404
	ErrProfessionalNotFound int = iota + 101000
	// ErrForbidden - 403: authorization rule violated.
	ErrForbidden
	// ErrTaskSummaryNotFound - 404
	ErrTaskSummaryNotFound
	// ErrInvalidCredentials - 401: login failed.
	ErrInvalidCredentials
)

// Drill codes (102xxx).
const (
	// ErrDrillInvalid - 400: payload is not a JSON value.
	ErrDrillInvalid int = iota + 102000
)

// Store codes (105xxx).
const (
	// ErrDatabase - 500: backend call failed.
	ErrDatabase int = iota + 105000
	// ErrBackendUnavailable - 503: health check failed.
	ErrBackendUnavailable
)
