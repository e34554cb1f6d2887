package code

var codeMessageMap = map[int]string{
	ErrSuccess:         "Success",
	ErrUnknown:         "Internal server error",
	ErrBind:            "Invalid request body",
	ErrValidation:      "Invalid request parameters",
	ErrTokenMissing:    "Authentication required",
	ErrTokenInvalid:    "Invalid or expired token",
	ErrTooManyRequests: "Too many requests",

	ErrProfessionalNotFound: "Professional not found",
	ErrForbidden:            "Insufficient permissions",
	ErrTaskSummaryNotFound:  "Task summary not found",
	ErrInvalidCredentials:   "Invalid email or password",

	ErrDrillInvalid: "Drill must be a JSON value",

	ErrDatabase:           "Server error",
	ErrBackendUnavailable: "Storage backend unavailable",
}

var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenMissing:    StatusUnauthorized,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrProfessionalNotFound: StatusNotFound,
	ErrForbidden:            StatusForbidden,
	ErrTaskSummaryNotFound:  StatusNotFound,
	ErrInvalidCredentials:   StatusUnauthorized,

	ErrDrillInvalid: StatusBadRequest,

	ErrDatabase:           StatusInternalServerError,
	ErrBackendUnavailable: StatusServiceUnavailable,
}

// GetMessage returns the client-facing message of a code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus returns the HTTP status of a code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
