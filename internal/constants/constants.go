package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRole      = "role"
	ContextKeyUsername  = "username"
	ContextKeyRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

const MinPasswordLength = 6

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Bounds for the hours reported in a single time log entry (inclusive)
const (
	MinLogHours = 1
	MaxLogHours = 24
)

const DuplicateProjectSuffix = " (Copy)"
