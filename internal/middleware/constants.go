// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

// RequestIDHeader is read from the request and echoed on every response.
const RequestIDHeader = "X-Request-ID"
