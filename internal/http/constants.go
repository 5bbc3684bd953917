package http

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-Id"
	ValueJson         = "application/json"
)
