package constants

// Context keys for values shared between middleware and handlers
const (
	ContextKeyContact   = "contact"
	ContextKeyRawBody   = "rawBody"
	ContextKeyRequestID = "RequestID"
)
