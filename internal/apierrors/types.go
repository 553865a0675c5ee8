package apierrors

import "net/http"

// Category labels one failure class from the error taxonomy. Categories are
// part of the HTTP API surface; the UI switches remediation text on them.
type Category string

const (
	CategoryClientConstruction Category = "client_construction_error"
	CategoryModelUnsupported   Category = "model_unsupported"
	CategoryQuotaExceeded      Category = "quota_exceeded"
	CategoryGenerationFailed   Category = "generation_failed"
	CategoryExportUnavailable  Category = "export_unavailable"
	CategoryInvalidRequest     Category = "invalid_request"
)

// Error is the user-facing error carried across component boundaries.
// Message is shown verbatim, Hint carries remediation guidance, and Trace
// holds operator-grade detail (upstream status line, body excerpt) that the
// UI only reveals inside the diagnostics panel.
type Error struct {
	Category Category
	Message  string
	Hint     string
	Trace    string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps a category to the status the presentation surface returns.
func (e *Error) HTTPStatus() int {
	switch e.Category {
	case CategoryClientConstruction:
		return http.StatusUnauthorized
	case CategoryModelUnsupported, CategoryInvalidRequest:
		return http.StatusBadRequest
	case CategoryQuotaExceeded:
		return http.StatusTooManyRequests
	case CategoryExportUnavailable:
		return http.StatusNotImplemented
	default:
		return http.StatusBadGateway
	}
}

// NewClientConstruction reports a credential rejected at client-build time.
// Fatal for the operation that tried to build the client.
func NewClientConstruction(message string) *Error {
	return &Error{
		Category: CategoryClientConstruction,
		Message:  message,
		Hint:     "Check the API key and enter it again.",
	}
}

// NewInvalidRequest reports caller input rejected before any upstream call.
func NewInvalidRequest(message string) *Error {
	return &Error{Category: CategoryInvalidRequest, Message: message}
}

// NewExportUnavailable reports a missing optional export capability.
func NewExportUnavailable(message string) *Error {
	return &Error{
		Category: CategoryExportUnavailable,
		Message:  message,
		Hint:     "The plain-text download remains available.",
	}
}
