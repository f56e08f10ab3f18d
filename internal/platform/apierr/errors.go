package apierr

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind is the machine-readable discriminator carried by every API error.
type Kind string

const (
	KindInvalidParameters   Kind = "InvalidParameters"
	KindUnsupportedField    Kind = "UnsupportedField"
	KindNotFound            Kind = "NotFound"
	KindUnshareableData     Kind = "UnshareableData"
	KindInternalServerError Kind = "InternalServerError"
)

// Error is a single API error. Zero-valued optional fields are omitted from
// the wire envelope; the HTTP status is transport metadata and is never
// serialized.
type Error struct {
	Kind       Kind     `json:"kind"`
	Message    string   `json:"message"`
	Parameters []string `json:"parameters,omitempty"`
	Field      string   `json:"field,omitempty"`
	Entity     string   `json:"entity,omitempty"`
	Reason     string   `json:"reason,omitempty"`

	status int
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Status returns the HTTP status code the error maps to.
func (e *Error) Status() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// Envelope is the wire shape of every error response.
type Envelope struct {
	Errors []*Error `json:"errors"`
}

// InvalidParameters reports one or more unusable request parameters, e.g. a
// pagination window that cannot be converted to an offset.
func InvalidParameters(parameters []string, reason string) *Error {
	plural := ""
	if len(parameters) > 1 {
		plural = "s"
	}
	return &Error{
		Kind:       KindInvalidParameters,
		Message:    fmt.Sprintf("Invalid value for parameter%s '%s': %s", plural, strings.Join(parameters, "', '"), reason),
		Parameters: parameters,
		Reason:     reason,
		status:     http.StatusUnprocessableEntity,
	}
}

// Validation reports malformed input with a bare message. It shares the
// InvalidParameters kind but carries no parameter list.
func Validation(message string) *Error {
	return &Error{
		Kind:    KindInvalidParameters,
		Message: message,
		status:  http.StatusUnprocessableEntity,
	}
}

// UnsupportedField reports a filter or grouping field that failed the
// allowlist for the given entity kind.
func UnsupportedField(field, kind string) *Error {
	reason := fmt.Sprintf("This field is not present for %ss.", strings.ToLower(kind))
	return &Error{
		Kind:    KindUnsupportedField,
		Message: fmt.Sprintf("Field '%s' is not supported: %s", field, reason),
		Field:   field,
		Reason:  reason,
		status:  http.StatusUnprocessableEntity,
	}
}

// NotFound reports a lookup that matched nothing. kind is the title-cased
// entity kind, identifier the dotted org.namespace.name the caller asked for.
func NotFound(kind, identifier string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Entity:  kind,
		status:  http.StatusNotFound,
	}
}

// UnshareableData reports entities this server may not expose at line level.
// entity is the title-cased plural, e.g. "Subjects".
func UnshareableData(entity string) *Error {
	reason := "Our agreement with data providers prohibits us from sharing line-level data."
	return &Error{
		Kind:    KindUnshareableData,
		Message: fmt.Sprintf("Unable to share data for %s: %s", strings.ToLower(entity), reason),
		Entity:  entity,
		Reason:  reason,
		status:  http.StatusNotFound,
	}
}

// Internal reports a failure whose detail belongs in logs, not in responses.
func Internal() *Error {
	return &Error{
		Kind:    KindInternalServerError,
		Message: "An internal error occurred.",
		status:  http.StatusInternalServerError,
	}
}
