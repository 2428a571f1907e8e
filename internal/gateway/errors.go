package gateway

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a failed backend call. Every non-2xx response
// and every transport failure is normalized into exactly one kind so
// callers never inspect raw HTTP statuses.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServer       ErrorKind = "server"
	KindUnreachable  ErrorKind = "unreachable"
	KindFileTransfer ErrorKind = "file_transfer"
)

// APIError is the single error shape surfaced by the gateway.
type APIError struct {
	Kind         ErrorKind
	Message      string
	HTTPStatus   int
	ServerDetail string
	Fields       map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, joinFields(e.Fields))
	}
	if e.ServerDetail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.ServerDetail)
	}
	return e.Message
}

func joinFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}

func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsUnreachable(err error) bool  { return IsKind(err, KindUnreachable) }
func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
