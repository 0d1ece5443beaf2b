package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error collects field-level validation failures keyed by JSON field name.
// Strike legs use indexed keys such as "strikes[1].lots".
type Error struct {
	Fields map[string]string
}

// Error renders the failures sorted by field so messages are stable.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", field, e.Fields[field])
	}
	return b.String()
}

// Has reports whether field failed validation.
func (e *Error) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// collected wraps a failure map as an *Error, or returns nil when it is empty.
func collected(errors map[string]string) error {
	if len(errors) == 0 {
		return nil
	}
	return &Error{Fields: errors}
}
