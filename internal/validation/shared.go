package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// Error is a field-level validation failure. Fields maps the JSON field name to
// a human readable message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// fromOzzo converts ozzo-validation output into *Error. Internal rule errors are
// returned unchanged.
func fromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var internal ozzo.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return &Error{Fields: map[string]string{"_": err.Error()}}
	}

	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return &Error{Fields: fields}
}
