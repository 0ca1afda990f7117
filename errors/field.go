package errors

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Field attaches a message field name to err. It returns nil if err is nil.
//
// Field names follow the Go name of the struct field, for example
// Beneficiary or Deadline. Nested fields use a dot, as in Amount.Whole, and
// list elements use their index, as in Amount.0.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	// Only the innermost wrap records the stack.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, cause: err}
}

// AppendField adds the failure of a single field to errs. Both may be nil,
// which lets Validate methods chain every field check.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.cause)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
}

func (e *fieldError) Cause() error {
	return e.cause
}

// Field returns the name of the failed field.
func (e *fieldError) Field() string {
	return e.name
}

type fielder interface {
	Field() string
}

// FieldErrors returns the errors created for the given field. The search
// goes through wrapped and multi errors and stops at the first field error
// with a matching name on every branch.
func FieldErrors(err error, name string) []error {
	var res []error
	walkFields(err, func(f error, field string) bool {
		if field != name {
			return true
		}
		res = append(res, f)
		return false
	})
	return res
}

// FieldNames returns the sorted names of all fields that failed in err.
// Only the outermost field error of every branch is reported, so a nested
// Amount.Whole failure wrapped as Amount is listed as Amount.
func FieldNames(err error) []string {
	seen := make(map[string]struct{})
	walkFields(err, func(_ error, field string) bool {
		seen[field] = struct{}{}
		return false
	})
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// walkFields calls visit for every field error found in err. Returning false
// from visit stops descending into the cause of that field error.
func walkFields(err error, visit func(err error, field string) bool) {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok {
			if !visit(err, f.Field()) {
				return
			}
		}
		// A multi error lists all its children, its cause is one of them.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				walkFields(e, visit)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}
