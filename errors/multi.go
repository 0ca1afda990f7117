package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If an error is a multi error (was created with Append), it is flattened into
// the result, so that the structure stays one level deep.
func Append(errs ...error) error {
	var all []error
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if me, ok := err.(*multiErr); ok {
			all = append(all, me.errs...)
			continue
		}
		all = append(all, err)
	}

	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return &multiErr{errs: all}
}

type multiErr struct {
	errs []error
}

func (e *multiErr) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e.errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors that this multi error is made of.
func (e *multiErr) Unpack() []error {
	return e.errs
}

// ABCICode returns the code of the first error, following the fail-fast
// approach of a single error.
func (e *multiErr) ABCICode() uint32 {
	return abciCode(e.errs[0])
}

// unpacker is implemented by errors that consist of more than one error.
type unpacker interface {
	Unpack() []error
}
