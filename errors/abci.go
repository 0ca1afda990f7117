package errors

import (
	"errors"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that the
	// processing was successful and no error is returned.
	SuccessABCICode = 0

	// All unclassified errors that do not provide an ABCI code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the ABCI error information as consumed by the tendermint
// client. Returned code and log message should be used as a ABCI response.
// Any error that does not provide ABCICode information is categorized as error
// with code 1.
// When not running in a debug mode all messages of errors that do not provide
// ABCICode information are replaced with generic "internal error". Errors
// without an ABCICode information as considered internal.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}

	// Recovered panics may carry system details.
	if !debug && ErrPanic.Is(err) {
		return internalABCICode, internalABCILog
	}

	// Only non-internal errors information can be exposed. Any error that
	// does not explicitly expose its state by providing and ABCI error
	// code must be silenced.
	if code := abciCode(err); code != internalABCICode {
		return code, err.Error()
	}

	if debug {
		return internalABCICode, err.Error()
	}

	// For internal errors hide the original error message and return
	// generic data.
	return internalABCICode, internalABCILog
}

type coder interface {
	ABCICode() uint32
}

// abciCode test if given error contains an ABCI code and returns the value of
// it if available. This function is testing for the causer interface as well
// and unwraps the error.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// Redact replace all errors that do not originate from a registered root error with a
// generic internal error instance. This function is supposed to hide
// implementation details errors and leave only those that this package
// declares.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalABCILog)
	}
	if abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError returns an error instance for the given code and log. If the code
// is a registered one, the returned error wraps that root error so that Is
// comparisons work on errors reconstructed from ABCI responses.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok && code != internalABCICode {
		return &wrappedError{parent: e, msg: trimDesc(log, e.desc)}
	}
	return &wrappedError{parent: &Error{code: code, desc: "unknown"}, msg: log}
}

// trimDesc drops the root description suffix that Error() appends, so that
// the message is not duplicated once rewrapped.
func trimDesc(log, desc string) string {
	suffix := ": " + desc
	if len(log) > len(suffix) && log[len(log)-len(suffix):] == suffix {
		return log[:len(log)-len(suffix)]
	}
	return log
}
