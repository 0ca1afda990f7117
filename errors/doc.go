/*
Package errors implements the error categories used by all custody packages.

Reuse the root errors declared in this package whenever possible and declare
custom package errors only when a client must be able to tell them apart. Use
Register(code, description) to declare a new root error, Errxxx.New and
Errxxx.Newf to create an instance.

The code of the root error is the ABCI code returned to the client. Errors
that do not wrap a registered root error are reported as internal errors and
their message is redacted unless running in debug mode.

Create an error using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of failure so that a stack trace is attached. Wrapping multiple times
records the stack trace only once.

Formatting:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

Use Field to describe a problem with a single attribute of a model and
Append to return all validation problems at once.
*/
package errors
