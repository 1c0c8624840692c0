package errors

// Panic recovery for the per-fold workers: a panicking estimator must
// surface as a structured error on the Fit call, not take down the process.

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error built from a recovered panic. It carries the
// original panic value and the stack at the point of the panic.
type PanicError struct {
	// PanicValue is the original value passed to panic().
	PanicValue interface{}

	// StackTrace is the stack captured when the panic was recovered.
	StackTrace string

	// Operation identifies where the panic was recovered.
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns nil; a PanicError does not wrap another error.
func (e *PanicError) Unwrap() error {
	return nil
}

// NewPanicError captures the current stack and wraps the panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error on the deferring function's named
// error return:
//
//	func SomeMethod() (err error) {
//	    defer Recover(&err, "SomeMethod")
//	    ...
//	}
//
// If the function already holds an error, the panic information wraps it.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)",
				operation, r, *err)
			return
		}
		*err = NewPanicError(operation, r)
	}
}
