package runtime

import "fmt"

// ErrorKind classifies runtime failures.
type ErrorKind string

const (
	ErrTypeMismatch         ErrorKind = "TypeMismatch"
	ErrKeyConflict          ErrorKind = "KeyConflict"
	ErrUndefinedVariable    ErrorKind = "UndefinedVariable"
	ErrArityMismatch        ErrorKind = "ArityMismatch"
	ErrIndexOutOfRange      ErrorKind = "IndexOutOfRange"
	ErrKeyNotFound          ErrorKind = "KeyNotFound"
	ErrNotBoolean           ErrorKind = "NotBoolean"
	ErrRangeBoundNotInteger ErrorKind = "RangeBoundNotInteger"
	ErrControlFlowEscape    ErrorKind = "ControlFlowEscape"
	ErrDivisionByZero       ErrorKind = "DivisionByZero"
	ErrStackOverflow        ErrorKind = "StackOverflow"
	ErrInput                ErrorKind = "InputError"
	ErrInternal             ErrorKind = "Internal"
)

// Error is raised by value and scope operations. It carries no source
// location; the interpreter attaches one when it surfaces the error.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
