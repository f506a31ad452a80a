package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

// ErrorKind classifies a RuntimeError.
type ErrorKind = runtime.ErrorKind

const (
	TypeMismatch         = runtime.ErrTypeMismatch
	KeyConflict          = runtime.ErrKeyConflict
	UndefinedVariable    = runtime.ErrUndefinedVariable
	ArityMismatch        = runtime.ErrArityMismatch
	IndexOutOfRange      = runtime.ErrIndexOutOfRange
	KeyNotFound          = runtime.ErrKeyNotFound
	NotBoolean           = runtime.ErrNotBoolean
	RangeBoundNotInteger = runtime.ErrRangeBoundNotInteger
	ControlFlowEscape    = runtime.ErrControlFlowEscape
	DivisionByZero       = runtime.ErrDivisionByZero
	StackOverflow        = runtime.ErrStackOverflow
	InputError           = runtime.ErrInput
	Internal             = runtime.ErrInternal
)

// RuntimeError halts a program run. Span locates the node being evaluated;
// Calls lists the call sites the error unwound through, innermost first.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Span    ast.Span
	Calls   []ast.Span
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	if !e.Span.IsZero() {
		fmt.Fprintf(&b, "%s: ", e.Span)
	}
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	return b.String()
}

// IsKind reports whether err is a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr.Kind == kind
	}
	return false
}

func newRuntimeError(node ast.Node, kind ErrorKind, format string, args ...any) *RuntimeError {
	err := &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Span = node.Span()
	}
	return err
}

// locate lifts value and scope errors into RuntimeErrors positioned at node.
// Control signals and already-positioned errors pass through untouched.
func locate(node ast.Node, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal, *RuntimeError:
		return err
	}
	var rtErr *runtime.Error
	if errors.As(err, &rtErr) {
		return newRuntimeError(node, rtErr.Kind, "%s", rtErr.Message)
	}
	return newRuntimeError(node, Internal, "%v", err)
}
