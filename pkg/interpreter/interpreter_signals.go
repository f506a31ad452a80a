package interpreter

import (
	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

// Control flow travels up the evaluator as error values; a nil error is the
// normal state.

type breakSignal struct {
	node *ast.Break
}

func (breakSignal) Error() string {
	return "break"
}

type continueSignal struct {
	node *ast.Continue
}

func (continueSignal) Error() string {
	return "continue"
}

type returnSignal struct {
	value *runtime.Cell
}

func (returnSignal) Error() string {
	return "return"
}

// escapeError converts a loop signal that reached a call boundary or the top
// level into a ControlFlowEscape error.
func escapeError(err error) error {
	switch sig := err.(type) {
	case breakSignal:
		return newRuntimeError(sig.node, ControlFlowEscape, "break outside of a loop")
	case continueSignal:
		return newRuntimeError(sig.node, ControlFlowEscape, "continue outside of a loop")
	}
	return err
}
