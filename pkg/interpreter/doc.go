// Package interpreter executes dscript syntax trees directly.
//
// Values live in shared handles (runtime.Cell). Declarations, call
// arguments and container literal elements bind the handle an expression
// produced, and assignment overwrites a handle's contents, so aliases
// observe each other's writes. Break, continue and return travel up the
// evaluator as error values and are consumed by loops and call boundaries.
package interpreter
