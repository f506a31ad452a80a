package main

import (
	"fmt"

	"github.com/fatih/color"

	"dscript/interpreter-go/pkg/driver"
)

func (env *cliEnv) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if env.noColor {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (env *cliEnv) errorColor() func(a ...interface{}) string {
	return env.paint(color.FgRed, color.Bold)
}

func (env *cliEnv) warningColor() func(a ...interface{}) string {
	return env.paint(color.FgYellow)
}

func (env *cliEnv) printDiagnostics(diags []driver.Diagnostic) {
	for _, diag := range diags {
		text := driver.DescribeDiagnostic(diag)
		if diag.Severity == driver.SeverityWarning {
			fmt.Fprintln(env.stderr, env.warningColor()(text))
		} else {
			fmt.Fprintln(env.stderr, env.errorColor()(text))
		}
	}
}
