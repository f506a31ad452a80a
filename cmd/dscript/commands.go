package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/driver"
)

// sourceArg returns the file named on the command line, falling back to the
// configured entry when allowed.
func (env *cliEnv) sourceArg(c *cli.Context, allowEntry bool) (string, error) {
	switch c.NArg() {
	case 0:
		if allowEntry {
			if entry := env.config.EntryPath(); entry != "" {
				return entry, nil
			}
		}
		return "", usageError("%s requires a source file", c.Command.Name)
	case 1:
		return c.Args().First(), nil
	default:
		return "", usageError("%s accepts a single source file", c.Command.Name)
	}
}

func (env *cliEnv) readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(env.stderr, env.errorColor()(fmt.Sprintf("error: read %s: %v", path, err)))
		return "", failed()
	}
	return string(data), nil
}

func runCommand(env *cliEnv, c *cli.Context) error {
	path, err := env.sourceArg(c, true)
	if err != nil {
		return err
	}
	source, err := env.readSource(path)
	if err != nil {
		return err
	}
	diags, err := env.pipeline().Run(path, source, env.stdin, env.stdout)
	env.printDiagnostics(diags)
	if err != nil {
		return failed()
	}
	return nil
}

// checkCommand always runs the semantic checks, whatever the configuration
// says.
func checkCommand(env *cliEnv, c *cli.Context) error {
	path, err := env.sourceArg(c, true)
	if err != nil {
		return err
	}
	source, err := env.readSource(path)
	if err != nil {
		return err
	}
	p := env.pipeline()
	program, diags, err := p.Parse(path, source)
	if err != nil {
		env.printDiagnostics(diags)
		return failed()
	}
	diags = p.Check(path, program)
	env.printDiagnostics(diags)
	if driver.HasErrors(diags) {
		return failed()
	}
	fmt.Fprintf(env.stdout, "%s: ok\n", path)
	return nil
}

func astCommand(env *cliEnv, c *cli.Context) error {
	path, err := env.sourceArg(c, false)
	if err != nil {
		return err
	}
	source, err := env.readSource(path)
	if err != nil {
		return err
	}
	p := env.pipeline()
	program, diags, err := p.Parse(path, source)
	if err != nil {
		env.printDiagnostics(diags)
		return failed()
	}
	if c.Bool("optimized") {
		p.Optimize(path, program)
	}
	if c.Bool("json") {
		err = ast.Encode(env.stdout, program)
	} else {
		err = ast.Dump(env.stdout, program)
	}
	if err != nil {
		return &exitCode{code: exitError, err: err}
	}
	return nil
}

// execJSONCommand runs a tree produced by `ast --json`. Semantic checks
// still apply when enabled, since the tree may have been written by hand.
func execJSONCommand(env *cliEnv, c *cli.Context) error {
	path, err := env.sourceArg(c, false)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(env.stderr, env.errorColor()(fmt.Sprintf("error: open %s: %v", path, err)))
		return failed()
	}
	program, err := ast.Decode(file)
	file.Close()
	if err != nil {
		fmt.Fprintln(env.stderr, env.errorColor()(fmt.Sprintf("error: decode %s: %v", path, err)))
		return failed()
	}
	p := env.pipeline()
	if env.config.Check {
		diags := p.Check(path, program)
		env.printDiagnostics(diags)
		if driver.HasErrors(diags) {
			return failed()
		}
	}
	diags, err := p.Execute(path, program, env.stdin, env.stdout)
	env.printDiagnostics(diags)
	if err != nil {
		return failed()
	}
	return nil
}
