package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/urfave/cli.v1"

	"dscript/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// exitCode carries the process status out of a command action. It does not
// implement cli.ExitCoder, so the cli package never calls os.Exit itself.
type exitCode struct {
	code int
	err  error
}

func (e *exitCode) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func usageError(format string, args ...any) error {
	return &exitCode{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func failed() error {
	return &exitCode{code: exitError}
}

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "configuration file (default: nearest dscript.yml, dscript.yaml or dscript.toml)",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level: trace, debug, info, warn, error (overrides log_level)",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored diagnostics",
	}
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWithIO(args, os.Stdin, os.Stdout, os.Stderr)
}

func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cliEnv{stdin: stdin, stdout: stdout, stderr: stderr}
	app := newApp(env)
	err := app.Run(append([]string{app.Name}, args...))
	if err == nil {
		return exitOK
	}
	var exit *exitCode
	if errors.As(err, &exit) {
		if exit.err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", app.Name, exit.err)
		}
		return exit.code
	}
	fmt.Fprintf(stderr, "%s: %v\n", app.Name, err)
	return exitUsage
}

func newApp(env *cliEnv) *cli.App {
	app := cli.NewApp()
	app.Name = "dscript"
	app.Usage = "run and inspect dscript programs"
	app.Version = cliToolVersion
	app.Writer = env.stdout
	app.ErrWriter = env.stderr
	app.HideVersion = true
	app.Flags = []cli.Flag{configFlag, logLevelFlag, noColorFlag}
	app.Action = func(c *cli.Context) error {
		if c.NArg() > 0 {
			return usageError("unknown command %q", c.Args().First())
		}
		cli.ShowAppHelp(c)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "compile and execute a program",
			ArgsUsage: "[FILE]",
			Action:    env.action(runCommand),
		},
		{
			Name:      "check",
			Usage:     "parse a program and report semantic diagnostics",
			ArgsUsage: "FILE",
			Action:    env.action(checkCommand),
		},
		{
			Name:      "ast",
			Usage:     "print the syntax tree of a program",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "json", Usage: "emit the JSON encoding"},
				cli.BoolFlag{Name: "optimized", Usage: "print the tree after optimization"},
			},
			Action: env.action(astCommand),
		},
		{
			Name:      "exec-json",
			Usage:     "execute a JSON-encoded syntax tree",
			ArgsUsage: "FILE",
			Action:    env.action(execJSONCommand),
		},
		{
			Name:   "repl",
			Usage:  "start an interactive session",
			Action: env.action(replCommand),
		},
		{
			Name:  "version",
			Usage: "print the version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(env.stdout, "%s %s\n", app.Name, cliToolVersion)
				return nil
			},
		},
	}
	return app
}

// cliEnv holds the streams and the settings resolved from flags and the
// configuration file.
type cliEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config  driver.Config
	logger  zerolog.Logger
	noColor bool
}

func (env *cliEnv) action(fn func(*cliEnv, *cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if err := env.setup(c); err != nil {
			return err
		}
		return fn(env, c)
	}
}

func (env *cliEnv) setup(c *cli.Context) error {
	env.noColor = c.GlobalBool(noColorFlag.Name)

	path := c.GlobalString(configFlag.Name)
	if path == "" {
		found, err := driver.FindConfig(".")
		if err != nil {
			return &exitCode{code: exitError, err: err}
		}
		path = found
	}
	env.config = driver.DefaultConfig()
	if path != "" {
		cfg, err := driver.LoadConfig(path)
		if err != nil {
			return &exitCode{code: exitError, err: err}
		}
		env.config = cfg
	}

	if level := c.GlobalString(logLevelFlag.Name); level != "" {
		if _, err := zerolog.ParseLevel(level); err != nil {
			return usageError("invalid --log-level %q", level)
		}
		env.config.LogLevel = level
	}
	env.logger = zerolog.New(zerolog.ConsoleWriter{Out: env.stderr, NoColor: env.noColor}).
		Level(env.config.Level()).
		With().Timestamp().Logger()
	env.logger.Debug().Str("config", env.config.Path).Msg("configuration resolved")
	return nil
}

func (env *cliEnv) pipeline() *driver.Pipeline {
	return driver.NewPipeline(env.config, driver.WithLogger(env.logger))
}
