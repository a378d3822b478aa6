package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/midas/ast"
	"github.com/pontaoski/midas/codegen"
	"github.com/pontaoski/midas/config"
	"github.com/pontaoski/midas/errors"
	"github.com/pontaoski/midas/interpreter"
	"github.com/pontaoski/midas/lexer"
	"github.com/pontaoski/midas/parser"
	"github.com/pontaoski/midas/repl"
	"github.com/pontaoski/midas/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "main")

const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
	exitIO      = 74
	exitConfig  = 78
)

// loadConfig reads the config file and applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	conf, err := config.Load(path)
	if err != nil {
		return conf, cli.Exit(fmt.Sprintf("error loading %s: %s", path, tracerr.Unwrap(err)), exitConfig)
	}
	if c.IsSet("log-level") {
		conf.LogLevel = c.String("log-level")
	}
	if c.IsSet("trace") {
		conf.Trace = c.Bool("trace")
	}

	level, err := capnslog.ParseLevel(strings.ToUpper(conf.LogLevel))
	if err != nil {
		return conf, cli.Exit(fmt.Sprintf("invalid log level %q", conf.LogLevel), exitConfig)
	}
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, level >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(level)

	return conf, nil
}

func readSource(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("error reading %s: %s", path, err), exitIO)
	}
	return string(data), nil
}

func scanFile(path string) ([]types.Token, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error reading %s: %s", path, err), exitIO)
	}
	defer handle.Close()

	return lexer.NewLexer(handle, path).Scan()
}

func parseFile(path string) ([]ast.Stmt, error) {
	tokens, err := scanFile(path)
	if err != nil {
		return nil, err
	}
	return parser.NewParser(tokens).Parse()
}

// exitCode maps a pipeline error to the process exit status.
func exitCode(err error) int {
	kind, ok := errors.KindOf(err)
	switch {
	case !ok:
		return 1
	case kind.Static():
		return exitStatic
	default:
		return exitRuntime
	}
}

// report turns a pipeline error into a cli exit error, printing a trace
// first when asked to.
func report(err error, trace bool) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(cli.ExitCoder); ok {
		return err
	}
	if trace {
		tracerr.PrintSourceColor(err)
	}
	return cli.Exit(err.Error(), exitCode(err))
}

func runFile(c *cli.Context, path string, out io.Writer) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	src, err := readSource(path)
	if err != nil {
		return err
	}

	intr := interpreter.New(out)
	err = intr.RunSource(src)

	if c.Bool("env") {
		for _, key := range intr.Environment().Keys() {
			v, _ := intr.Environment().Get(key)
			fmt.Fprintf(out, "%s = %s\n", key, repr.String(v))
		}
	}

	return report(err, conf.Trace)
}

func startRepl(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	repl.Start(os.Stdin, c.App.Writer, conf)
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		ExitErrHandler: func(c *cli.Context, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				cli.HandleExitCoder(err)
				return
			}
			plog.Fatal(err)
		},
		Name:      "midas",
		Usage:     "midas language interpreter",
		ArgsUsage: "[script]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
				EnvVars: []string{"MIDAS_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "print errors with their stack trace",
				EnvVars: []string{"MIDAS_TRACE"},
			},
		},
		Action: func(c *cli.Context) error {
			switch c.NArg() {
			case 0:
				return startRepl(c)
			case 1:
				return runFile(c, c.Args().First(), c.App.Writer)
			}
			return cli.Exit("usage: midas [script]", exitUsage)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a script",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "env",
						Usage: "print the variable bindings after running",
					},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: midas run <script>", exitUsage)
					}
					return runFile(c, c.Args().First(), c.App.Writer)
				},
			},
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Action: startRepl,
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a script",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump"},
				},
				Action: func(c *cli.Context) error {
					conf, err := loadConfig(c)
					if err != nil {
						return err
					}
					tokens, err := scanFile(c.Args().First())
					if err != nil {
						return report(err, conf.Trace)
					}
					if c.Bool("dump") {
						repr.New(c.App.Writer).Println(tokens)
						return nil
					}
					for _, tok := range tokens {
						fmt.Fprintln(c.App.Writer, tok)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a script",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump"},
				},
				Action: func(c *cli.Context) error {
					conf, err := loadConfig(c)
					if err != nil {
						return err
					}
					stmts, err := parseFile(c.Args().First())
					if err != nil {
						return report(err, conf.Trace)
					}
					if c.Bool("dump") {
						repr.New(c.App.Writer).Println(stmts)
						return nil
					}
					for _, stmt := range stmts {
						fmt.Fprintln(c.App.Writer, ast.PrintStatement(stmt))
					}
					return nil
				},
			},
			{
				Name:      "llvm",
				Usage:     "lower a numeric script to LLVM IR",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write the module here instead of stdout",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := loadConfig(c)
					if err != nil {
						return err
					}
					stmts, err := parseFile(c.Args().First())
					if err != nil {
						return report(err, conf.Trace)
					}
					module, err := codegen.Lower(stmts)
					if err != nil {
						return report(err, conf.Trace)
					}

					out := c.String("output")
					if out == "" {
						fmt.Fprint(c.App.Writer, module.String())
						return nil
					}
					plog.Infof("writing %s", out)
					if err := ioutil.WriteFile(out, []byte(module.String()), 0644); err != nil {
						return cli.Exit(fmt.Sprintf("error writing %s: %s", out, err), exitIO)
					}
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if _, err := os.Stat(path); err == nil {
						return cli.Exit(fmt.Sprintf("%s already exists", path), 1)
					}
					if err := config.Default().Save(path); err != nil {
						return cli.Exit(fmt.Sprintf("error creating %s: %s", path, err), exitIO)
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
