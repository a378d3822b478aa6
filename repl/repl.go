// Package repl runs midas interactively. Every line is evaluated against
// one environment that lives as long as the session.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/midas/config"
	"github.com/pontaoski/midas/interpreter"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/midas", "repl")

// Start reads lines from in until EOF or the exit word. Errors are printed
// and the session goes on.
func Start(in io.Reader, out io.Writer, c config.Config) *interpreter.Interpreter {
	scanner := bufio.NewScanner(in)
	intr := interpreter.New(out)

	for {
		fmt.Fprint(out, c.Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				plog.Errorf("reading input: %v", err)
			}
			return intr
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == c.ExitWord {
			fmt.Fprintln(out, c.Farewell)
			return intr
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, ok, err := intr.EvalSource(line)
		if err != nil {
			printError(out, err, c.Trace)
			continue
		}
		if ok {
			fmt.Fprintln(out, v.Format())
		}
	}
}

func printError(out io.Writer, err error, trace bool) {
	if trace {
		fmt.Fprint(out, tracerr.SprintSource(err))
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintln(out, err.Error())
}
