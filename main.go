package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/slate-lang/slate/lang"
	"github.com/slate-lang/slate/parser"
)

// Exit codes follow the sysexits convention: 64 usage, 65 static error,
// 70 runtime error.
const (
	exitUsage        = 64
	exitStaticError  = 65
	exitRuntimeError = 70
)

func main() {
	app := cli.NewApp()
	app.Name = "slate"
	app.Usage = "tree-walking interpreter for the Slate scripting language"
	app.ArgsUsage = "[script]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "tokens",
			Usage: "dump the token stream instead of executing",
		},
		cli.BoolFlag{
			Name:  "ast",
			Usage: "dump the parenthesized AST instead of executing",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return cli.NewExitError("Usage: slate [script]", exitUsage)
	}

	sess := newSession(os.Stdout, os.Stderr)
	sess.dumpTokens = ctx.Bool("tokens")
	sess.dumpAST = ctx.Bool("ast")

	if ctx.NArg() == 0 {
		if isInteractive() {
			runREPL(sess)
			return nil
		}
		// Piped input runs as a script.
		return sess.runStdin()
	}

	path := ctx.Args().First()
	if path == "-" {
		return sess.runStdin()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("slate: %v", err), exitUsage)
	}
	return sess.exitError(sess.runSource(string(src)))
}

// session ties one interpreter to one diagnostics reporter for the lifetime
// of a script run or an interactive session. The REPL reuses the session so
// the global environment persists across lines.
type session struct {
	interp     *lang.Interpreter
	reporter   *reporter
	out        io.Writer
	dumpTokens bool
	dumpAST    bool
}

func newSession(out, errOut io.Writer) *session {
	return &session{
		interp:   lang.NewInterpreter(out),
		reporter: newReporter(errOut),
		out:      out,
	}
}

// runSource scans, parses and interprets one chunk of source text. Lexical
// and syntax errors are reported in a batch after the full scan/parse pass;
// a runtime error is reported when interpretation halts on it.
func (s *session) runSource(src string) (hadError, hadRuntimeError bool) {
	tokens, scanErrs := parser.Scan(src)
	if s.dumpTokens {
		s.reportAll(scanErrs)
		for _, tok := range tokens {
			fmt.Fprintln(s.out, tok)
		}
		return len(scanErrs) > 0, false
	}

	stmts, parseErrs := parser.Parse(tokens)
	s.reportAll(scanErrs)
	s.reportAll(parseErrs)
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		return true, false
	}

	if s.dumpAST {
		fmt.Fprintln(s.out, parser.AstPrinter{}.Print(stmts))
		return false, false
	}

	if err := s.interp.Interpret(stmts, nil); err != nil {
		s.reporter.report(err)
		return false, true
	}
	return false, false
}

func (s *session) runStdin() error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("slate: %v", err), exitUsage)
	}
	return s.exitError(s.runSource(string(src)))
}

func (s *session) exitError(hadError, hadRuntimeError bool) error {
	switch {
	case hadError:
		return cli.NewExitError("", exitStaticError)
	case hadRuntimeError:
		return cli.NewExitError("", exitRuntimeError)
	default:
		return nil
	}
}

func (s *session) reportAll(errs []*parser.Error) {
	for _, e := range errs {
		s.reporter.report(e)
	}
}

// reporter writes diagnostics to the given writer, in red when it is a
// terminal (fatih/color disables itself for plain writers and pipes).
type reporter struct {
	w   io.Writer
	red *color.Color
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, red: color.New(color.FgRed)}
}

func (r *reporter) report(err error) {
	r.red.Fprintln(r.w, err.Error())
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
