package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/slate-lang/slate/parser"
)

// runREPL drives the interactive read-eval-print loop. The session's global
// environment persists across lines, and input whose errors stem from an
// early end (open block, unterminated string) keeps buffering under a
// continuation prompt instead of reporting.
func runREPL(sess *session) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "slate> "
		if buffer.Len() > 0 {
			prompt = "  ...> "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}

		tokens, scanErrs := parser.Scan(src)
		stmts, parseErrs := parser.Parse(tokens)
		if parser.HasIncomplete(scanErrs) || parser.HasIncomplete(parseErrs) {
			continue
		}

		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))

		if len(scanErrs) > 0 || len(parseErrs) > 0 {
			sess.reportAll(scanErrs)
			sess.reportAll(parseErrs)
			continue
		}
		sess.runInteractive(stmts)
	}
}

// runInteractive executes a parsed REPL line. A lone expression statement is
// echoed: its value prints even without an explicit print statement.
func (s *session) runInteractive(stmts []parser.Stmt) {
	if len(stmts) == 1 {
		if es, ok := stmts[0].(*parser.ExpressionStmt); ok {
			val, err := s.interp.Evaluate(es.Expression, nil)
			if err != nil {
				s.reporter.report(err)
				return
			}
			fmt.Fprintln(s.out, val.String())
			return
		}
	}
	if err := s.interp.Interpret(stmts, nil); err != nil {
		s.reporter.report(err)
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".slate_history")
}
