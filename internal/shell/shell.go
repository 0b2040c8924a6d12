// Package shell implements the interactive read-parse-execute loop: it
// binds the line editor, tokenizer, pipeline splitter, redirection parser,
// command resolver, executor, and history store into one REPL, the way
// cmd/posh starts it.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tidewell/posh/internal/auditlog"
	"github.com/tidewell/posh/internal/builtin"
	"github.com/tidewell/posh/internal/completion"
	"github.com/tidewell/posh/internal/executor"
	"github.com/tidewell/posh/internal/history"
	"github.com/tidewell/posh/internal/pipeline"
	"github.com/tidewell/posh/internal/token"
)

// Engine holds the runtime state of one interactive session.
type Engine struct {
	Registry    *builtin.Registry
	Ctx         *builtin.Context
	Executor    *executor.Executor
	History     *history.Store
	Audit       *auditlog.Logger // nil if disabled
	Prompt      string
	HistoryPath string

	terminal *readline.Instance
}

// New wires a fresh Engine: a registry, a history store, and an executor
// bound to them. Callers set HistoryPath/Audit/Prompt before calling Run.
func New() *Engine {
	reg := builtin.NewRegistry()
	hist := history.New()
	ctx := &builtin.Context{History: hist, Registry: reg}
	return &Engine{
		Registry: reg,
		Ctx:      ctx,
		Executor: executor.New(reg, ctx),
		History:  hist,
		Prompt:   "$ ",
	}
}

// Run loads history, opens the terminal, and reads/executes lines until
// EOF or an `exit` builtin requests termination. It returns the process
// exit status.
func (e *Engine) Run() int {
	if e.HistoryPath == "" {
		e.HistoryPath = os.Getenv("HISTFILE")
	}
	if e.HistoryPath != "" {
		e.History.LoadFile(e.HistoryPath) // soft-fail: missing/unreadable history is not an error
	}

	term, err := readline.NewEx(&readline.Config{
		Prompt:          e.Prompt,
		AutoComplete:    &autocompleter{registry: e.Registry},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 1
	}
	defer term.Close()
	e.terminal = term

	status := e.loop()
	e.saveHistoryOnExit()
	return status
}

func (e *Engine) loop() int {
	for {
		line, err := e.terminal.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue // SIGINT during read discards the partial line and reprompts
			}
			if errors.Is(err, io.EOF) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		e.History.Add(line)
		e.execute(line)

		if requested, code := e.Ctx.ExitRequested(); requested {
			return normalizeStatus(code)
		}
	}
}

// execute tokenizes, splits, resolves, and runs one line, reporting parse
// errors to stderr the way spec's error-handling design requires, and
// logging the run to the audit log when one is configured.
func (e *Engine) execute(line string) int {
	start := time.Now()
	status, _ := e.run(line)
	if e.Audit != nil {
		cwd, _ := os.Getwd()
		if logErr := e.Audit.Log(line, status, time.Since(start), cwd); logErr != nil {
			fmt.Fprintf(os.Stderr, "posh: audit: %v\n", logErr)
		}
	}
	return status
}

func (e *Engine) run(line string) (int, error) {
	stageStrings, err := pipeline.Split(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 2, err
	}

	stages := make([]pipeline.Stage, 0, len(stageStrings))
	for _, raw := range stageStrings {
		toks, err := token.Tokenize(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			return 2, err
		}
		stage, err := pipeline.ParseStage(toks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
			return 2, err
		}
		stages = append(stages, stage)
	}

	return e.Executor.Run(stages, os.Stdin, os.Stdout, os.Stderr)
}

func (e *Engine) saveHistoryOnExit() {
	if e.HistoryPath == "" {
		return
	}
	if err := e.History.SaveFile(e.HistoryPath); err != nil {
		fmt.Fprintf(os.Stderr, "posh: history: %v\n", err)
	}
}

func normalizeStatus(code int) int {
	if code < 0 {
		return 0
	}
	return code
}

// autocompleter adapts completion.Complete to chzyer/readline's
// AutoCompleter interface, completing the last whitespace-delimited word
// on the line.
type autocompleter struct {
	registry *builtin.Registry
}

func (a *autocompleter) Do(line []rune, pos int) ([][]rune, int) {
	word := currentWord(line, pos)
	matches := completion.Complete(word, a.registry.Names(), os.Getenv("PATH"))

	suggestions := make([][]rune, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, []rune(m[len(word):]))
	}
	return suggestions, len(word)
}

func currentWord(line []rune, pos int) string {
	start := pos
	for start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
		start--
	}
	return string(line[start:pos])
}
