package main

import (
	"fmt"
	"os"

	"github.com/tidewell/posh/internal/auditlog"
	"github.com/tidewell/posh/internal/builtin"
	"github.com/tidewell/posh/internal/config"
	"github.com/tidewell/posh/internal/executor"
	"github.com/tidewell/posh/internal/shell"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A child spawned by the executor to run a builtin inside a multi-stage
	// pipeline carries this hidden marker as os.Args[1]; short-circuit
	// straight into that one builtin instead of starting the REPL.
	if len(os.Args) > 1 && os.Args[1] == executor.ReexecMarker {
		reg := builtin.NewRegistry()
		return executor.RunReexecChild(reg, os.Args[2:])
	}

	historyOverride := ""
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("posh %s\n", version)
			return 0
		case "--history":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "posh: --history requires a path argument")
				return 1
			}
			historyOverride = args[i+1]
			i++
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	e := shell.New()
	e.Prompt = cfg.Prompt

	e.HistoryPath = cfg.History.Path
	if h := os.Getenv("HISTFILE"); h != "" {
		e.HistoryPath = h
	}
	if historyOverride != "" {
		e.HistoryPath = historyOverride
	}

	if cfg.Audit.Path != "" {
		logger, err := auditlog.NewLogger(cfg.Audit.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: audit: %v\n", err)
		} else {
			e.Audit = logger
		}
	}

	return e.Run()
}
