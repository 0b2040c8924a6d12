package builtin

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tidewell/posh/internal/history"
)

// History manages the shell's HistoryStore: printing all or the last N
// entries, or reading/writing/appending a history file.
func History(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	if len(argv) < 2 {
		printEntries(stdout, c.History.All())
		return 0
	}

	switch argv[1] {
	case "-r":
		if len(argv) < 3 {
			fmt.Fprintln(stderr, "history: -r requires a file argument")
			return 1
		}
		if err := c.History.LoadFile(argv[2]); err != nil {
			fmt.Fprintf(stderr, "history: %v\n", err)
			return 1
		}
		return 0
	case "-w":
		if len(argv) < 3 {
			fmt.Fprintln(stderr, "history: -w requires a file argument")
			return 1
		}
		if err := c.History.SaveFile(argv[2]); err != nil {
			fmt.Fprintf(stderr, "history: %v\n", err)
			return 1
		}
		return 0
	case "-a":
		if len(argv) < 3 {
			fmt.Fprintln(stderr, "history: -a requires a file argument")
			return 1
		}
		if err := c.History.AppendUnwritten(argv[2]); err != nil {
			fmt.Fprintf(stderr, "history: %v\n", err)
			return 1
		}
		return 0
	default:
		n, err := strconv.Atoi(argv[1])
		if err != nil || n < 0 {
			fmt.Fprintf(stderr, "history: %s: invalid option\n", argv[1])
			return 1
		}
		printEntries(stdout, c.History.Last(n))
		return 0
	}
}

func printEntries(stdout *os.File, entries []history.Entry) {
	for _, e := range entries {
		fmt.Fprintf(stdout, "%5d  %s\n", e.Index, e.Line)
	}
}
