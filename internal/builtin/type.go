package builtin

import (
	"fmt"
	"os"

	"github.com/tidewell/posh/internal/resolver"
)

// Type reports, for each name given, whether it is a shell builtin, an
// external found on PATH (with its resolved path), or not found. Overall
// status is nonzero if any name was unresolved.
func Type(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	if len(argv) < 2 {
		fmt.Fprintln(stderr, "type: usage: type name [name ...]")
		return 1
	}

	status := 0
	for _, name := range argv[1:] {
		switch {
		case c.Registry.Has(name):
			fmt.Fprintf(stdout, "%s is a shell builtin\n", name)
		default:
			if path, ok := resolver.Lookup(name, os.Getenv("PATH")); ok {
				fmt.Fprintf(stdout, "%s is %s\n", name, path)
			} else {
				fmt.Fprintf(stdout, "%s: not found\n", name)
				status = 1
			}
		}
	}
	return status
}
