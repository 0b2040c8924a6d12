package builtin

import (
	"fmt"
	"os"
)

// Cd changes the current working directory. A bare "~" is replaced by
// $HOME. No argument, or an empty argument, is a no-op.
func Cd(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	if len(argv) < 2 || argv[1] == "" {
		return 0
	}
	path := argv[1]
	if path == "~" {
		path = os.Getenv("HOME")
	}

	if err := os.Chdir(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "cd: %s: No such file or directory\n", argv[1])
		} else {
			fmt.Fprintf(stderr, "cd: %s: %v\n", argv[1], err)
		}
		return 1
	}
	return 0
}
