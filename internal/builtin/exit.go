package builtin

import (
	"fmt"
	"os"
	"strconv"
)

// Exit terminates the shell with the given status, defaulting to 0.
func Exit(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	code := 0
	if len(argv) > 1 {
		n, err := strconv.Atoi(argv[1])
		if err != nil {
			fmt.Fprintf(stderr, "exit: %s: numeric argument required\n", argv[1])
			c.RequestExit(2)
			return 2
		}
		code = n
	}
	c.RequestExit(code)
	return code
}
