package builtin

import (
	"fmt"
	"os"
)

// Pwd writes the current working directory followed by a newline.
func Pwd(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "pwd: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, dir)
	return 0
}
