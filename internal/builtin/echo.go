package builtin

import (
	"fmt"
	"os"
	"strings"
)

// Echo writes its arguments joined by single spaces, terminated by a
// newline.
func Echo(c *Context, argv []string, stdin, stdout, stderr *os.File) int {
	fmt.Fprintln(stdout, strings.Join(argv[1:], " "))
	return 0
}
