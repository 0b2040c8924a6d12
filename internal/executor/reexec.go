package executor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/tidewell/posh/internal/builtin"
	"github.com/tidewell/posh/internal/history"
)

// ReexecMarker is the hidden first argument that tells cmd/posh's main to
// short-circuit straight into a single builtin invocation rather than start
// the REPL. It is never typed by a user; the executor is the only thing
// that ever constructs a command line carrying it.
const ReexecMarker = "posh-exec-builtin"

// reexecCmd builds the *exec.Cmd that re-invokes the running binary to run
// argv[0] (a builtin name) as an isolated child process, standing in for
// argv itself as that child's command line.
func reexecCmd(argv []string) (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(argv)+1)
	args = append(args, ReexecMarker)
	args = append(args, argv...)
	return exec.Command(exe, args...), nil
}

// RunReexecChild is the entry point cmd/posh calls when os.Args[1] is
// ReexecMarker: argv is the original stage argument vector (argv[0] is the
// builtin name), and the builtin runs against a fresh, empty history store
// scoped to this one process. It returns the process exit status to use.
func RunReexecChild(reg *builtin.Registry, argv []string) int {
	if len(argv) == 0 {
		return 127
	}
	fn, ok := reg.Lookup(argv[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: command not found\n", argv[0])
		return 127
	}
	ctx := &builtin.Context{History: history.New(), Registry: reg}
	return fn(ctx, argv, os.Stdin, os.Stdout, os.Stderr)
}
