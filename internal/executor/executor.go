// Package executor wires a parsed Pipeline to real stdio: builtins run
// in-process for a single, non-piped stage, external programs run via
// os/exec, and multi-stage pipelines are connected with real OS pipes.
// A builtin that sits inside a multi-stage pipeline is spawned as a real
// child process (see reexec.go) so it cannot mutate the parent shell's
// state — the Go substitute for fork() described in the design notes.
package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/tidewell/posh/internal/builtin"
	"github.com/tidewell/posh/internal/pipeline"
	"github.com/tidewell/posh/internal/resolver"
)

// ErrUnresolvedCommand is returned when a pipeline stage's command name is
// neither a registered builtin nor found on PATH.
var ErrUnresolvedCommand = errors.New("command not found")

// Executor runs pipelines against a fixed builtin registry and context.
type Executor struct {
	Registry *builtin.Registry
	Ctx      *builtin.Context
}

// New returns an Executor bound to reg and ctx.
func New(reg *builtin.Registry, ctx *builtin.Context) *Executor {
	return &Executor{Registry: reg, Ctx: ctx}
}

// Run executes stages, wiring stdin/stdout/stderr as the pipeline's outer
// endpoints, and returns the exit status of the last stage. For the
// single-stage case, resolution happens up front since there is nothing to
// tear down. For a multi-stage pipeline, each stage is resolved only when
// runPipeline reaches it in its spawn loop, so a stage after an unresolved
// one never gets a chance to spawn while the stages before it, already
// spawned, are torn down — not resolved and aborted all at once.
func (e *Executor) Run(stages []pipeline.Stage, stdin, stdout, stderr *os.File) (int, error) {
	if len(stages) == 0 {
		return 0, nil
	}

	if len(stages) == 1 {
		res := resolver.Resolve(stages[0].Argv[0], e.Registry.Has)
		if res.Kind == resolver.Unresolved {
			fmt.Fprintf(stderr, "%s: command not found\n", stages[0].Argv[0])
			return 127, ErrUnresolvedCommand
		}
		return e.runSingle(stages[0], res, stdin, stdout, stderr)
	}
	return e.runPipeline(stages, stdin, stdout, stderr)
}

// runSingle executes one stage with no pipe plumbing: a builtin runs
// directly in this process, an external runs via os/exec.
func (e *Executor) runSingle(st pipeline.Stage, res resolver.Resolution, stdin, stdout, stderr *os.File) (int, error) {
	outFile, errFile, closeRedirs, err := openRedirects(st, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1, err
	}
	defer closeRedirs()

	switch res.Kind {
	case resolver.Builtin:
		fn, _ := e.Registry.Lookup(st.Argv[0])
		return fn(e.Ctx, st.Argv, stdin, outFile, errFile), nil
	case resolver.External:
		return runExternal(res.Path, st.Argv, stdin, outFile, errFile)
	default:
		return 0, nil
	}
}

// runPipeline wires n stages with n-1 real OS pipes and runs each stage as
// a genuine child process (external via os/exec, builtin via self-reexec),
// so that a piped cd or exit can never touch the parent shell. Each stage
// is resolved immediately before it is spawned, not all up front: stages
// before an unresolved one have therefore already been started by the time
// the unresolved one is found, matching the original's stage-by-stage
// resolve-then-fork loop. The parent closes every pipe descriptor once all
// stages have been spawned, then waits on the children in spawn order; the
// pipeline's status is the last stage's status.
func (e *Executor) runPipeline(stages []pipeline.Stage, stdin, stdout, stderr *os.File) (int, error) {
	n := len(stages)

	readEnds := make([]*os.File, n-1)
	writeEnds := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closeFiles(readEnds[:i])
			closeFiles(writeEnds[:i])
			return 1, err
		}
		readEnds[i] = r
		writeEnds[i] = w
	}

	cmds := make([]*exec.Cmd, 0, n)
	redirClosers := make([]func(), 0, n)

	cleanup := func() {
		for _, cmd := range cmds {
			if cmd.Process != nil {
				cmd.Process.Signal(syscall.SIGTERM)
				cmd.Wait()
			}
		}
		closeFiles(readEnds)
		closeFiles(writeEnds)
		for _, c := range redirClosers {
			c()
		}
	}

	for i, st := range stages {
		res := resolver.Resolve(st.Argv[0], e.Registry.Has)
		if res.Kind == resolver.Unresolved {
			fmt.Fprintf(stderr, "%s: command not found\n", st.Argv[0])
			cleanup()
			return 127, ErrUnresolvedCommand
		}

		in := stdin
		if i > 0 {
			in = readEnds[i-1]
		}
		out := stdout
		if i < n-1 {
			out = writeEnds[i]
		}

		outFile, errFile, closeRedirs, err := openRedirects(st, out, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			cleanup()
			return 1, err
		}
		redirClosers = append(redirClosers, closeRedirs)

		var cmd *exec.Cmd
		switch res.Kind {
		case resolver.Builtin:
			cmd, err = reexecCmd(st.Argv)
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", st.Argv[0], err)
				cleanup()
				return 1, err
			}
		case resolver.External:
			cmd = exec.Command(res.Path, st.Argv[1:]...)
		}
		cmd.Stdin = in
		cmd.Stdout = outFile
		cmd.Stderr = errFile

		if err := cmd.Start(); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", st.Argv[0], err)
			cleanup()
			return 1, err
		}
		cmds = append(cmds, cmd)
	}

	closeFiles(readEnds)
	closeFiles(writeEnds)
	for _, c := range redirClosers {
		c()
	}

	var lastStatus int
	for i, cmd := range cmds {
		status := 0
		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				status = exitErr.ExitCode()
			} else {
				status = 1
			}
		}
		if i == n-1 {
			lastStatus = status
		}
	}
	return lastStatus, nil
}

// runExternal spawns the executable at path as a child process with the given argv and
// streams, translating a nonzero exit into its numeric status rather than
// a Go error.
func runExternal(path string, argv []string, stdin, stdout, stderr *os.File) (int, error) {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	fmt.Fprintf(stderr, "%s: %v\n", argv[0], err)
	return 1, err
}

// openRedirects opens whichever of st's redirections are present, returning
// the file to use for stdout/stderr (falling back to the given defaults)
// and a function that closes whatever was opened. Stderr is opened before
// stdout, matching the fixed application order used throughout the
// executor. On error, anything already opened is closed before returning.
func openRedirects(st pipeline.Stage, stdout, stderr *os.File) (out, errOut *os.File, closeAll func(), err error) {
	out, errOut = stdout, stderr
	var opened []*os.File
	closeAll = func() {
		closeFiles(opened)
	}

	if st.StderrRedir != nil {
		f, openErr := openRedirectFile(st.StderrRedir)
		if openErr != nil {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("%s: %v", st.StderrRedir.Path, openErr)
		}
		errOut = f
		opened = append(opened, f)
	}
	if st.StdoutRedir != nil {
		f, openErr := openRedirectFile(st.StdoutRedir)
		if openErr != nil {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("%s: %v", st.StdoutRedir.Path, openErr)
		}
		out = f
		opened = append(opened, f)
	}
	return out, errOut, closeAll, nil
}

func openRedirectFile(r *pipeline.Redirect) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if r.Mode == pipeline.RedirectAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(r.Path, flags, 0o644)
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
