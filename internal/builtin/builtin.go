// Package builtin implements the shell's small, thin set of in-process
// commands: exit, echo, pwd, cd, type, history.
package builtin

import (
	"os"

	"github.com/tidewell/posh/internal/history"
)

// Func is the signature every built-in implements: an argument vector plus
// the three descriptors it should read/write, and a Context exposing
// shared shell state. It returns a process-style exit status.
type Func func(c *Context, argv []string, stdin, stdout, stderr *os.File) int

// Context is threaded through every built-in invocation. It exposes the
// shell's HistoryStore and its own Registry (needed by `type`), plus an
// exit request slot that `exit` sets instead of calling os.Exit directly —
// doing the termination itself would skip the history save-on-exit step
// when the built-in runs in-process for a single, non-piped stage.
type Context struct {
	History  *history.Store
	Registry *Registry

	exitRequested bool
	exitCode      int
}

// RequestExit records that the shell should terminate with code after the
// current built-in invocation returns. Only meaningful for a built-in
// running in the shell's own process; a built-in re-executed as a pipeline
// child exits its own process unconditionally once it returns, so the
// request is simply never observed there.
func (c *Context) RequestExit(code int) {
	c.exitRequested = true
	c.exitCode = code
}

// ExitRequested reports whether a built-in called RequestExit during its
// invocation, and the code it asked for.
func (c *Context) ExitRequested() (bool, int) {
	return c.exitRequested, c.exitCode
}

// Registry maps command names to their built-in implementations.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry with all five (plus echo) built-ins
// registered: exit, echo, pwd, cd, type, history.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.register("exit", Exit)
	r.register("echo", Echo)
	r.register("pwd", Pwd)
	r.register("cd", Cd)
	r.register("type", Type)
	r.register("history", History)
	return r
}

func (r *Registry) register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the built-in registered under name, if any.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is a registered built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names returns every registered built-in name, unordered.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}
