// Package resolver classifies a command name as a built-in, an external
// executable resolved via PATH, or unresolved.
package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies how a command name was classified.
type Kind int

const (
	Unresolved Kind = iota
	Builtin
	External
)

// Resolution is the outcome of resolving a single command name.
type Resolution struct {
	Kind Kind
	Path string // set only when Kind == External
}

// IsBuiltin reports whether name is registered in the builtin set.
type IsBuiltin func(name string) bool

// Resolve classifies name: builtins win first, then a PATH scan for a
// regular, user-executable file named exactly name (a name containing a
// path separator is checked directly, see Lookup). An empty PATH is
// treated as no search directories at all (never the current directory).
// Directory entries in PATH that are not directories are silently skipped.
func Resolve(name string, isBuiltin IsBuiltin) Resolution {
	if isBuiltin(name) {
		return Resolution{Kind: Builtin}
	}
	if path, ok := Lookup(name, os.Getenv("PATH")); ok {
		return Resolution{Kind: External, Path: path}
	}
	return Resolution{Kind: Unresolved}
}

// Lookup scans the platform path-list (":"-separated on Unix) for the
// first directory containing a regular, executable file named name. A name
// that contains a path separator is not searched for: it is checked as
// given and returned unchanged if it is a regular, executable file.
func Lookup(name, pathEnv string) (string, bool) {
	if strings.ContainsRune(name, os.PathSeparator) {
		fi, err := os.Stat(name)
		if err != nil || fi.IsDir() || !isExecutable(fi) {
			return "", false
		}
		return name, true
	}
	if pathEnv == "" {
		return "", false
	}
	for _, dir := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, name)
		fi, err := os.Stat(candidate)
		if err != nil || fi.IsDir() {
			continue
		}
		if isExecutable(fi) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(fi os.FileInfo) bool {
	return fi.Mode().Perm()&0o111 != 0
}
