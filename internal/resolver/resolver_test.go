package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestResolveBuiltinTakesPriority(t *testing.T) {
	isBuiltin := func(name string) bool { return name == "cd" }
	r := Resolve("cd", isBuiltin)
	if r.Kind != Builtin {
		t.Fatalf("got %v", r.Kind)
	}
}

func TestLookupFindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")

	path, ok := Lookup("mytool", dir)
	if !ok {
		t.Fatal("expected to find mytool")
	}
	if path != filepath.Join(dir, "mytool") {
		t.Fatalf("got %q", path)
	}
}

func TestLookupSkipsNonExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Lookup("data.txt", dir); ok {
		t.Fatal("expected non-executable file to be skipped")
	}
}

func TestLookupEmptyPathIsNoDirectories(t *testing.T) {
	if _, ok := Lookup("ls", ""); ok {
		t.Fatal("expected empty PATH to resolve nothing")
	}
}

func TestLookupSkipsNonDirectoryPathEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	dir := t.TempDir()
	writeExecutable(t, dir, "mytool")
	notADir := filepath.Join(dir, "mytool") // a file, not a directory

	pathEnv := notADir + string(os.PathListSeparator) + dir
	path, ok := Lookup("mytool", pathEnv)
	if !ok || path != filepath.Join(dir, "mytool") {
		t.Fatalf("got %q, %v", path, ok)
	}
}

func TestLookupMultipleDirectoriesFirstMatchWins(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	first := t.TempDir()
	second := t.TempDir()
	writeExecutable(t, first, "tool")
	writeExecutable(t, second, "tool")

	pathEnv := first + string(os.PathListSeparator) + second
	path, ok := Lookup("tool", pathEnv)
	if !ok || path != filepath.Join(first, "tool") {
		t.Fatalf("got %q", path)
	}
}
