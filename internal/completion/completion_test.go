package completion

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestCompleteBuiltinsOnly(t *testing.T) {
	got := Complete("e", []string{"echo", "exit", "cd"}, "")
	want := []string{"echo", "exit"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCompletePathExecutables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	dir := t.TempDir()
	mustExecutable(t, dir, "grep")
	mustExecutable(t, dir, "greater")
	mustFile(t, dir, "greyscale.txt", 0o644)

	got := Complete("gre", nil, dir)
	want := []string{"greater", "grep"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCompleteDedupesAcrossBuiltinAndPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission-bit executability check is POSIX-specific")
	}
	dir := t.TempDir()
	mustExecutable(t, dir, "echo")

	got := Complete("ech", []string{"echo"}, dir)
	want := []string{"echo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCompleteSkipsUnreadableDirectory(t *testing.T) {
	got := Complete("x", []string{"xyz"}, "/nonexistent/path/for/posh/tests")
	want := []string{"xyz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func mustExecutable(t *testing.T, dir, name string) {
	t.Helper()
	mustFile(t, dir, name, 0o755)
}

func mustFile(t *testing.T, dir, name string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), mode); err != nil {
		t.Fatal(err)
	}
}
