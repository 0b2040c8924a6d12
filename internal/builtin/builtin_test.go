package builtin

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidewell/posh/internal/history"
)

// captured returns a writable *os.File backed by a pipe and a function
// that drains its contents as a string; built-ins write to real *os.File
// values per their signature, so tests need a real fd to capture output.
func captured(t *testing.T) (*os.File, func() string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan string, 1)
	go func() {
		var sb strings.Builder
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			sb.WriteString(sc.Text())
			sb.WriteByte('\n')
		}
		done <- sb.String()
	}()
	return w, func() string {
		w.Close()
		return <-done
	}
}

func newContext() *Context {
	return &Context{History: history.New(), Registry: NewRegistry()}
}

func TestEchoJoinsWithSpaces(t *testing.T) {
	out, read := captured(t)
	status := Echo(newContext(), []string{"echo", "hello", "world"}, nil, out, nil)
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	if got := read(); got != "hello world\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPwdWritesCwd(t *testing.T) {
	out, read := captured(t)
	Pwd(newContext(), []string{"pwd"}, nil, out, nil)
	want, _ := os.Getwd()
	if got := read(); got != want+"\n" {
		t.Fatalf("got %q, want %q", got, want+"\n")
	}
}

func TestCdChangesDirectoryAndPwdReflectsIt(t *testing.T) {
	orig, _ := os.Getwd()
	defer os.Chdir(orig)

	tmp := t.TempDir()
	errOut, readErr := captured(t)
	status := Cd(newContext(), []string{"cd", tmp}, nil, nil, errOut)
	readErr()
	if status != 0 {
		t.Fatalf("status %d", status)
	}

	out, read := captured(t)
	Pwd(newContext(), []string{"pwd"}, nil, out, nil)
	got := strings.TrimSuffix(read(), "\n")
	wantReal, _ := filepath.EvalSymlinks(tmp)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Fatalf("got %q, want %q", gotReal, wantReal)
	}
}

func TestCdNoArgIsNoop(t *testing.T) {
	orig, _ := os.Getwd()
	defer os.Chdir(orig)

	status := Cd(newContext(), []string{"cd"}, nil, nil, nil)
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	cur, _ := os.Getwd()
	if cur != orig {
		t.Fatalf("cwd changed: %q != %q", cur, orig)
	}
}

func TestCdNoSuchDirectory(t *testing.T) {
	errOut, read := captured(t)
	status := Cd(newContext(), []string{"cd", "/no/such/dir/posh-test"}, nil, nil, errOut)
	got := read()
	if status == 0 {
		t.Fatal("expected nonzero status")
	}
	if !strings.Contains(got, "No such file or directory") {
		t.Fatalf("got %q", got)
	}
}

func TestExitRequestsTermination(t *testing.T) {
	c := newContext()
	status := Exit(c, []string{"exit", "7"}, nil, nil, nil)
	if status != 7 {
		t.Fatalf("status %d", status)
	}
	requested, code := c.ExitRequested()
	if !requested || code != 7 {
		t.Fatalf("requested=%v code=%d", requested, code)
	}
}

func TestExitDefaultsToZero(t *testing.T) {
	c := newContext()
	Exit(c, []string{"exit"}, nil, nil, nil)
	requested, code := c.ExitRequested()
	if !requested || code != 0 {
		t.Fatalf("requested=%v code=%d", requested, code)
	}
}

func TestTypeBuiltin(t *testing.T) {
	out, read := captured(t)
	c := newContext()
	status := Type(c, []string{"type", "cd"}, nil, out, nil)
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	if got := read(); got != "cd is a shell builtin\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTypeNotFound(t *testing.T) {
	out, read := captured(t)
	c := newContext()
	status := Type(c, []string{"type", "nosuchcmd12345"}, nil, out, nil)
	if status == 0 {
		t.Fatal("expected nonzero status")
	}
	if got := read(); got != "nosuchcmd12345: not found\n" {
		t.Fatalf("got %q", got)
	}
}

func TestHistoryNoArgsPrintsAll(t *testing.T) {
	c := newContext()
	c.History.Add("echo a")
	c.History.Add("echo b")

	out, read := captured(t)
	History(c, []string{"history"}, nil, out, nil)
	want := "    1  echo a\n    2  echo b\n"
	if got := read(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHistoryNPrintsLastN(t *testing.T) {
	c := newContext()
	c.History.Add("echo a")
	c.History.Add("echo b")
	c.History.Add("echo c")

	out, read := captured(t)
	History(c, []string{"history", "2"}, nil, out, nil)
	want := "    2  echo b\n    3  echo c\n"
	if got := read(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHistoryWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hist")

	c := newContext()
	c.History.Add("echo a")
	out, read := captured(t)
	status := History(c, []string{"history", "-w", path}, nil, out, nil)
	read()
	if status != 0 {
		t.Fatalf("status %d", status)
	}

	c2 := newContext()
	out2, read2 := captured(t)
	status = History(c2, []string{"history", "-r", path}, nil, out2, nil)
	read2()
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	if c2.History.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c2.History.Len())
	}
}
