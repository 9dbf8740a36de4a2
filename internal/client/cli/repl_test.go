package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
	pages    []int
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Login(ctx context.Context) error  { s.calls = append(s.calls, "login"); return nil }
func (s *stubExec) Logout(ctx context.Context) error { s.calls = append(s.calls, "logout"); return nil }
func (s *stubExec) List(ctx context.Context) error   { s.calls = append(s.calls, "list"); return nil }
func (s *stubExec) Next(ctx context.Context) error   { s.calls = append(s.calls, "next"); return nil }
func (s *stubExec) Prev(ctx context.Context) error   { s.calls = append(s.calls, "prev"); return nil }
func (s *stubExec) Add(ctx context.Context) error    { s.calls = append(s.calls, "add"); return nil }
func (s *stubExec) Edit(ctx context.Context) error   { s.calls = append(s.calls, "edit"); return nil }
func (s *stubExec) Delete(ctx context.Context) error { s.calls = append(s.calls, "delete"); return nil }

func (s *stubExec) Page(ctx context.Context, page int) error {
	s.calls = append(s.calls, "page")
	s.pages = append(s.pages, page)
	return nil
}

func runInput(t *testing.T, input string, exec *stubExec) []string {
	t.Helper()

	var printed []string
	oldPrintln := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	defer func() { printlnFn = oldPrintln }()

	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
	return printed
}

func TestREPLDispatch(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	runInput(t, "list\nl\nnext\nprev\nadd\nedit\ndelete\nlogout\nexit\n", exec)

	require.Equal(t, []string{"list", "list", "next", "prev", "add", "edit", "delete", "logout"}, exec.calls)
}

func TestREPLPageArgument(t *testing.T) {
	exec := &stubExec{loggedIn: true}
	printed := runInput(t, "page 3\npage\npage zero\npage 0\nexit\n", exec)

	require.Equal(t, []int{3}, exec.pages)
	// the three malformed variants print usage instead of dispatching
	require.Equal(t, []string{"page"}, exec.calls)
	usages := 0
	for _, line := range printed {
		if line == "Usage: page <n>" {
			usages++
		}
	}
	require.Equal(t, 3, usages)
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &stubExec{}
	printed := runInput(t, "frobnicate\nexit\n", exec)

	require.Contains(t, printed, "Unknown command:")
	require.Empty(t, exec.calls)
}

func TestREPLHelpDependsOnLoginState(t *testing.T) {
	printed := runInput(t, "help\nexit\n", &stubExec{loggedIn: false})
	require.Contains(t, printed, "Available commands: login, exit")

	printed = runInput(t, "help\nexit\n", &stubExec{loggedIn: true})
	require.Contains(t, printed, "Available commands: (l)ist, page <n>, next, prev, add, edit, delete, logout, exit")
}

func TestREPLExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runInput(t, "", exec) // no input at all: scanner EOF ends the loop
	require.Empty(t, exec.calls)
}
