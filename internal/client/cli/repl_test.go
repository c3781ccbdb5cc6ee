package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShell struct {
	loggedIn bool
	calls    []string
	args     [][]string
	reported []error
	failWith error
}

func (f *fakeShell) isLoggedIn() bool { return f.loggedIn }

func (f *fakeShell) commands() []command {
	record := func(name string) func(context.Context, []string) error {
		return func(_ context.Context, args []string) error {
			f.calls = append(f.calls, name)
			f.args = append(f.args, args)
			return f.failWith
		}
	}
	return []command{
		{name: "login", help: "log in", run: func(ctx context.Context, args []string) error {
			f.loggedIn = true
			return record("login")(ctx, args)
		}},
		{name: "diagnose", args: "[symptoms]", help: "analyse symptoms", auth: true, run: record("diagnose")},
		{name: "health", help: "backend status", run: record("health")},
	}
}

func (f *fakeShell) report(_ context.Context, err error) {
	if err != nil {
		f.reported = append(f.reported, err)
	}
}

func TestRunREPL_DispatchesWithArgs(t *testing.T) {
	sh := &fakeShell{}
	var out bytes.Buffer

	runREPL(context.Background(), sh, func() string { return " (s)" },
		rdr("health\n\nlogin\ndiagnose fever and cough\nexit\nhealth\n"), &out)

	assert.Equal(t, []string{"health", "login", "diagnose"}, sh.calls)
	assert.Equal(t, []string{"fever", "and", "cough"}, sh.args[2])
	assert.Contains(t, out.String(), "medmate (s)> ")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_AuthCommandsNeedSession(t *testing.T) {
	sh := &fakeShell{}
	var out bytes.Buffer

	runREPL(context.Background(), sh, func() string { return "" }, rdr("diagnose headache\nquit\n"), &out)

	assert.Empty(t, sh.calls)
	assert.Contains(t, out.String(), "Please log in first")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	sh := &fakeShell{}
	var out bytes.Buffer
	runREPL(context.Background(), sh, func() string { return "" }, rdr("help\n"), &out)
	assert.Contains(t, out.String(), "health")
	assert.NotContains(t, out.String(), "diagnose")

	sh.loggedIn = true
	out.Reset()
	runREPL(context.Background(), sh, func() string { return "" }, rdr("help\n"), &out)
	assert.Contains(t, out.String(), "diagnose [symptoms]")
}

func TestRunREPL_UnknownCommandAndEOF(t *testing.T) {
	sh := &fakeShell{}
	var out bytes.Buffer

	runREPL(context.Background(), sh, func() string { return "" }, rdr("foobar"), &out)

	assert.Empty(t, sh.calls)
	assert.Contains(t, out.String(), "Unknown command: foobar")
}

func TestRunREPL_ReportsCommandErrors(t *testing.T) {
	boom := errors.New("boom")
	sh := &fakeShell{failWith: boom}
	var out bytes.Buffer

	runREPL(context.Background(), sh, func() string { return "" }, rdr("health\nhealth\n"), &out)

	require.Len(t, sh.reported, 2)
	assert.ErrorIs(t, sh.reported[0], boom)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	sh := &fakeShell{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	runREPL(ctx, sh, func() string { return "" }, rdr("health\n"), &out)

	assert.Empty(t, sh.calls)
}
