package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb. Commands with auth set are only offered and
// dispatched while a session is active.
type command struct {
	name string
	args string
	help string
	auth bool
	run  func(ctx context.Context, args []string) error
}

// shell is the surface runREPL drives. The real App satisfies it; tests can
// provide a lightweight stub.
type shell interface {
	isLoggedIn() bool
	commands() []command
	report(ctx context.Context, err error)
}

// runREPL reads a line, dispatches the first token to the matching command
// and reports whatever error the command returns. It exits on EOF or when the
// user types "exit" or "quit".
func runREPL(ctx context.Context, sh shell, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "medmate%s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(w, sh)
			continue
		}

		cmd, ok := lookup(sh.commands(), name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if cmd.auth && !sh.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first (login or register).")
			continue
		}
		sh.report(ctx, cmd.run(ctx, args))
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer, sh shell) {
	loggedIn := sh.isLoggedIn()
	fmt.Fprintln(w, "Available commands:")
	for _, c := range sh.commands() {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(w, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}
	fmt.Fprintf(w, "  %-28s %s\n", "exit", "leave the program")
}
