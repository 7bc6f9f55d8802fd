package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Experiments(ctx context.Context) error
	ShowExperiment(ctx context.Context, args []string) error
	Steps(ctx context.Context, args []string) error
	Protocols(ctx context.Context) error
	ShowProtocol(ctx context.Context, args []string) error
	Versions(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	Files(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a read–eval–print loop. It reads a line from the provided
// scanner, parses the first token as the command, and dispatches to methods
// on 'a'. Unknown commands are reported back to the user. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("labctl %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, experiments, experiment <id>, steps <id>, protocols, protocol <id>, versions <id>, users, files, search <query>, export <format>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "e", "experiments":
			_ = a.Experiments(ctx)

		case "experiment":
			_ = a.ShowExperiment(ctx, args)

		case "steps":
			_ = a.Steps(ctx, args)

		case "p", "protocols":
			_ = a.Protocols(ctx)

		case "protocol":
			_ = a.ShowProtocol(ctx, args)

		case "versions":
			_ = a.Versions(ctx, args)

		case "users":
			_ = a.Users(ctx)

		case "files":
			_ = a.Files(ctx)

		case "search":
			_ = a.Search(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
