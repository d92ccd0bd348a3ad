package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Google(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Quiz(ctx context.Context, topic string) error
	Certificate(ctx context.Context, courseID string) error
	Progress(ctx context.Context, courseID, seconds string) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  help, login, signup, google, whoami, status, quiz <topic>, reset, exit
//
//	Logged in:
//	  help, whoami, status, quiz <topic>, progress <courseId> [seconds],
//	  certificate <courseId>, logout, reset, exit
//
// Handlers print their own errors, so the loop ignores them. Prompts inside
// handlers read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "edu> %s > ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: whoami, status, quiz <topic>, progress <courseId> [seconds], certificate <courseId>, logout, reset, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, signup, google, whoami, status, quiz <topic>, reset, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "google":
			_ = a.Google(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			fmt.Fprintln(out, statusFn())

		case "quiz":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: quiz <topic>")
				continue
			}
			_ = a.Quiz(ctx, strings.Join(args, " "))

		case "certificate":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: certificate <courseId>")
				continue
			}
			_ = a.Certificate(ctx, args[0])

		case "progress":
			if len(args) < 1 || len(args) > 2 {
				fmt.Fprintln(out, "Usage: progress <courseId> [seconds]")
				continue
			}
			seconds := ""
			if len(args) == 2 {
				seconds = args[1]
			}
			_ = a.Progress(ctx, args[0], seconds)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
