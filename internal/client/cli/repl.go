package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	FaceLogin(ctx context.Context) error
	EnrollFace(ctx context.Context) error
	TestFace(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	ShowUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the SightPass CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account (auto-login on success)
//	  - login          — authenticate with email and password
//	  - facelogin      — authenticate with a webcam capture
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - enroll         — enroll your face for face login
//	  - testface       — test a capture against an enrolled face
//	  - whoami         — show the current user
//	  - users          — list accounts (admin)
//	  - user <id>      — show one account (admin)
//	  - deluser <id>   — delete an account (admin)
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sp> %s > ", statusFn()))
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
				printlnFn("Available commands: enroll, testface, whoami, users, user <id>, deluser <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, facelogin, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "facelogin":
			_ = a.FaceLogin(ctx)

		case "enroll":
			_ = a.EnrollFace(ctx)

		case "testface":
			_ = a.TestFace(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "user":
			_ = a.ShowUser(ctx, args)

		case "deluser":
			_ = a.DeleteUser(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
