// Command applytrack is a single-user client talking straight to the
// database: it restores the persisted session on start, signs in or
// out, and drives the record store with the session manager's current
// identity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/database"
	"github.com/applytrack/applytrack/internal/session"
	"github.com/applytrack/applytrack/internal/store"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: applytrack <command> [args]

Commands:
  signin <email>     sign in and persist the session
  signout            clear the persisted session
  whoami             show the current session
  apps               list applications, newest first
  tasks              list tasks by due date`)
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	db := database.Connect()
	provider := auth.NewProvider(db)

	tokenFile := os.Getenv("SESSION_FILE")
	if tokenFile == "" {
		home, _ := os.UserHomeDir()
		tokenFile = filepath.Join(home, ".applytrack_session")
	}

	mgr := session.NewManager(provider, tokenFile)
	mgr.Subscribe(func(state session.State, s session.Session) {
		if state == session.StateAuthenticated {
			log.Println("Session active for", s.Email)
		}
	})

	ctx := context.Background()
	// Data access is refused until the persisted session resolves.
	mgr.Restore(ctx)

	recordStore := store.New(db, mgr)

	switch flag.Arg(0) {
	case "signin":
		if flag.NArg() != 2 {
			usage()
		}
		fmt.Print("Password: ")
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatal("Unable to read password:", err)
		}
		if _, err := mgr.SignIn(ctx, flag.Arg(1), string(pw)); err != nil {
			log.Fatal("Sign-in failed")
		}
	case "signout":
		mgr.SignOut()
		log.Println("Signed out")
	case "whoami":
		s, state := mgr.Current()
		if state != session.StateAuthenticated {
			fmt.Println("anonymous")
			return
		}
		fmt.Println(s.Email, s.UserID)
	case "apps":
		apps, err := recordStore.ListApplications(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, a := range apps {
			fmt.Printf("%s  %-10s %s - %s\n", a.ID, a.Status, a.Company, a.Position)
		}
	case "tasks":
		tasks, err := recordStore.ListTasks(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, t := range tasks {
			due := "          "
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
			}
			done := " "
			if t.Completed {
				done = "x"
			}
			fmt.Printf("[%s] %s  %s (%s, %s)\n", done, due, t.Title, t.Company, t.Position)
		}
	default:
		usage()
	}
}
