package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"authbox/client"
)

const defaultBackend = "http://localhost:3000"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	backend := os.Getenv("BACKEND_URL")
	if backend == "" {
		backend = defaultBackend
	}

	store, err := client.DefaultFileStore()
	if err != nil {
		log.Fatalf("failed to resolve token store: %v", err)
	}

	mgr := client.NewManager(client.New(backend), store, func(route string) {
		fmt.Println("->", route)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "register":
		register(ctx, mgr, os.Args[2:])
	case "login":
		login(ctx, mgr, os.Args[2:])
	case "whoami":
		whoami(ctx, mgr)
	case "logout":
		mgr.Logout()
		fmt.Println("logged out")
	default:
		usage()
		os.Exit(2)
	}
}

func register(ctx context.Context, mgr *client.Manager, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	email := fs.String("email", "", "email address (optional)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		log.Fatal("register requires -u and -p")
	}

	data := map[string]string{"username": *username, "password": *password}
	if *email != "" {
		data["email"] = *email
	}

	msg, err := mgr.Register(ctx, data)
	if err != nil {
		log.Fatalf("register failed: %v", err)
	}
	if msg != "" {
		log.Fatalf("register rejected: %s", msg)
	}
	fmt.Println("account created, you can now log in")
}

func login(ctx context.Context, mgr *client.Manager, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		log.Fatal("login requires -u and -p")
	}

	msg, err := mgr.Login(ctx, *username, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	if msg != "" {
		log.Fatalf("login rejected: %s", msg)
	}
	fmt.Println("logged in as", mgr.User().Username)
}

func whoami(ctx context.Context, mgr *client.Manager) {
	err := mgr.Initialize(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnreachable) {
			log.Fatalf("could not reach %s: %v", os.Getenv("BACKEND_URL"), err)
		}
		log.Fatalf("failed to restore session: %v", err)
	}

	user := mgr.User()
	if user == nil {
		fmt.Println("not logged in")
		os.Exit(1)
	}
	fmt.Printf("%s (id %v)\n", user.Username, user.ID)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: authcli <command> [flags]

commands:
  register -u <username> -p <password> [-email <address>]
  login    -u <username> -p <password>
  whoami
  logout

BACKEND_URL selects the API server (default `+defaultBackend+`)`)
}
