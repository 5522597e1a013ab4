package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Update(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: login, help, exit"
	helpMember = "Available commands: list, search <query>, show <id>, add, update <id>, delete <id>, categories, whoami, stats, logout, help, exit"
)

// runREPL starts a read–eval–print loop over reader.
//
// The first token of a line is the command, the rest its arguments. Commands
// bound to a location ("list" is /products, "show 7" is /products/7) are
// passed through the route guard first. A redirect to login prompts for
// credentials and, on success, resumes the original command. The loop exits
// on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, r *router.Router, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("catalog %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "login":
			if r.Guard("/login", a.isLoggedIn()) != nil {
				printlnFn("Already logged in")
				continue
			}
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "l", "list":
			_ = guarded(ctx, a, r, "/products", func() error { return a.List(ctx) })

		case "categories":
			_ = guarded(ctx, a, r, "/products", func() error { return a.Categories(ctx) })

		case "add":
			_ = guarded(ctx, a, r, "/products/new", func() error { return a.Add(ctx) })

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			query := strings.Join(args, " ")
			_ = guarded(ctx, a, r, "/products?"+url.Values{"q": []string{query}}.Encode(), func() error {
				return a.Search(ctx, query)
			})

		case "show", "update", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			id := args[0]
			_ = guarded(ctx, a, r, "/products/"+url.PathEscape(id), func() error {
				switch cmd {
				case "show":
					return a.Show(ctx, id)
				case "update":
					return a.Update(ctx, id)
				default:
					return a.Delete(ctx, id)
				}
			})

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

// guarded runs fn when the guard allows path. A redirect to login starts the
// login flow first and retries once.
func guarded(ctx context.Context, a execIface, r *router.Router, path string, fn func() error) error {
	next := r.Guard(path, a.isLoggedIn())
	if next == nil {
		return fn()
	}
	if next.Name != router.RouteLogin {
		printlnFn("Redirected to", next.String())
		return nil
	}

	printlnFn("Please log in first")
	if err := a.Login(ctx); err != nil {
		return err
	}
	if r.Guard(next.Query.Get(router.RedirectParam), a.isLoggedIn()) != nil {
		return nil
	}
	return fn()
}
