// Package shell is a line-oriented storefront front end over the
// application root: it reads commands, drives the stores and prints their
// state and toasts.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/atinyakov/storefront/internal/client/app"
	"github.com/atinyakov/storefront/internal/client/state"
	"github.com/atinyakov/storefront/internal/models"
)

const prompt = "storefront"

// Shell runs the interactive loop. It is not safe for concurrent use.
type Shell struct {
	app     *app.App
	metrics prometheus.Gatherer

	in  *bufio.Scanner
	out io.Writer

	// listed is the last product listing, the input of filter and sort.
	listed []models.Product

	// mu guards what store subscribers record between prompts.
	mu      sync.Mutex
	user    string
	pending []state.ToastState
	count   int
	counted bool
}

// Option customizes a Shell.
type Option func(*Shell)

// WithMetrics enables the stats command over g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Shell) { s.metrics = g }
}

// New returns a Shell reading commands from in and writing to out.
func New(a *app.App, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{app: a, in: bufio.NewScanner(in), out: out}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type command struct {
	usage string
	run   func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":       {"help", (*Shell).help},
		"login":      {"login <email> [password]", (*Shell).login},
		"logout":     {"logout", (*Shell).logout},
		"me":         {"me", (*Shell).me},
		"register":   {"register", (*Shell).register},
		"products":   {"products [category_id]", (*Shell).products},
		"product":    {"product <id>", (*Shell).product},
		"search":     {"search <text>", (*Shell).search},
		"recent":     {"recent [clear]", (*Shell).recent},
		"filter":     {"filter <text>", (*Shell).filter},
		"sort":       {"sort name|price [asc|desc]", (*Shell).sortListing},
		"categories": {"categories [text]", (*Shell).categories},
		"cart":       {"cart", (*Shell).cart},
		"add":        {"add <product_id> [qty] [option_id=value ...]", (*Shell).add},
		"qty":        {"qty <cart_id> <quantity>", (*Shell).qty},
		"rm":         {"rm <cart_id>", (*Shell).rm},
		"wishlist":   {"wishlist [add|rm <product_id>]", (*Shell).wishlist},
		"orders":     {"orders", (*Shell).orders},
		"order":      {"order <id>", (*Shell).order},
		"checkout":   {"checkout", (*Shell).checkout},
		"stats":      {"stats", (*Shell).stats},
	}
}

// Run reads commands until "exit", end of input or ctx is done. The
// prompt names the signed-in customer.
func (s *Shell) Run(ctx context.Context) error {
	s.setUser(s.app.Auth.Snapshot())
	defer s.app.Auth.Subscribe(s.setUser)()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.prompt())
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if quit := s.Exec(ctx, line); quit {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
	}
}

// Exec runs a single command line, then prints the toasts it raised and
// the cart size if it changed. It reports whether the line asked to quit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	if args[0] == "exit" || args[0] == "quit" {
		return true
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
		return false
	}

	before := s.app.Cart.Snapshot().ItemCount
	unwatch := s.watch()
	err := cmd.run(s, ctx, args[1:])
	unwatch()
	if err != nil {
		fmt.Fprintln(s.out, "Error:", err)
	}
	s.flush(before)
	return false
}

// watch subscribes to the toast and cart stores for one command.
func (s *Shell) watch() (unwatch func()) {
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.counted = false
	s.mu.Unlock()

	stopToast := s.app.Toast.Subscribe(func(t state.ToastState) {
		if !t.Visible {
			return
		}
		s.mu.Lock()
		s.pending = append(s.pending, t)
		s.mu.Unlock()
	})
	stopCart := s.app.Cart.Subscribe(func(c state.CartState) {
		if c.IsLoading {
			return
		}
		s.mu.Lock()
		s.count, s.counted = c.ItemCount, true
		s.mu.Unlock()
	})
	return func() {
		stopToast()
		stopCart()
	}
}

// flush prints the toasts raised by the last command, dismisses the one
// still showing, and reports a changed cart size.
func (s *Shell) flush(before int) {
	s.mu.Lock()
	toasts := append([]state.ToastState(nil), s.pending...)
	count, counted := s.count, s.counted
	s.mu.Unlock()

	for _, t := range toasts {
		fmt.Fprintf(s.out, "[%s] %s\n", t.Severity, t.Message)
	}
	if s.app.Toast.Snapshot().Visible {
		s.app.Toast.Hide()
	}
	if counted && count != before {
		fmt.Fprintf(s.out, "Cart: %d item(s)\n", count)
	}
}

func (s *Shell) setUser(a state.AuthState) {
	user := ""
	if a.IsAuthenticated && a.Customer != nil {
		user = a.Customer.Email
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Shell) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == "" {
		return prompt + "> "
	}
	return prompt + "(" + s.user + ")> "
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// ask prints label and reads one answer line.
func (s *Shell) ask(label string) string {
	fmt.Fprint(s.out, label)
	line, _ := s.readLine()
	return line
}

func (s *Shell) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(s.out, "Available commands:")
	for _, name := range names {
		fmt.Fprintln(s.out, "  "+commands[name].usage)
	}
	fmt.Fprintln(s.out, "  exit")
	return nil
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
