// invctl signs in to a commodity-gate server, shows what the session may
// open and signs out again.
//
//	invctl --server http://localhost:8080 --email manager@slooze.com \
//	    --path /dashboard --path /users --path /products/add
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/session"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	server   string
	email    string
	password string
	paths    []string
	keep     bool
	verbose  bool
	timeout  time.Duration
}

func run(args []string, out io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("invctl", pflag.ContinueOnError)
	flagSet.StringVar(&opts.server, "server", envOr("INVCTL_SERVER", "http://localhost:8080"), "commodity-gate base URL")
	flagSet.StringVarP(&opts.email, "email", "e", "", "account email")
	flagSet.StringVarP(&opts.password, "password", "p", os.Getenv("INVCTL_PASSWORD"), "account password (default $INVCTL_PASSWORD)")
	flagSet.StringArrayVar(&opts.paths, "path", nil, "page path to check (repeatable)")
	flagSet.BoolVar(&opts.keep, "keep-session", false, "skip logout at the end")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log client activity to stderr")
	flagSet.DurationVar(&opts.timeout, "timeout", 15*time.Second, "overall deadline")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(out, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(out, flagSet)
		return nil
	}
	if opts.email == "" || opts.password == "" {
		return fmt.Errorf("--email and --password are required")
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		defer logger.Sync() //nolint:errcheck
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	backend, err := session.NewHTTPBackend(opts.server, nil)
	if err != nil {
		return err
	}
	return inspect(ctx, out, session.NewStore(backend, logger), opts)
}

func inspect(ctx context.Context, out io.Writer, store *session.Store, opts options) error {
	if _, err := store.SignIn(ctx, opts.email, opts.password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	// Re-resolve from the server so the printed identity is the verified one.
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	identity, ok := store.Identity()
	if !ok {
		return fmt.Errorf("server did not accept the new session")
	}

	printIdentity(out, identity)
	printMenu(out, auth.MenuFor(identity.Role), "  ")

	if len(opts.paths) > 0 {
		guard := session.NewGuard(store)
		fmt.Fprintln(out, "Paths:")
		for _, p := range opts.paths {
			nav := &printNavigator{}
			v := guard.Navigate(p, nav)
			fmt.Fprintf(out, "  %-24s %s%s\n", p, v.Kind, nav.suffix())
		}
	}

	if opts.keep {
		return nil
	}
	if err := store.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func printIdentity(out io.Writer, id domain.Identity) {
	fmt.Fprintf(out, "Signed in as %s <%s>\n", id.Name, id.Email)
	fmt.Fprintf(out, "Role:        %s (%s)\n", auth.DisplayName(id.Role), auth.Description(id.Role))
	fmt.Fprintf(out, "Landing:     %s\n", auth.DefaultLanding(id.Role))
	fmt.Fprintf(out, "Permissions: %s\n", strings.Join(auth.PermissionsFor(id.Role).Strings(), ", "))
	fmt.Fprintln(out, "Menu:")
}

func printMenu(out io.Writer, items []auth.MenuItem, indent string) {
	for _, item := range items {
		fmt.Fprintf(out, "%s%s (%s)\n", indent, item.Label, item.Href)
		printMenu(out, item.Children, indent+"  ")
	}
}

type printNavigator struct {
	target string
}

func (n *printNavigator) Replace(target string) { n.target = target }

func (n *printNavigator) suffix() string {
	if n.target == "" {
		return ""
	}
	return " -> " + n.target
}

func printHelp(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(out, "Usage: invctl --email EMAIL --password PASSWORD [--path PATH]...")
	fmt.Fprintln(out)
	flagSet.SetOutput(out)
	flagSet.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
