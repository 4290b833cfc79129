package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/views"
)

// redirectGrace is added to the redirect delay while the shell waits for a
// view's scheduled navigation.
const redirectGrace = time.Second

// runREPL starts a simple read–eval–print loop for the Traffic Hub CLI.
//
// It reads a line, parses the first token as the command, and dispatches it.
// The loop exits on EOF, when ctx is done or when the user types "exit" or
// "quit".
//
// Commands
//
//	Always:
//	  - help              — show available commands
//	  - back              — return to the previous view
//	  - go <route>        — open a view by route, e.g. "go /vehicles"
//	  - exit | quit       — leave the program
//
//	Not logged in (landing):
//	  - login             — sign in
//	  - register          — create an account
//
//	Logged in:
//	  - dashboard, vehicles, violations, payments, register-vehicle,
//	    add-violation, autodetect, profile — open the view
//	  - retry             — reload the current view
//	  - delete <plate>    — delete a vehicle (vehicles view, admins only)
//	  - search <plate>    — search violations (violations view)
//	  - evidence <name>   — export an evidence image
//	  - logout            — sign out
func (a *App) runREPL(ctx context.Context) {
	for {
		a.followNavigation(ctx)
		if ctx.Err() != nil {
			return
		}

		a.printf("%s> ", a.prompt())
		line, err := a.in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			a.println()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !a.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
		a.awaitRedirect(ctx)
	}
}

// dispatch runs one command and reports false when the shell should stop.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	if strings.HasPrefix(cmd, "/") {
		a.open(ctx, gate.ParseView(cmd), args)
		return true
	}

	switch strings.ToLower(cmd) {
	case "help":
		a.help()
	case "exit", "quit":
		a.println("Bye!")
		return false
	case "back":
		a.back(ctx)
	case "go":
		if len(args) == 0 {
			a.println("Usage: go <route>")
			break
		}
		a.open(ctx, gate.ParseView(args[0]), args[1:])
	case "login":
		a.open(ctx, gate.ViewLogin, nil)
		if lv, ok := a.active.(*views.LoginView); ok && a.current == gate.ViewLogin {
			a.login(ctx, lv, args)
		}
	case "register":
		a.register(ctx, args)
	case "logout":
		a.logout(ctx)
	case "retry", "reload":
		if a.current == "" {
			a.open(ctx, gate.ViewLanding, nil)
			break
		}
		a.open(ctx, a.current, args)
	case "delete":
		a.deleteVehicle(ctx, args)
	case "search":
		a.searchViolations(ctx, args)
	case "evidence":
		a.exportEvidence(ctx, args)
	default:
		if v := gate.ParseView(cmd); v != gate.ViewLanding || strings.EqualFold(cmd, string(gate.ViewLanding)) {
			a.open(ctx, v, args)
			break
		}
		a.println("Unknown command:", cmd)
	}
	return true
}

// followNavigation opens every view requested since the last command.
func (a *App) followNavigation(ctx context.Context) {
	for {
		v, ok := a.nav.pending()
		if !ok {
			return
		}
		a.navigate(ctx, v)
	}
}

// awaitRedirect blocks while the current view has a redirect scheduled, so
// the shell follows it before prompting again.
func (a *App) awaitRedirect(ctx context.Context) {
	if a.active == nil || !a.active.RedirectPending() {
		return
	}
	v, ok := a.nav.wait(ctx, a.deps.RedirectDelay+redirectGrace)
	if ok {
		a.navigate(ctx, v)
	}
}

// navigate follows a request raised by a view. The view is opened without
// arguments and does not prompt.
func (a *App) navigate(ctx context.Context, v gate.View) {
	a.redirecting = true
	defer func() { a.redirecting = false }()

	if v == gate.ViewLogin && !a.isLoggedIn() {
		a.username = ""
		a.history = nil
	}
	a.open(ctx, v, nil)
}

// open routes v through the gate, mounts the resulting view and runs it.
func (a *App) open(ctx context.Context, v gate.View, args []string) {
	a.show(ctx, v, args, true)
}

func (a *App) show(ctx context.Context, v gate.View, args []string, remember bool) {
	d := a.gate.Resolve(v)
	switch d.Action {
	case gate.RedirectLogin:
		a.println("Please log in to open", v.Path())
	case gate.RedirectDashboard:
		if v != gate.ViewLanding {
			a.println("You are already logged in.")
		}
	}

	a.mount(d.View, remember)
	a.chrome()
	a.enter(ctx, d.View, args)
}

// mount closes the current view and makes v current.
func (a *App) mount(v gate.View, remember bool) {
	if a.active != nil {
		a.active.Close()
		a.active = nil
	}
	if remember && a.current != "" && a.current != v {
		a.history = append(a.history, a.current)
	}
	a.current = v
	a.active = a.newScreen(v)
	a.log.Debug(context.Background(), "view mounted", "view", string(v))
}

func (a *App) back(ctx context.Context) {
	if len(a.history) == 0 {
		a.println("Nothing to go back to.")
		return
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.show(ctx, prev, nil, false)
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		a.println("You are not logged in.")
		return
	}
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout did not clear stored session", "error", err)
	}
	a.username = ""
	a.history = nil
	a.current = ""
	a.println("Logged out.")
	a.open(ctx, gate.ViewLanding, nil)
}
