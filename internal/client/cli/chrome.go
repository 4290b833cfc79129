package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
)

// menuLabels are the titles of the navigation entries.
var menuLabels = map[gate.View]string{
	gate.ViewDashboard:       "Dashboard",
	gate.ViewVehicles:        "Vehicles",
	gate.ViewViolations:      "Violations",
	gate.ViewPayments:        "Payments",
	gate.ViewRegisterVehicle: "Register Vehicle",
	gate.ViewAddViolation:    "Add Violation",
	gate.ViewAutoDetect:      "Auto Detect",
	gate.ViewProfile:         "Profile",
	gate.ViewLogin:           "Login",
}

// viewCommands lists the commands that only make sense on one view.
var viewCommands = map[gate.View]string{
	gate.ViewVehicles:   "retry, delete <plate> (admins)",
	gate.ViewViolations: "search <plate>, evidence <name>",
	gate.ViewPayments:   "payments <violation id>",
	gate.ViewAutoDetect: "autodetect <image path>",
}

// prompt shows who is signed in and where the shell is.
func (a *App) prompt() string {
	var parts []string
	if a.current != "" && a.current != gate.ViewLanding {
		parts = append(parts, string(a.current))
	}
	if a.isLoggedIn() {
		who := a.username
		if role := a.session.Role(); role != "" {
			who = strings.TrimSpace(who + " " + role)
		}
		if who != "" {
			parts = append(parts, "("+who+")")
		}
	}
	if len(parts) == 0 {
		return "traffichub"
	}
	return "traffichub " + strings.Join(parts, " ")
}

// chrome prints the navigation header of the current view. Navigation links
// are only shown to a signed-in user.
func (a *App) chrome() {
	title := "Traffic Hub"
	if l, ok := menuLabels[a.current]; ok {
		title += " · " + l
	}
	a.println()
	a.println("== " + title + " ==")

	if !a.isLoggedIn() {
		if a.current == gate.ViewLanding {
			a.println("login | register")
		}
		return
	}

	var links []string
	for _, v := range a.gate.Menu() {
		l := menuLabels[v]
		if v == a.current {
			l = "[" + l + "]"
		}
		links = append(links, l)
	}
	a.println(strings.Join(links, " | ") + " | Logout")
}

func (a *App) help() {
	if !a.isLoggedIn() {
		a.println("Available commands: login, register, help, exit")
		return
	}

	names := make([]string, 0, len(gate.Protected))
	for _, v := range gate.Protected {
		names = append(names, string(v))
	}
	a.println("Available commands: " + strings.Join(names, ", ") + ", back, logout, help, exit")
	if extra, ok := viewCommands[a.current]; ok {
		a.println(fmt.Sprintf("On this view: %s", extra))
	}
}
