// Package gate decides, for every navigation, whether a view is shown or the
// user is redirected. It only consults the session state and never blocks.
package gate

import (
	"strings"
)

type View string

const (
	ViewLanding         View = "landing"
	ViewLogin           View = "login"
	ViewDashboard       View = "dashboard"
	ViewProfile         View = "profile"
	ViewVehicles        View = "vehicles"
	ViewViolations      View = "violations"
	ViewPayments        View = "payments"
	ViewRegisterVehicle View = "register-vehicle"
	ViewAddViolation    View = "add-violation"
	ViewAutoDetect      View = "autodetect"
)

// Protected lists the views that need a credential, in menu order.
var Protected = []View{
	ViewDashboard,
	ViewVehicles,
	ViewViolations,
	ViewPayments,
	ViewRegisterVehicle,
	ViewAddViolation,
	ViewAutoDetect,
	ViewProfile,
}

// Path is the route of the view, "/" for the landing page.
func (v View) Path() string {
	if v == ViewLanding {
		return "/"
	}
	return "/" + string(v)
}

func (v View) Protected() bool {
	return v != ViewLanding && v != ViewLogin
}

// ParseView accepts a route ("/vehicles") or a bare name ("vehicles").
// Anything unknown falls back to the landing view.
func ParseView(s string) View {
	name := strings.ToLower(strings.Trim(strings.TrimSpace(s), "/"))
	switch View(name) {
	case "":
		return ViewLanding
	case ViewLanding, ViewLogin:
		return View(name)
	}
	for _, v := range Protected {
		if View(name) == v {
			return v
		}
	}
	return ViewLanding
}

type Action int

const (
	Render Action = iota
	RedirectLogin
	RedirectDashboard
)

func (a Action) String() string {
	switch a {
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	default:
		return "render"
	}
}

// Decision tells the shell what to do and which view ends up on screen.
type Decision struct {
	Action Action
	View   View
}

type Authenticator interface {
	IsAuthenticated() bool
}

type Gate struct {
	auth Authenticator
}

func New(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

func (g *Gate) Resolve(v View) Decision {
	authed := g.auth.IsAuthenticated()

	switch {
	case v.Protected() && !authed:
		return Decision{Action: RedirectLogin, View: ViewLogin}
	case !v.Protected() && authed:
		return Decision{Action: RedirectDashboard, View: ViewDashboard}
	}
	return Decision{Action: Render, View: v}
}

// Menu returns the navigation entries shown for the current session.
func (g *Gate) Menu() []View {
	if g.auth.IsAuthenticated() {
		return append([]View(nil), Protected...)
	}
	return []View{ViewLogin}
}
