package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/evidence"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/dmitrijs2005/traffichub/internal/client/views"
)

func (a *App) newScreen(v gate.View) screen {
	switch v {
	case gate.ViewLanding, gate.ViewLogin:
		return views.NewLogin(a.deps)
	case gate.ViewDashboard:
		return views.NewDashboard(a.deps)
	case gate.ViewProfile:
		return views.NewProfile(a.deps)
	case gate.ViewVehicles:
		return views.NewVehicles(a.deps)
	case gate.ViewViolations:
		return views.NewViolations(a.deps)
	case gate.ViewPayments:
		return views.NewPayments(a.deps)
	case gate.ViewRegisterVehicle:
		return views.NewRegisterVehicle(a.deps)
	case gate.ViewAddViolation:
		return views.NewAddViolation(a.deps)
	case gate.ViewAutoDetect:
		return views.NewAutoDetect(a.deps)
	}
	return nil
}

// enter runs the mounted view: loads what it shows or walks the user through
// its form.
func (a *App) enter(ctx context.Context, v gate.View, args []string) {
	switch s := a.active.(type) {
	case *views.LoginView:
		if v == gate.ViewLogin && a.redirecting {
			a.println("Type 'login' to sign in.")
		}
	case *views.DashboardView:
		s.Load(ctx)
		a.report(s)
		if d := s.Data(); d != nil {
			a.renderDashboard(d)
		}
	case *views.ProfileView:
		s.Load(ctx)
		a.report(s)
		if p := s.Data(); p != nil {
			a.renderProfile(p)
		}
	case *views.VehiclesView:
		s.Load(ctx)
		a.showVehicles(s)
	case *views.ViolationsView:
		plate := strings.Join(args, " ")
		if plate == "" && a.redirecting {
			a.println("Type 'search <plate>' to look up violations.")
			return
		}
		if plate == "" {
			plate = a.ask("License plate number:")
		}
		a.search(ctx, s, plate)
	case *views.PaymentsView:
		a.payments(ctx, s, args)
	case *views.RegisterVehicleView:
		a.registerVehicle(ctx, s)
	case *views.AddViolationView:
		a.addViolation(ctx, s)
	case *views.AutoDetectView:
		a.autoDetect(ctx, s, args)
	}
}

// report prints the view's outcome message.
func (a *App) report(s screen) {
	msg := s.Message()
	if msg == "" {
		return
	}
	if s.Status() == views.StatusError {
		a.println("Error:", msg)
		return
	}
	a.println(msg)
}

func (a *App) login(ctx context.Context, v *views.LoginView, args []string) {
	username := strings.Join(args, " ")
	if username == "" {
		username = a.ask("Username:")
	}
	password, err := a.readSecret()
	if err != nil {
		a.println("Error: could not read password")
		return
	}

	v.Submit(ctx, username, password)
	a.report(v)
	if v.Status() == views.StatusSuccess {
		a.username = v.Username()
	}
}

// register creates an account from the landing view.
func (a *App) register(ctx context.Context, args []string) {
	if a.isLoggedIn() {
		a.open(ctx, gate.ViewLanding, nil)
		return
	}
	if a.current != gate.ViewLanding && a.current != gate.ViewLogin {
		a.open(ctx, gate.ViewLanding, nil)
	}
	v, ok := a.active.(*views.LoginView)
	if !ok {
		return
	}

	username := strings.Join(args, " ")
	if username == "" {
		username = a.ask("Choose a username:")
	}
	password, err := a.readSecret()
	if err != nil {
		a.println("Error: could not read password")
		return
	}

	v.Register(ctx, username, password)
	a.report(v)
}

func (a *App) showVehicles(v *views.VehiclesView) {
	a.report(v)
	if v.Status() == views.StatusError {
		a.println("Type 'retry' to try again.")
		return
	}
	list := v.Vehicles()
	a.renderVehicles(list)
	if v.CanDelete() && len(list) > 0 {
		a.println("Type 'delete <plate>' to remove a vehicle.")
	}
}

func (a *App) deleteVehicle(ctx context.Context, args []string) {
	v, ok := a.active.(*views.VehiclesView)
	if !ok {
		a.println("Open the vehicles view first.")
		return
	}
	if !v.CanDelete() {
		a.println("Error: Only administrators can delete vehicles")
		return
	}
	plate := strings.Join(args, " ")
	if plate == "" {
		plate = a.ask("License plate to delete:")
	}

	confirmed := false
	v.Delete(ctx, plate, func(prompt string) bool {
		confirmed = a.confirm(prompt)
		return confirmed
	})
	switch {
	case v.Closed():
	case v.Status() == views.StatusError:
		a.report(v)
	case !confirmed:
		a.println("Deletion cancelled.")
	default:
		a.report(v)
		a.renderVehicles(v.Vehicles())
	}
}

func (a *App) searchViolations(ctx context.Context, args []string) {
	v, ok := a.active.(*views.ViolationsView)
	if !ok {
		a.open(ctx, gate.ViewViolations, args)
		return
	}
	a.search(ctx, v, strings.Join(args, " "))
}

func (a *App) search(ctx context.Context, v *views.ViolationsView, plate string) {
	v.Search(ctx, plate)
	a.report(v)
	if v.Status() == views.StatusSuccess {
		a.renderViolations(v, v.Results())
	}
}

func (a *App) registerVehicle(ctx context.Context, v *views.RegisterVehicleView) {
	veh := models.Vehicle{
		OwnerName:    a.ask("Owner name:"),
		LicensePlate: a.ask("License plate:"),
	}
	vt, err := GetChoice(a.in, "Vehicle type:", models.VehicleTypes, models.VehicleTypeCar, a.out)
	if err != nil {
		vt = ""
	}
	veh.VehicleType = vt
	veh.Contact = a.ask("Contact:")
	veh.Address = a.ask("Address:")

	v.Submit(ctx, veh)
	a.report(v)
}

func (a *App) addViolation(ctx context.Context, v *views.AddViolationView) {
	v.Load(ctx)
	if v.Status() == views.StatusError {
		a.report(v)
	}

	var nv models.NewViolation
	plates := v.Plates()
	if len(plates) > 0 {
		p, err := GetChoice(a.in, "License plate:", plates, "", a.out)
		if err == nil {
			nv.LicensePlate = p
		}
	} else {
		nv.LicensePlate = a.ask("License plate:")
	}

	t, err := GetChoice(a.in, "Violation type:", models.ViolationTypes, "", a.out)
	if err == nil {
		nv.ViolationType = t
	}

	fine := a.ask(fmt.Sprintf("Fine amount (at least %.0f):", models.MinFineAmount))
	if f, err := strconv.ParseFloat(strings.TrimSpace(fine), 64); err == nil {
		nv.FineAmount = f
	}
	nv.Location = a.ask("Location:")

	v.Submit(ctx, nv)
	a.report(v)
}

func (a *App) payments(ctx context.Context, v *views.PaymentsView, args []string) {
	id := strings.Join(args, " ")
	if id == "" {
		id = a.ask("Violation ID:")
	}
	v.TypeViolationID(id)
	if err := v.WaitSettled(ctx); err != nil {
		return
	}
	a.report(v)
	if _, ok := v.FineAmount(); !ok {
		return
	}

	names := make([]string, 0, len(models.PaymentMethods))
	for _, m := range models.PaymentMethods {
		names = append(names, string(m))
	}
	choice, err := GetChoice(a.in, "Payment method:", names, string(v.Method()), a.out)
	if err != nil {
		return
	}
	m, err := models.ParsePaymentMethod(choice)
	if err != nil {
		a.println("Error:", err)
		return
	}
	v.SelectMethod(m)
	v.Proceed(ctx)
	a.report(v)

	switch v.Panel() {
	case views.PanelCard:
		v.SetCardField(views.CardNumber, a.ask("Card number:"))
		v.SetCardField(views.CardHolder, a.ask("Card holder:"))
		v.SetCardField(views.CardExpiry, a.ask("Expiry (MM/YY):"))
		v.SetCardField(views.CardCVV, a.ask("CVV:"))
		v.SubmitCard(ctx)
		a.report(v)
	case views.PanelUPI:
		if a.confirm("I've paid") {
			v.ConfirmUPI(ctx)
			a.report(v)
			return
		}
		v.Cancel()
		a.println("Payment cancelled.")
	}
}

func (a *App) autoDetect(ctx context.Context, v *views.AutoDetectView, args []string) {
	path := strings.Join(args, " ")
	if path == "" {
		path = a.ask("Image file path:")
	}
	v.Select(path)
	p := v.Preview()
	if p == nil {
		if v.Status() == views.StatusError {
			a.report(v)
			return
		}
	} else {
		a.println("Selected:", p.String())
	}

	v.Submit(ctx)
	a.report(v)
}

func (a *App) exportEvidence(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.open(ctx, gate.ViewViolations, nil)
		return
	}
	if len(args) == 0 {
		a.println("Usage: evidence <name>")
		return
	}
	if a.sink == nil {
		a.println("Error: evidence export is not configured")
		return
	}

	name := args[0]
	if v, ok := a.active.(*views.ViolationsView); ok {
		if i := slices.IndexFunc(v.Results(), func(x models.Violation) bool {
			return strconv.FormatInt(x.ViolationID, 10) == name && x.HasEvidence()
		}); i >= 0 {
			name = v.Results()[i].EvidenceImage
		}
	}

	loc, err := evidence.Export(ctx, a.api, a.sink, name)
	if err != nil {
		a.log.Warn(ctx, "evidence export failed", "name", name, "error", err)
		a.println("Error: could not export evidence", name)
		return
	}
	a.println("Evidence saved to", loc)
}
