package views

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/client"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

// fakeAPI answers every Client call from its fields and counts the calls.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	loginRes *models.LoginResult
	loginErr error
	regMsg   string
	regErr   error

	vehicles     []models.Vehicle
	vehiclesErr  error
	vehiclesGate chan struct{}
	deleteMsg   string
	deleteErr   error
	lastDeleted string

	registerVehMsg string
	registerVehErr error
	lastVehicle    models.Vehicle

	violations    []models.Violation
	violationsErr error

	getViolation    func(id string) (*models.Violation, error)
	getViolationIDs []string

	addViolationMsg string
	addViolationErr error
	lastNewViol     models.NewViolation

	payMsg   string
	payErr   error
	payments []payCall
	payGate  chan struct{}

	detectMsg    string
	detectErr    error
	lastUpload   string
	uploadedData string

	dashboard    *models.DashboardStats
	dashboardErr error
	profile      *models.ProfileStats
	profileErr   error
}

type payCall struct {
	id     int64
	method models.PaymentMethod
	card   *models.CardDetails
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Login(_ context.Context, username, _ string) (*models.LoginResult, error) {
	f.count("Login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	res := *f.loginRes
	res.Username = username
	return &res, nil
}

func (f *fakeAPI) Register(context.Context, string, string) (string, error) {
	f.count("Register")
	return f.regMsg, f.regErr
}

func (f *fakeAPI) ListVehicles(context.Context) ([]models.Vehicle, error) {
	f.count("ListVehicles")
	if f.vehiclesGate != nil {
		<-f.vehiclesGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Vehicle(nil), f.vehicles...), f.vehiclesErr
}

func (f *fakeAPI) RegisterVehicle(_ context.Context, v models.Vehicle) (string, error) {
	f.count("RegisterVehicle")
	f.mu.Lock()
	f.lastVehicle = v
	f.mu.Unlock()
	return f.registerVehMsg, f.registerVehErr
}

func (f *fakeAPI) DeleteVehicle(_ context.Context, plate string) (string, error) {
	f.count("DeleteVehicle")
	f.mu.Lock()
	f.lastDeleted = plate
	f.mu.Unlock()
	return f.deleteMsg, f.deleteErr
}

func (f *fakeAPI) ListViolations(context.Context, string) ([]models.Violation, error) {
	f.count("ListViolations")
	return f.violations, f.violationsErr
}

func (f *fakeAPI) GetViolation(_ context.Context, id string) (*models.Violation, error) {
	f.count("GetViolation")
	f.mu.Lock()
	f.getViolationIDs = append(f.getViolationIDs, id)
	fn := f.getViolation
	f.mu.Unlock()
	if fn == nil {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, notFound("Violation not found")
		}
		return &models.Violation{ViolationID: n, FineAmount: 500, Status: models.StatusUnpaid}, nil
	}
	return fn(id)
}

func (f *fakeAPI) ViolationLookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.getViolationIDs...)
}

func (f *fakeAPI) AddViolation(_ context.Context, v models.NewViolation) (string, error) {
	f.count("AddViolation")
	f.mu.Lock()
	f.lastNewViol = v
	f.mu.Unlock()
	return f.addViolationMsg, f.addViolationErr
}

func (f *fakeAPI) PayFine(_ context.Context, id int64, m models.PaymentMethod, card *models.CardDetails) (string, error) {
	f.count("PayFine")
	if f.payGate != nil {
		<-f.payGate
	}
	f.mu.Lock()
	f.payments = append(f.payments, payCall{id: id, method: m, card: card})
	f.mu.Unlock()
	return f.payMsg, f.payErr
}

func (f *fakeAPI) Payments() []payCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]payCall(nil), f.payments...)
}

func (f *fakeAPI) AutoDetect(_ context.Context, u client.Upload) (string, error) {
	f.count("AutoDetect")
	data, _ := io.ReadAll(u.Reader)
	f.mu.Lock()
	f.lastUpload = u.Name
	f.uploadedData = string(data)
	f.mu.Unlock()
	return f.detectMsg, f.detectErr
}

func (f *fakeAPI) DashboardStats(context.Context) (*models.DashboardStats, error) {
	f.count("DashboardStats")
	return f.dashboard, f.dashboardErr
}

func (f *fakeAPI) ProfileStats(context.Context) (*models.ProfileStats, error) {
	f.count("ProfileStats")
	return f.profile, f.profileErr
}

func (f *fakeAPI) FetchEvidence(context.Context, string) (io.ReadCloser, error) {
	f.count("FetchEvidence")
	return io.NopCloser(strings.NewReader("img")), nil
}

func (f *fakeAPI) EvidenceURL(name string) string {
	return "http://backend/evidence/" + name
}

type fakeSession struct {
	mu         sync.Mutex
	token      string
	role       string
	loginErr   error
	loginCalls int
	logouts    int
}

func (s *fakeSession) Login(_ context.Context, token, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginCalls++
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token, s.role = token, role
	return nil
}

func (s *fakeSession) Logout(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logouts++
	s.token, s.role = "", ""
	return nil
}

func (s *fakeSession) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.role == "admin"
}

func (s *fakeSession) Logouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

type fakeNav struct {
	ch chan gate.View
}

func newFakeNav() *fakeNav {
	return &fakeNav{ch: make(chan gate.View, 8)}
}

func (n *fakeNav) Navigate(v gate.View) {
	n.ch <- v
}

func (n *fakeNav) next(t *testing.T, within time.Duration) gate.View {
	t.Helper()
	select {
	case v := <-n.ch:
		return v
	case <-time.After(within):
		t.Fatalf("no navigation within %s", within)
		return ""
	}
}

func (n *fakeNav) none(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case v := <-n.ch:
		t.Fatalf("unexpected navigation to %s", v)
	case <-time.After(within):
	}
}

type env struct {
	api  *fakeAPI
	sess *fakeSession
	nav  *fakeNav
	deps Deps
}

func newEnv() *env {
	e := &env{
		api:  newFakeAPI(),
		sess: &fakeSession{token: "tok", role: "officer"},
		nav:  newFakeNav(),
	}
	e.deps = Deps{
		API:           e.api,
		Session:       e.sess,
		Nav:           e.nav,
		RedirectDelay: 30 * time.Millisecond,
		LookupDelay:   50 * time.Millisecond,
	}
	return e
}

func unauthorized() error {
	return &client.APIError{Op: "test", StatusCode: 401, Message: "Token has expired", Kind: client.ErrUnauthorized}
}

func notFound(msg string) error {
	return &client.APIError{Op: "test", StatusCode: 404, Message: msg, Kind: client.ErrNotFound}
}

func transport() error {
	return &client.APIError{Op: "test", Message: "network error", Kind: client.ErrUnavailable, Err: io.ErrUnexpectedEOF}
}
