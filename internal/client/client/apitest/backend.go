// Package apitest provides an in-memory Traffic Hub backend for tests.
//
// Backend serves the same routes, status codes and JSON shapes as the real
// service, records every call it receives and can be told to fail a route.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// Route names accepted by Calls, LastRequest and Fail.
const (
	RouteLogin           = "login"
	RouteRegister        = "register"
	RouteGetVehicles     = "get-vehicles"
	RouteRegisterVehicle = "register-vehicle"
	RouteDeleteVehicle   = "delete-vehicle"
	RouteGetViolations   = "get-violations"
	RouteGetViolation    = "get-violation"
	RouteAddViolation    = "add-violation"
	RoutePayFine         = "pay-fine"
	RouteAutoDetect      = "autodetect"
	RouteDashboardStats  = "dashboard-stats"
	RouteProfileStats    = "my-profile-stats"
	RouteEvidence        = "evidence"
)

var signingKey = []byte("apitest-secret")

type user struct {
	password string
	role     string
}

// Payment is a recorded pay-fine call.
type Payment struct {
	ViolationID int64
	Request     models.PayFineRequest
}

// Upload is a recorded autodetect call.
type Upload struct {
	Filename string
	Size     int
}

type failure struct {
	status int
	body   map[string]string
}

type Backend struct {
	mu sync.Mutex

	users      map[string]user
	vehicles   []models.Vehicle
	violations []models.Violation
	evidence   map[string][]byte
	nextVeh    int64
	nextViol   int64

	calls    map[string]int
	last     map[string]*http.Request
	failures map[string]failure
	payments []Payment
	uploads  []Upload

	// AutoDetectMessage is returned by a successful autodetect call.
	AutoDetectMessage string
	// OmitLoginRole drops the role field from login responses.
	OmitLoginRole bool

	router *mux.Router
}

func New() *Backend {
	b := &Backend{
		users:             map[string]user{},
		evidence:          map[string][]byte{},
		calls:             map[string]int{},
		last:              map[string]*http.Request{},
		failures:          map[string]failure{},
		AutoDetectMessage: "Success! Violation added.",
	}
	b.router = b.routes()
	return b
}

// Start serves the backend on a test server closed at the end of the test.
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.router)
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) Handler() http.Handler {
	return b.router
}

func (b *Backend) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.record)

	r.HandleFunc("/login", b.login).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/register", b.register).Methods(http.MethodPost).Name(RouteRegister)
	r.HandleFunc("/get-vehicles", b.auth(b.getVehicles)).Methods(http.MethodGet).Name(RouteGetVehicles)
	r.HandleFunc("/register-vehicle", b.registerVehicle).Methods(http.MethodPost).Name(RouteRegisterVehicle)
	r.HandleFunc("/delete-vehicle/{plate}", b.auth(b.deleteVehicle)).Methods(http.MethodDelete).Name(RouteDeleteVehicle)
	r.HandleFunc("/get-violations/{plate}", b.getViolations).Methods(http.MethodGet).Name(RouteGetViolations)
	r.HandleFunc("/get-violation/{id}", b.auth(b.getViolation)).Methods(http.MethodGet).Name(RouteGetViolation)
	r.HandleFunc("/add-violation", b.addViolation).Methods(http.MethodPost).Name(RouteAddViolation)
	r.HandleFunc("/pay-fine/{id:[0-9]+}", b.auth(b.payFine)).Methods(http.MethodPut).Name(RoutePayFine)
	r.HandleFunc("/autodetect", b.auth(b.autodetect)).Methods(http.MethodPost).Name(RouteAutoDetect)
	r.HandleFunc("/dashboard-stats", b.auth(b.dashboardStats)).Methods(http.MethodGet).Name(RouteDashboardStats)
	r.HandleFunc("/my-profile-stats", b.auth(b.profileStats)).Methods(http.MethodGet).Name(RouteProfileStats)
	r.HandleFunc("/evidence/{name}", b.serveEvidence).Methods(http.MethodGet).Name(RouteEvidence)
	return r
}

// record counts the call and applies a configured failure before the handler runs.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		b.mu.Lock()
		b.calls[name]++
		b.last[name] = r.Clone(r.Context())
		f, failing := b.failures[name]
		b.mu.Unlock()

		if failing {
			writeJSON(w, f.status, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxUser struct {
	name string
	role string
}

func (b *Backend) auth(h func(http.ResponseWriter, *http.Request, ctxUser)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
			return
		}

		sub, _ := claims.GetSubject()
		role, _ := claims["role"].(string)
		h(w, r, ctxUser{name: sub, role: role})
	}
}

// IssueToken signs a credential for username with the given role claim.
func (b *Backend) IssueToken(username, role string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	return s
}

func (b *Backend) AddUser(username, password, role string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = user{password: password, role: role}
}

func (b *Backend) AddVehicle(v models.Vehicle) models.Vehicle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextVeh++
	v.VehicleID = b.nextVeh
	b.vehicles = append(b.vehicles, v)
	return v
}

// AddViolation attaches v to the vehicle with the given plate.
func (b *Backend) AddViolation(plate string, v models.Violation) models.Violation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addViolationLocked(plate, v)
}

func (b *Backend) addViolationLocked(plate string, v models.Violation) models.Violation {
	b.nextViol++
	v.ViolationID = b.nextViol
	v.LicensePlate = plate
	for _, veh := range b.vehicles {
		if veh.LicensePlate == plate {
			v.VehicleID = veh.VehicleID
		}
	}
	if v.Status == "" {
		v.Status = models.StatusUnpaid
	}
	if v.DateTime == "" {
		v.DateTime = time.Now().Format(models.DateTimeLayout)
	}
	b.violations = append(b.violations, v)
	return v
}

func (b *Backend) PutEvidence(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.evidence[name] = data
}

// Fail makes every following call to route answer status with body.
func (b *Backend) Fail(route string, status int, body map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, body: body}
}

func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// LastRequest returns a clone of the latest request to route, or nil.
func (b *Backend) LastRequest(route string) *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last[route]
}

func (b *Backend) Payments() []Payment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Payment(nil), b.payments...)
}

func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

func (b *Backend) Vehicles() []models.Vehicle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Vehicle(nil), b.vehicles...)
}

func (b *Backend) Violations() []models.Violation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Violation(nil), b.violations...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}
