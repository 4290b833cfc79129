package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/client/apitest"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string) (*HTTPClient, *apitest.Backend) {
	t.Helper()
	b := apitest.New()
	srv := b.Start(t)
	return NewHTTPClient(srv.URL+"/", 5*time.Second, staticToken(token)), b
}

func requireKind(t *testing.T, err error, kind error) *APIError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	return apiErr
}

func TestLogin_Success(t *testing.T) {
	c, b := newTestClient(t, "")
	b.AddUser("alice", "pw", "admin")

	res, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.Role)
	assert.Equal(t, "alice", res.Username)

	req := b.LastRequest(apitest.RouteLogin)
	require.NotNil(t, req)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestLogin_RoleFallsBackToTokenClaim(t *testing.T) {
	c, b := newTestClient(t, "")
	b.AddUser("bob", "pw", "officer")
	b.OmitLoginRole = true

	res, err := c.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "officer", res.Role)
}

func TestLogin_Rejected(t *testing.T) {
	c, b := newTestClient(t, "")
	b.AddUser("alice", "pw", "admin")

	_, err := c.Login(context.Background(), "alice", "nope")
	apiErr := requireKind(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestLogin_EmptyInputNeverSent(t *testing.T) {
	c, b := newTestClient(t, "")

	_, err := c.Login(context.Background(), " ", "pw")
	requireKind(t, err, ErrValidation)
	_, err = c.Login(context.Background(), "alice", "")
	requireKind(t, err, ErrValidation)
	assert.Zero(t, b.Calls(apitest.RouteLogin))
}

func TestRegister(t *testing.T) {
	c, b := newTestClient(t, "")

	msg, err := c.Register(context.Background(), "carol", "pw")
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)

	_, err = c.Register(context.Background(), "carol", "pw")
	apiErr := requireKind(t, err, ErrValidation)
	assert.Equal(t, "Username already exists", apiErr.Message)
	assert.Equal(t, 2, b.Calls(apitest.RouteRegister))
}

func TestBearerHeaderAttached(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	tok := b.IssueToken("alice", "admin")
	c := NewHTTPClient(srv.URL, time.Second, staticToken(tok))

	b.AddVehicle(models.Vehicle{LicensePlate: "KA01", OwnerName: "A"})
	list, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "KA01", list[0].LicensePlate)

	req := b.LastRequest(apitest.RouteGetVehicles)
	assert.Equal(t, "Bearer "+tok, req.Header.Get("Authorization"))
}

func TestProtectedCallWithoutToken(t *testing.T) {
	c, b := newTestClient(t, "")

	_, err := c.ListVehicles(context.Background())
	requireKind(t, err, ErrUnauthorized)
	assert.Empty(t, b.LastRequest(apitest.RouteGetVehicles).Header.Get("Authorization"))

	_, err = c.DashboardStats(context.Background())
	requireKind(t, err, ErrUnauthorized)
}

func TestRegisterVehicle(t *testing.T) {
	c, b := newTestClient(t, "")

	_, err := c.RegisterVehicle(context.Background(), models.Vehicle{OwnerName: "A"})
	apiErr := requireKind(t, err, ErrValidation)
	assert.Contains(t, apiErr.Message, "LicensePlate")
	assert.Zero(t, b.Calls(apitest.RouteRegisterVehicle))

	msg, err := c.RegisterVehicle(context.Background(), models.Vehicle{
		OwnerName: "A", LicensePlate: "KA01", VehicleType: "Car", Contact: "1", Address: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vehicle registered successfully!", msg)
	assert.Len(t, b.Vehicles(), 1)
}

func TestDeleteVehicle(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	b.AddVehicle(models.Vehicle{LicensePlate: "KA 01"})

	officer := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("o", "officer")))
	_, err := officer.DeleteVehicle(context.Background(), "KA 01")
	apiErr := requireKind(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	admin := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("a", "admin")))
	msg, err := admin.DeleteVehicle(context.Background(), "KA 01")
	require.NoError(t, err)
	assert.Equal(t, "Vehicle KA 01 deleted successfully", msg)
	assert.Empty(t, b.Vehicles())
}

func TestListViolations(t *testing.T) {
	c, b := newTestClient(t, "")
	b.AddVehicle(models.Vehicle{LicensePlate: "KA01"})
	b.AddVehicle(models.Vehicle{LicensePlate: "KA02"})
	b.AddViolation("KA01", models.Violation{ViolationType: "Speeding", FineAmount: 500, EvidenceImage: "e1.jpg"})

	list, err := c.ListViolations(context.Background(), " KA01 ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "e1.jpg", list[0].EvidenceImage)
	assert.InDelta(t, 500, list[0].FineAmount, 0.001)

	_, err = c.ListViolations(context.Background(), "KA02")
	apiErr := requireKind(t, err, ErrNotFound)
	assert.Equal(t, "No violations found for this vehicle.", apiErr.Message)

	_, err = c.ListViolations(context.Background(), "ZZ99")
	apiErr = requireKind(t, err, ErrNotFound)
	assert.Equal(t, "Vehicle not found", apiErr.Message)
}

func TestListViolations_EmptyPlateNeverSent(t *testing.T) {
	c, b := newTestClient(t, "")

	_, err := c.ListViolations(context.Background(), "   ")
	requireKind(t, err, ErrValidation)
	assert.Zero(t, b.Calls(apitest.RouteGetViolations))
}

func TestGetViolation(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	c := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("a", "admin")))
	b.AddVehicle(models.Vehicle{LicensePlate: "KA01"})
	v := b.AddViolation("KA01", models.Violation{FineAmount: 250})

	got, err := c.GetViolation(context.Background(), strconv.FormatInt(v.ViolationID, 10))
	require.NoError(t, err)
	assert.InDelta(t, 250, got.FineAmount, 0.001)
	assert.Equal(t, models.StatusUnpaid, got.Status)

	_, err = c.GetViolation(context.Background(), "999")
	requireKind(t, err, ErrNotFound)

	_, err = c.GetViolation(context.Background(), "V12")
	requireKind(t, err, ErrNotFound)
	assert.Equal(t, "/get-violation/V12", b.LastRequest(apitest.RouteGetViolation).URL.Path)

	_, err = c.GetViolation(context.Background(), " ")
	requireKind(t, err, ErrValidation)
}

func TestAddViolation(t *testing.T) {
	c, b := newTestClient(t, "")
	b.AddVehicle(models.Vehicle{LicensePlate: "KA01"})

	_, err := c.AddViolation(context.Background(), models.NewViolation{
		LicensePlate: "KA01", ViolationType: "Speeding", Location: "x", FineAmount: 50,
	})
	requireKind(t, err, ErrValidation)
	assert.Zero(t, b.Calls(apitest.RouteAddViolation))

	msg, err := c.AddViolation(context.Background(), models.NewViolation{
		LicensePlate: "KA01", ViolationType: "Speeding", Location: "x", FineAmount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Violation recorded successfully!", msg)
	assert.Len(t, b.Violations(), 1)
}

func TestPayFine(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	c := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("a", "admin")))
	b.AddVehicle(models.Vehicle{LicensePlate: "KA01"})
	v1 := b.AddViolation("KA01", models.Violation{FineAmount: 100})
	v2 := b.AddViolation("KA01", models.Violation{FineAmount: 200})

	card := &models.CardDetails{CardNumber: "1234 5678 9012 3456", CardHolder: "A B", ExpiryDate: "12/30", CVV: "123"}
	msg, err := c.PayFine(context.Background(), v1.ViolationID, models.PaymentCreditCard, card)
	require.NoError(t, err)
	assert.Equal(t, "Fine paid successfully!", msg)

	_, err = c.PayFine(context.Background(), v2.ViolationID, models.PaymentUPI, card)
	require.NoError(t, err)

	payments := b.Payments()
	require.Len(t, payments, 2)
	require.NotNil(t, payments[0].Request.PaymentDetails)
	assert.Equal(t, "1234567890123456", payments[0].Request.PaymentDetails.CardNumber)
	assert.Equal(t, "1234 5678 9012 3456", card.CardNumber, "caller's card must not be modified")
	assert.Equal(t, models.PaymentUPI, payments[1].Request.PaymentMethod)
	assert.Nil(t, payments[1].Request.PaymentDetails)
}

func TestPayFine_ValidationNeverSent(t *testing.T) {
	c, b := newTestClient(t, "tok")

	_, err := c.PayFine(context.Background(), 1, models.PaymentCreditCard, &models.CardDetails{CardNumber: "1"})
	requireKind(t, err, ErrValidation)
	_, err = c.PayFine(context.Background(), 1, "Cash", nil)
	requireKind(t, err, ErrValidation)
	_, err = c.PayFine(context.Background(), -1, models.PaymentUPI, nil)
	requireKind(t, err, ErrValidation)
	assert.Zero(t, b.Calls(apitest.RoutePayFine))
}

func TestAutoDetect(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	c := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("a", "admin")))

	msg, err := c.AutoDetect(context.Background(), Upload{Name: "/tmp/shot.png", Reader: strings.NewReader("PNGDATA")})
	require.NoError(t, err)
	assert.Equal(t, "Success! Violation added.", msg)

	uploads := b.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "shot.png", uploads[0].Filename)
	assert.Equal(t, 7, uploads[0].Size)

	_, err = c.AutoDetect(context.Background(), Upload{})
	requireKind(t, err, ErrValidation)
}

func TestStats(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	b.AddUser("alice", "pw", "admin")
	c := NewHTTPClient(srv.URL, time.Second, staticToken(b.IssueToken("alice", "admin")))
	b.AddVehicle(models.Vehicle{LicensePlate: "KA01"})
	b.AddViolation("KA01", models.Violation{ViolationType: "Speeding", FineAmount: 100, Status: models.StatusPaid})
	b.AddViolation("KA01", models.Violation{ViolationType: "Speeding", FineAmount: 300})

	ds, err := c.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalVehicles: 1, TotalViolations: 2, TotalPaid: 100, TotalUnpaid: 300, TopViolation: "Speeding",
	}, *ds)

	ps, err := c.ProfileStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", ps.Username)
	assert.Equal(t, "admin", ps.Role)
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	c, b := newTestClient(t, "")
	b.Fail(apitest.RouteGetViolations, http.StatusInternalServerError, map[string]string{"error": "Database connection failed"})

	_, err := c.ListViolations(context.Background(), "KA01")
	apiErr := requireKind(t, err, ErrUnavailable)
	assert.Equal(t, "Database connection failed", apiErr.Message)

	b.Fail(apitest.RouteGetViolations, http.StatusBadGateway, nil)
	_, err = c.ListViolations(context.Background(), "KA01")
	apiErr = requireKind(t, err, ErrUnavailable)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestTransportFailureMapsToUnavailable(t *testing.T) {
	b := apitest.New()
	srv := b.Start(t)
	c := NewHTTPClient(srv.URL, time.Second, nil)
	srv.Close()

	_, err := c.Login(context.Background(), "a", "b")
	apiErr := requireKind(t, err, ErrUnavailable)
	assert.Equal(t, "network error", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "login: network error")
}

func TestEvidence(t *testing.T) {
	c, b := newTestClient(t, "")
	b.PutEvidence("e1.jpg", []byte("JPEGDATA"))

	assert.True(t, strings.HasSuffix(c.EvidenceURL("e1.jpg"), "/evidence/e1.jpg"))
	assert.NotContains(t, c.EvidenceURL("e1.jpg"), "//evidence")

	rc, err := c.FetchEvidence(context.Background(), "e1.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "JPEGDATA", string(data))

	_, err = c.FetchEvidence(context.Background(), "missing.jpg")
	requireKind(t, err, ErrNotFound)
}

func TestRoleFromToken(t *testing.T) {
	b := apitest.New()
	assert.Equal(t, "admin", RoleFromToken(b.IssueToken("a", "admin")))
	assert.Empty(t, RoleFromToken("opaque-token"))
	assert.Empty(t, RoleFromToken(""))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "m", MessageOf(&APIError{Op: "x", Message: "m", Kind: ErrNotFound}))
	assert.Empty(t, MessageOf(errors.New("plain")))
}

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusConflict, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindForStatus(tt.code), "status %d", tt.code)
	}
}
