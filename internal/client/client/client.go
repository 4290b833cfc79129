package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

// TokenSource yields the current credential, or "" when signed out.
type TokenSource interface {
	Token() string
}

// Upload is a file handed to AutoDetect.
type Upload struct {
	Name   string
	Reader io.Reader
}

type Client interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Register(ctx context.Context, username, password string) (string, error)

	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	RegisterVehicle(ctx context.Context, v models.Vehicle) (string, error)
	DeleteVehicle(ctx context.Context, licensePlate string) (string, error)

	ListViolations(ctx context.Context, licensePlate string) ([]models.Violation, error)
	GetViolation(ctx context.Context, id string) (*models.Violation, error)
	AddViolation(ctx context.Context, v models.NewViolation) (string, error)
	PayFine(ctx context.Context, id int64, method models.PaymentMethod, card *models.CardDetails) (string, error)
	AutoDetect(ctx context.Context, file Upload) (string, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ProfileStats(ctx context.Context) (*models.ProfileStats, error)

	FetchEvidence(ctx context.Context, name string) (io.ReadCloser, error)
	EvidenceURL(name string) string
}
