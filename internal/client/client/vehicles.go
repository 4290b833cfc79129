package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

func (c *HTTPClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	if err := c.doJSON(ctx, "list vehicles", http.MethodGet, "/get-vehicles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) RegisterVehicle(ctx context.Context, v models.Vehicle) (string, error) {
	const op = "register vehicle"

	if missing := v.MissingFields(); len(missing) > 0 {
		return "", validationError(op, "missing required fields: "+strings.Join(missing, ", "))
	}
	v.VehicleID = 0
	return c.doMessage(ctx, op, http.MethodPost, "/register-vehicle", v)
}

func (c *HTTPClient) DeleteVehicle(ctx context.Context, licensePlate string) (string, error) {
	const op = "delete vehicle"

	plate := strings.TrimSpace(licensePlate)
	if plate == "" {
		return "", validationError(op, "license plate is required")
	}
	return c.doMessage(ctx, op, http.MethodDelete, "/delete-vehicle/"+pathSegment(plate), nil)
}
