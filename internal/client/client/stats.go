package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

func (c *HTTPClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.doJSON(ctx, "dashboard stats", http.MethodGet, "/dashboard-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ProfileStats(ctx context.Context) (*models.ProfileStats, error) {
	var out models.ProfileStats
	if err := c.doJSON(ctx, "profile stats", http.MethodGet, "/my-profile-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
