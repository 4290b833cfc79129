package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	const op = "login"

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, validationError(op, "Username and password required")
	}

	var res models.LoginResult
	err := c.doJSON(ctx, op, http.MethodPost, "/login", models.Credentials{Username: username, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &APIError{Op: op, StatusCode: http.StatusOK, Message: "Login failed", Kind: ErrUnauthorized}
	}
	if res.Role == "" {
		res.Role = RoleFromToken(res.Token)
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (string, error) {
	const op = "register"

	if strings.TrimSpace(username) == "" || password == "" {
		return "", validationError(op, "Username and password required")
	}
	return c.doMessage(ctx, op, http.MethodPost, "/register", models.Credentials{Username: username, Password: password})
}

// RoleFromToken reads the role claim of a JWT without verifying it. The
// result is for display only; an opaque or malformed token yields "".
func RoleFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
