package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/client"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
)

const (
	msgLoginFailed     = "Login failed"
	msgNetworkError    = "Network error. Please try again."
	msgRegisterFailed  = "Registration failed"
	msgSessionNotSaved = "Could not save the session. Please try again."
)

// LoginView backs the landing page: sign in or create an account.
type LoginView struct {
	base
	username string
}

func NewLogin(d Deps) *LoginView {
	v := &LoginView{}
	v.init(string(gate.ViewLogin), d)
	v.authExempt = true
	return v
}

func (v *LoginView) Username() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.username
}

// Submit signs in. On success the session is stored and the shell is sent to
// the dashboard.
func (v *LoginView) Submit(ctx context.Context, username, password string) {
	username = strings.TrimSpace(username)

	v.mu.Lock()
	v.username = username
	if username == "" || password == "" {
		v.rejectLocked(invalid("username", "Username and password are required"))
		v.mu.Unlock()
		return
	}
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	res, err := v.deps.API.Login(ctx, username, password)
	fallback := loginFallback(err)
	if err == nil {
		v.mu.Lock()
		current := v.currentLocked(seq)
		v.mu.Unlock()
		if !current {
			return
		}
		if serr := v.deps.Session.Login(ctx, res.Token, res.Role); serr != nil {
			v.deps.Log.Error(ctx, "session not persisted", "error", serr)
			err = fmt.Errorf("save session: %w", serr)
			fallback = msgSessionNotSaved
		}
	}

	applied := v.finish(ctx, seq, err, fallback, func() {
		if err == nil {
			v.msg = fmt.Sprintf("Welcome, %s", res.Username)
		}
	})
	if applied && err == nil {
		v.deps.Log.Info(ctx, "signed in", "username", username, "role", res.Role)
		v.deps.Nav.Navigate(gate.ViewDashboard)
	}
}

// Register creates an account with the same inputs; the user still signs in
// afterwards.
func (v *LoginView) Register(ctx context.Context, username, password string) {
	username = strings.TrimSpace(username)

	v.mu.Lock()
	v.username = username
	if username == "" || password == "" {
		v.rejectLocked(invalid("username", "Username and password are required"))
		v.mu.Unlock()
		return
	}
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	msg, err := v.deps.API.Register(ctx, username, password)
	v.finish(ctx, seq, err, registerFallback(err), func() {
		if err == nil {
			v.msg = msg
			if v.msg == "" {
				v.msg = "Registration successful. Please log in."
			}
		}
	})
}

func loginFallback(err error) string {
	if isTransport(err) {
		return msgNetworkError
	}
	return msgLoginFailed
}

func registerFallback(err error) string {
	if isTransport(err) {
		return msgNetworkError
	}
	return msgRegisterFailed
}

// isTransport reports a failure that never got an HTTP answer.
func isTransport(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && errors.Is(err, client.ErrUnavailable) && apiErr.StatusCode == 0
}
