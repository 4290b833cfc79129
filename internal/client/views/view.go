package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/client"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/logging"
)

const (
	DefaultRedirectDelay = 2 * time.Second
	DefaultLookupDelay   = 500 * time.Millisecond
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgGenericFailure = "Something went wrong. Please try again."
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Navigator receives navigation requests raised by views.
type Navigator interface {
	Navigate(v gate.View)
}

// SessionStore is the part of the session the views act on.
type SessionStore interface {
	Login(ctx context.Context, token, role string) error
	Logout(ctx context.Context) error
	IsAdmin() bool
}

// Deps are the collaborators shared by all views.
type Deps struct {
	API     client.Client
	Session SessionStore
	Nav     Navigator
	Log     logging.Logger

	RedirectDelay time.Duration
	LookupDelay   time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	if d.RedirectDelay <= 0 {
		d.RedirectDelay = DefaultRedirectDelay
	}
	if d.LookupDelay <= 0 {
		d.LookupDelay = DefaultLookupDelay
	}
	return d
}

// ValidationError is an input problem caught before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// base carries the state every view shares. mu also guards the fields of the
// embedding view.
type base struct {
	name string
	deps Deps

	mu     sync.Mutex
	status Status
	msg    string
	err    error
	seq    uint64
	closed bool
	timers []*time.Timer

	// authExempt keeps a 401 from being treated as an expired session.
	authExempt bool
}

func (b *base) init(name string, d Deps) {
	b.name = name
	b.deps = d.withDefaults()
}

func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *base) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

func (b *base) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close unmounts the view. Pending redirects are dropped and late results
// are ignored.
func (b *base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked()
}

func (b *base) closeLocked() {
	b.closed = true
	b.seq++
	for _, t := range b.timers {
		t.Stop()
	}
	b.timers = nil
}

// startLocked opens a new request generation and reports false once closed.
func (b *base) startLocked() (uint64, bool) {
	if b.closed {
		return 0, false
	}
	b.seq++
	b.status = StatusLoading
	b.msg = ""
	b.err = nil
	return b.seq, true
}

func (b *base) currentLocked(seq uint64) bool {
	return !b.closed && seq == b.seq
}

// rejectLocked records a validation failure. It supersedes any request in flight.
func (b *base) rejectLocked(err *ValidationError) {
	if b.closed {
		return
	}
	b.seq++
	b.status = StatusError
	b.msg = err.Message
	b.err = err
}

func (b *base) reject(err *ValidationError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectLocked(err)
}

// finish applies the outcome of request seq. apply runs under the lock on
// both paths and may set a success message. It reports false for a stale
// result.
func (b *base) finish(ctx context.Context, seq uint64, err error, fallback string, apply func()) bool {
	b.mu.Lock()
	if !b.currentLocked(seq) {
		b.mu.Unlock()
		b.deps.Log.Debug(ctx, "stale result dropped", "view", b.name, "seq", seq)
		return false
	}
	b.settleLocked(err, fallback, apply)
	b.mu.Unlock()

	b.afterError(ctx, err)
	return true
}

// settle is finish for operations that must not cancel the view's main
// request, such as deleting a row.
func (b *base) settle(ctx context.Context, err error, fallback string, apply func()) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	b.settleLocked(err, fallback, apply)
	b.mu.Unlock()

	b.afterError(ctx, err)
	return true
}

func (b *base) settleLocked(err error, fallback string, apply func()) {
	if apply != nil {
		apply()
	}
	if err == nil {
		b.status = StatusSuccess
		b.err = nil
		return
	}
	b.status = StatusError
	b.err = err
	if !b.authExempt && errors.Is(err, client.ErrUnauthorized) {
		b.msg = msgSessionExpired
		return
	}
	b.msg = messageFor(err, fallback)
}

func (b *base) afterError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	b.deps.Log.Debug(ctx, "view request failed", "view", b.name, "error", err)
	if !b.authExempt && errors.Is(err, client.ErrUnauthorized) {
		b.expire(ctx)
	}
}

// expire signs out after the backend rejected the credential.
func (b *base) expire(ctx context.Context) {
	if err := b.deps.Session.Logout(ctx); err != nil {
		b.deps.Log.Warn(ctx, "sign out after rejected credential failed", "view", b.name, "error", err)
	}
	b.deps.Nav.Navigate(gate.ViewLogin)
}

// redirectLocked navigates to v after the redirect delay unless the view is
// closed first.
func (b *base) redirectLocked(v gate.View) {
	if b.closed {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(b.deps.RedirectDelay, func() {
		b.mu.Lock()
		if b.closed {
			b.mu.Unlock()
			return
		}
		for i, pending := range b.timers {
			if pending == t {
				b.timers = append(b.timers[:i], b.timers[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
		b.deps.Nav.Navigate(v)
	})
	b.timers = append(b.timers, t)
}

// RedirectPending reports whether a delayed navigation is scheduled.
func (b *base) RedirectPending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers) > 0
}

// messageFor picks the text shown for err. Transport failures get the
// fallback; backend answers carry their own message when they have one.
func messageFor(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 && apiErr.Message != "" {
		return apiErr.Message
	}

	if fallback != "" {
		return fallback
	}
	return msgGenericFailure
}
