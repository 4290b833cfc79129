// Package session holds the signed-in credential of the client.
//
// Store is the single source of truth for the token and role. It keeps them
// in memory for the gate and the API client and mirrors them into the local
// SQLite metadata table so a restart picks the session back up.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/dmitrijs2005/traffichub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/traffichub/internal/common"
	"github.com/dmitrijs2005/traffichub/internal/dbx"
	"github.com/dmitrijs2005/traffichub/internal/logging"
)

type Store struct {
	db  *sql.DB
	log logging.Logger

	mu   sync.RWMutex
	sess models.Session
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{db: db, log: log}
}

// Load restores the persisted session. Storage failures are logged and leave
// the store signed out.
func (s *Store) Load(ctx context.Context) {
	entries, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		s.log.Warn(ctx, "session load failed, starting signed out", "error", err)
		s.set(models.Session{})
		return
	}

	token, role := entries[common.SessionTokenKey], entries[common.SessionRoleKey]
	s.set(models.Session{Token: token, Role: role})
	s.log.Debug(ctx, "session loaded", "authenticated", token != "", "role", role)
}

// Login persists token and role together and only then exposes them. On
// error the store is left signed out.
func (s *Store) Login(ctx context.Context, token, role string) error {
	if token == "" {
		s.set(models.Session{})
		return fmt.Errorf("login: %w", common.ErrorIncorrectInput)
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, token); err != nil {
			return err
		}
		if role == "" {
			return repo.Delete(ctx, common.SessionRoleKey)
		}
		return repo.Set(ctx, common.SessionRoleKey, role)
	})
	if err != nil {
		s.set(models.Session{})
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s.set(models.Session{Token: token, Role: role})
	return nil
}

// Logout forgets the session in memory unconditionally, then clears the
// metadata table, which holds nothing but the session. The returned error is
// informational.
func (s *Store) Logout(ctx context.Context) error {
	s.set(models.Session{})

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		s.log.Warn(ctx, "session entries not removed", "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) set(sess models.Session) {
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()
}

func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

func (s *Store) Token() string {
	return s.Snapshot().Token
}

func (s *Store) Role() string {
	return s.Snapshot().Role
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().Authenticated()
}

// IsAdmin decides whether admin-only controls are shown. It is a UI gate;
// the backend enforces the real rule.
func (s *Store) IsAdmin() bool {
	sess := s.Snapshot()
	return sess.Authenticated() && sess.Role == common.RoleAdmin
}
