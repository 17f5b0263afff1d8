// Package session owns the authenticated session: who is logged in, their
// token, and the file that lets the session survive restarts.
//
// The store is constructed once at startup and passed by reference to
// whatever needs it. It subscribes to the gateway's unauthorized event, so a
// 401 anywhere in the client revokes the session immediately: the one
// cross-cutting invariant: at most one authenticated session is active.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/event"
	"github.com/marespinozac/comanda/pkg/logger"
)

// ErrNotAuthenticated is returned by Verify when there is no session to verify.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// persisted is the on-disk shape.
type persisted struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store holds the current session. Safe for concurrent reads from pollers.
type Store struct {
	path string
	bus  *event.Bus

	mu     sync.RWMutex
	gw     *api.Client
	token  string
	user   models.User
	authed bool
}

// New builds a store backed by the file at path and restores any persisted
// session into memory (still unverified until Verify succeeds).
func New(path string, bus *event.Bus) *Store {
	s := &Store{path: path, bus: bus}
	s.restore()

	if bus != nil {
		bus.Listen(api.EventUnauthorized, func(any) {
			logger.Warn("session: server reported invalid token, logging out")
			s.clear()
		})
	}
	return s
}

// Attach wires the gateway the store uses for login and verification.
// Done after construction because the gateway needs the store as its
// token source.
func (s *Store) Attach(gw *api.Client) {
	s.mu.Lock()
	s.gw = gw
	s.mu.Unlock()
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user's profile.
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

// Login exchanges credentials for a session and persists it.
func (s *Store) Login(ctx context.Context, username, password string) error {
	gw := s.gateway()
	if gw == nil {
		return errors.New("session: no gateway attached")
	}

	result, err := gw.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = result.Token
	s.user = result.User
	s.authed = true
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		logger.Warn("session: could not persist", "error", err)
	}
	logger.Info("session: logged in", "user", result.User.Username, "role", result.User.Role)
	return nil
}

// Verify re-validates the persisted token against the server. A token whose
// exp claim is already past fails locally without a request. Any failure
// clears the session.
func (s *Store) Verify(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	gw := s.gw
	s.mu.RUnlock()

	if token == "" {
		return ErrNotAuthenticated
	}
	if expired(token) {
		logger.Info("session: stored token already expired")
		s.clear()
		return ErrNotAuthenticated
	}
	if gw == nil {
		return errors.New("session: no gateway attached")
	}

	if err := gw.Auth.Verify(ctx); err != nil {
		// The 401 path already cleared the session via the bus; clear for
		// the other failure kinds too so a broken token never lingers.
		s.clear()
		return err
	}

	s.mu.Lock()
	s.authed = true
	s.mu.Unlock()
	return nil
}

// Logout drops the session in memory and on disk.
func (s *Store) Logout() {
	s.clear()
	logger.Info("session: logged out")
}

// ── internals ────────────────────────────────────────────────────────────────

func (s *Store) gateway() *api.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gw
}

func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.authed = false
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.Warn("session: could not remove session file", "error", err)
	}
}

func (s *Store) restore() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil || p.Token == "" {
		return
	}

	s.mu.Lock()
	s.token = p.Token
	s.user = p.User
	// authed stays false until Verify confirms the token.
	s.mu.Unlock()
}

func (s *Store) persist() error {
	s.mu.RLock()
	p := persisted{Token: s.token, User: s.user}
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

// expired inspects the token's exp claim without verifying the signature;
// the client never holds the signing secret. Tokens without exp pass through
// to the server for the real answer.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
