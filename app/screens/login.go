package screens

import (
	"context"
	"errors"

	"github.com/marespinozac/comanda/internal/session"
	"github.com/marespinozac/comanda/pkg/term"
)

// ErrMissingCredentials rejects a login attempt before any network call.
var ErrMissingCredentials = errors.New("enter both username and password")

// Login gates the shell: it keeps prompting until the session store accepts
// a credential pair or the user gives up.
type Login struct {
	store *session.Store
	io    *term.IO
}

// NewLogin builds the screen.
func NewLogin(store *session.Store, io *term.IO) *Login {
	return &Login{store: store, io: io}
}

// Attempt tries one credential pair. Blank fields fail locally.
func (s *Login) Attempt(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	return s.store.Login(ctx, username, password)
}

// Run prompts until login succeeds. An empty username quits and returns
// false.
func (s *Login) Run(ctx context.Context) (bool, error) {
	s.io.Println("── Sign in ──")
	for {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		username, err := s.io.Prompt("username (empty to quit)")
		if err != nil {
			return false, nil
		}
		if username == "" {
			return false, nil
		}
		password, err := s.io.Prompt("password")
		if err != nil {
			return false, nil
		}

		if err := s.Attempt(ctx, username, password); err != nil {
			s.io.Println("error:", err)
			continue
		}
		return true, nil
	}
}
