package api

import (
	"context"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/pkg/http"
)

// AuthAPI wraps the /auth endpoints. Login and Register are the only calls
// in the client that go out without a bearer token (the token source is
// simply empty at that point).
type AuthAPI struct {
	c *Client
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterInput creates a new staff account.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a token and profile.
func (a AuthAPI) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var out LoginResult
	if err := a.c.do(ctx, http.Post(a.c.url("/auth/login")).Body(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a staff account.
func (a AuthAPI) Register(ctx context.Context, in RegisterInput) error {
	return a.c.do(ctx, http.Post(a.c.url("/auth/register")).Body(in), nil)
}

// Verify asks the server whether the current token is still good.
func (a AuthAPI) Verify(ctx context.Context) error {
	return a.c.do(ctx, http.Get(a.c.url("/auth/verify")), nil)
}
