// Package api is the gateway for every call the client makes to the POS
// backend. It attaches the bearer token, classifies failures into the
// taxonomy screens rely on, and announces 401s on the event bus so the
// session store can revoke itself; screens never handle that case.
package api

import (
	"context"

	"github.com/marespinozac/comanda/config"
	"github.com/marespinozac/comanda/pkg/event"
	"github.com/marespinozac/comanda/pkg/http"
	"github.com/marespinozac/comanda/pkg/logger"
)

// EventUnauthorized is fired on the bus whenever any call comes back 401.
const EventUnauthorized = "auth.unauthorized"

// TokenSource yields the current bearer token; "" means anonymous.
type TokenSource interface {
	Token() string
}

// Client talks to one backend. Construct with New and share it; all methods
// are safe for use from the single UI goroutine plus pollers.
type Client struct {
	base   string
	tokens TokenSource
	bus    *event.Bus

	Auth       AuthAPI
	Categories CategoriesAPI
	Products   ProductsAPI
	Orders     OrdersAPI
}

// New builds a gateway rooted at baseURL (no trailing slash).
func New(baseURL string, tokens TokenSource, bus *event.Bus) *Client {
	c := &Client{base: baseURL, tokens: tokens, bus: bus}
	c.Auth = AuthAPI{c}
	c.Categories = CategoriesAPI{c}
	c.Products = ProductsAPI{c}
	c.Orders = OrdersAPI{c}
	return c
}

// do sends the request with the bearer token attached and turns any non-2xx
// response into an *Error. A 401 additionally fires EventUnauthorized.
// dest, when non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, req *http.Request, dest any) error {
	resp, err := req.Bearer(c.token()).Timeout(config.HTTPTimeout()).Send(ctx)
	if err != nil {
		logger.Warn("api: transport failure", "error", err)
		return transportError(err)
	}

	if !resp.OK() {
		apiErr := statusError(resp.StatusCode, resp.Raw)
		if apiErr.Kind == KindUnauthorized && c.bus != nil {
			c.bus.Fire(EventUnauthorized, nil)
		}
		return apiErr
	}

	if dest == nil {
		return nil
	}
	if err := resp.JSON(dest); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "unexpected response from server", cause: err}
	}
	return nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) url(path string) string { return c.base + path }
