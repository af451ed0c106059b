package api

import (
	"context"
	"net/http"

	"github.com/saikamaik/airline-sub000/pkg/session"
)

// AuthRequest is the login payload.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the mobile sign-up payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the backend's answer to login and register.
type AuthResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Login authenticates against the backend and stores the returned session in
// the injected store. On failure the server-provided message is surfaced via
// *APIError.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, AuthRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.session.Set(session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Roles:    resp.Roles,
	})

	c.log.Info().Str("username", resp.Username).Msg("Authenticated")
	return &resp, nil
}

// Register creates a client account and logs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}

	c.session.Set(session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Roles:    resp.Roles,
	})

	return &resp, nil
}

// Logout clears the session store. There is no server call: the backend's
// tokens are stateless and simply stop being sent.
func (c *Client) Logout() {
	c.session.Clear()
}
