package client

import (
	"context"
	"fmt"
	"strings"
)

func (g *Gateway) Register(ctx context.Context, username, email, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidArgument)
	}
	var resp authResponse
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := g.post(ctx, "/api/register", req, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login authenticates and lets the cookie jar pick up the session cookie.
// remember is forwarded so the server can extend the cookie lifetime; local
// persistence of credentials is the session coordinator's business.
func (g *Gateway) Login(ctx context.Context, username, password string, remember bool) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidArgument)
	}
	var resp authResponse
	req := loginRequest{Username: username, Password: password, RememberMe: remember}
	if err := g.post(ctx, "/api/login", req, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (g *Gateway) Logout(ctx context.Context) error {
	return g.post(ctx, "/api/logout", nil, g.timeouts.Default, nil)
}

// CheckAuth asks the server whether the current cookie names a session. It
// has no side effects.
func (g *Gateway) CheckAuth(ctx context.Context) (*CheckAuthResponse, error) {
	var resp CheckAuthResponse
	if err := g.get(ctx, "/api/check-auth", g.timeouts.Check, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}
	var resp MessageResponse
	if err := g.post(ctx, "/api/forgot-password", map[string]string{"email": email}, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	if token == "" || newPassword == "" {
		return nil, fmt.Errorf("%w: token and password are required", ErrInvalidArgument)
	}
	var resp MessageResponse
	body := map[string]string{"token": token, "password": newPassword}
	if err := g.post(ctx, "/api/reset-password", body, g.timeouts.Default, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *Gateway) VerifyResetToken(ctx context.Context, token string) (*VerifyResetTokenResponse, error) {
	var resp VerifyResetTokenResponse
	if err := g.post(ctx, "/api/verify-reset-token", map[string]string{"token": token}, g.timeouts.Check, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
