package client

import (
	"context"
	"net/http"
	"strings"

	"civictrack/models"
)

// Login authenticates with an email (citizens) or government ID (officials)
// and returns the new session. The caller persists it.
func (c *Client) Login(ctx context.Context, login, password string) (*Session, error) {
	payload := models.LoginRequest{Email: strings.TrimSpace(login), Password: password}
	if err := validate(payload); err != nil {
		return nil, err
	}
	req, err := c.jsonRequest(http.MethodPost, "/auth/login", nil, false, payload)
	if err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Kind: KindServer, Message: "Login response carried no token", StatusCode: http.StatusOK}
	}
	return &Session{Token: resp.Token, Role: resp.Role, UserID: resp.UserID, Login: payload.Email}, nil
}

// Register creates a citizen account
func (c *Client) Register(ctx context.Context, payload models.RegisterRequest) (string, error) {
	if err := validate(payload); err != nil {
		return "", err
	}
	return c.postMessage(ctx, "/auth/register", payload)
}

// RegisterGovernment creates a government official account
func (c *Client) RegisterGovernment(ctx context.Context, payload models.RegisterGovernmentRequest) (string, error) {
	if err := validate(payload); err != nil {
		return "", err
	}
	return c.postMessage(ctx, "/auth/register/government", payload)
}

// ForgotPassword requests a password reset email
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload := models.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := validate(payload); err != nil {
		return "", err
	}
	return c.postMessage(ctx, "/auth/forgot-password", payload)
}

// Profile returns the logged-in user's profile
func (c *Client) Profile(ctx context.Context, sess *Session) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/profile", sess: sess, auth: true}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout tells the server the session ends. Without a session there is
// nothing to end and no request is made.
func (c *Client) Logout(ctx context.Context, sess *Session) error {
	if !sess.LoggedIn() {
		return nil
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", sess: sess, auth: true}, nil)
}

func (c *Client) postMessage(ctx context.Context, path string, payload interface{}) (string, error) {
	req, err := c.jsonRequest(http.MethodPost, path, nil, false, payload)
	if err != nil {
		return "", err
	}
	var resp models.MessageResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
