package api

import (
	"context"

	"github.com/foodordering/storefront/internal/config"
)

type AuthClient struct {
	c   *Client
	eps config.Endpoints
}

func NewAuthClient(c *Client, eps config.Endpoints) *AuthClient {
	return &AuthClient{c: c, eps: eps}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthClient) Login(ctx context.Context, userType, username, password string) (*LoginResponse, error) {
	path := ac.eps.UserLogin
	if userType == "admin" {
		path = ac.eps.AdminLogin
	}
	var resp LoginResponse
	if err := ac.c.Post(ctx, path, loginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout hits the role-specific logout route. Callers treat failure as
// best-effort; local state is cleared regardless.
func (ac *AuthClient) Logout(ctx context.Context, userType string) error {
	path := ac.eps.UserLogout
	if userType == "admin" {
		path = ac.eps.AdminLogout
	}
	return ac.c.Post(ctx, path, struct{}{}, nil)
}

// Session probes the backend for cookie-based session state.
func (ac *AuthClient) Session(ctx context.Context) (*SessionInfo, error) {
	var resp SessionInfo
	if err := ac.c.Get(ctx, ac.eps.Session, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
