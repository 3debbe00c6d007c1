package rest

import (
	"context"
	"net/http"

	"chat-client/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Group    int    `json:"group"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string, group int) (models.Session, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", loginRequest{Email: email, Password: password, Group: group}, &resp)
	if err != nil {
		return models.Session{}, err
	}
	c.SetToken(resp.Token)
	return resp.Session(), nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, password, name string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "/auth/register", registerRequest{Email: email, Password: password, Name: name}, &resp)
	return resp, err
}

// Profile returns the authenticated user's account.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/profile", "/auth/profile", nil, &user)
	return user, err
}
