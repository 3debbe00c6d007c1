package rest

import (
	"context"
	"fmt"
	"net/http"

	"chat-client/internal/models"
)

// CRUD clients for the platform resources. These mirror the backend's
// routes one to one; the chat core never touches them.

// Petitions

func (c *Client) Petitions(ctx context.Context) ([]models.Petition, error) {
	var petitions []models.Petition
	err := c.do(ctx, http.MethodGet, "/petition", "/petition", nil, &petitions)
	return petitions, err
}

func (c *Client) Petition(ctx context.Context, id models.ID) (models.Petition, error) {
	var petition models.Petition
	err := c.do(ctx, http.MethodGet, "/petition/:id", fmt.Sprintf("/petition/%d", id), nil, &petition)
	return petition, err
}

func (c *Client) CreatePetition(ctx context.Context, payload models.Petition) (models.Petition, error) {
	var petition models.Petition
	err := c.do(ctx, http.MethodPost, "/petition", "/petition", payload, &petition)
	return petition, err
}

func (c *Client) UpdatePetition(ctx context.Context, id models.ID, payload models.Petition) (models.Petition, error) {
	var petition models.Petition
	err := c.do(ctx, http.MethodPut, "/petition/:id", fmt.Sprintf("/petition/%d", id), payload, &petition)
	return petition, err
}

func (c *Client) DeletePetition(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/petition/:id", fmt.Sprintf("/petition/%d", id), nil, nil)
}

// Categories

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/category", "/category", nil, &categories)
	return categories, err
}

func (c *Client) Category(ctx context.Context, id models.ID) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodGet, "/category/:id", fmt.Sprintf("/category/%d", id), nil, &category)
	return category, err
}

func (c *Client) CreateCategory(ctx context.Context, payload models.Category) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodPost, "/category", "/category", payload, &category)
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id models.ID, payload models.Category) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodPut, "/category/:id", fmt.Sprintf("/category/%d", id), payload, &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/category/:id", fmt.Sprintf("/category/%d", id), nil, nil)
}

// Notifications

func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := c.do(ctx, http.MethodGet, "/notifications", "/notifications", nil, &notifications)
	return notifications, err
}

func (c *Client) Notification(ctx context.Context, id models.ID) (models.Notification, error) {
	var notification models.Notification
	err := c.do(ctx, http.MethodGet, "/notifications/:id", fmt.Sprintf("/notifications/%d", id), nil, &notification)
	return notification, err
}

func (c *Client) CreateNotification(ctx context.Context, payload models.Notification) (models.Notification, error) {
	var notification models.Notification
	err := c.do(ctx, http.MethodPost, "/notifications", "/notifications", payload, &notification)
	return notification, err
}

func (c *Client) UpdateNotification(ctx context.Context, id models.ID, payload models.Notification) (models.Notification, error) {
	var notification models.Notification
	err := c.do(ctx, http.MethodPatch, "/notifications/:id", fmt.Sprintf("/notifications/%d", id), payload, &notification)
	return notification, err
}

func (c *Client) DeleteNotification(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/notifications/:id", fmt.Sprintf("/notifications/%d", id), nil, nil)
}

// Postulations

func (c *Client) Postulations(ctx context.Context) ([]models.Postulation, error) {
	var postulations []models.Postulation
	err := c.do(ctx, http.MethodGet, "/postulations", "/postulations", nil, &postulations)
	return postulations, err
}

func (c *Client) Postulation(ctx context.Context, id models.ID) (models.Postulation, error) {
	var postulation models.Postulation
	err := c.do(ctx, http.MethodGet, "/postulations/:id", fmt.Sprintf("/postulations/%d", id), nil, &postulation)
	return postulation, err
}

func (c *Client) CreatePostulation(ctx context.Context, payload models.Postulation) (models.Postulation, error) {
	var postulation models.Postulation
	err := c.do(ctx, http.MethodPost, "/postulations", "/postulations", payload, &postulation)
	return postulation, err
}

func (c *Client) UpdatePostulation(ctx context.Context, id models.ID, payload models.Postulation) (models.Postulation, error) {
	var postulation models.Postulation
	err := c.do(ctx, http.MethodPatch, "/postulations/:id", fmt.Sprintf("/postulations/%d", id), payload, &postulation)
	return postulation, err
}

func (c *Client) DeletePostulation(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/postulations/:id", fmt.Sprintf("/postulations/%d", id), nil, nil)
}

// User interests

func (c *Client) UserInterests(ctx context.Context) ([]models.UserInterest, error) {
	var interests []models.UserInterest
	err := c.do(ctx, http.MethodGet, "/user-interest", "/user-interest", nil, &interests)
	return interests, err
}

func (c *Client) AddUserInterest(ctx context.Context, payload models.UserInterest) (models.UserInterest, error) {
	var interest models.UserInterest
	err := c.do(ctx, http.MethodPost, "/user-interest", "/user-interest", payload, &interest)
	return interest, err
}

func (c *Client) RemoveUserInterest(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/user-interest/:id", fmt.Sprintf("/user-interest/%d", id), nil, nil)
}

// Users

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", "/users", nil, &users)
	return users, err
}

func (c *Client) User(ctx context.Context, id models.ID) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/users/:id", fmt.Sprintf("/users/%d", id), nil, &user)
	return user, err
}
