package api

import (
	"context"

	"github.com/foodordering/storefront/internal/config"
)

// AdminMenuClient covers the admin menu CRUD surface.
type AdminMenuClient struct {
	c   *Client
	eps config.Endpoints
}

func NewAdminMenuClient(c *Client, eps config.Endpoints) *AdminMenuClient {
	return &AdminMenuClient{c: c, eps: eps}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (mc *AdminMenuClient) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := mc.c.Get(ctx, mc.eps.AdminCategories, "", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (mc *AdminMenuClient) CreateCategory(ctx context.Context, req CategoryRequest) error {
	return mc.c.Post(ctx, mc.eps.AdminCategories, req, nil)
}

func (mc *AdminMenuClient) UpdateCategory(ctx context.Context, id int, req CategoryRequest) error {
	return mc.c.Put(ctx, expandID(mc.eps.AdminCategory, id), req, nil)
}

func (mc *AdminMenuClient) DeleteCategory(ctx context.Context, id int) error {
	return mc.c.Delete(ctx, expandID(mc.eps.AdminCategory, id))
}

type MenuItemRequest struct {
	CategoryID  int     `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

func (mc *AdminMenuClient) MenuItems(ctx context.Context) ([]MenuItem, error) {
	var resp struct {
		MenuItems []MenuItem `json:"menu_items"`
	}
	if err := mc.c.Get(ctx, mc.eps.AdminMenuItems, "", &resp); err != nil {
		return nil, err
	}
	return resp.MenuItems, nil
}

func (mc *AdminMenuClient) CreateMenuItem(ctx context.Context, req MenuItemRequest) error {
	return mc.c.Post(ctx, mc.eps.AdminMenuItems, req, nil)
}

func (mc *AdminMenuClient) UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) error {
	return mc.c.Put(ctx, expandID(mc.eps.AdminMenuItem, id), req, nil)
}

func (mc *AdminMenuClient) DeleteMenuItem(ctx context.Context, id int) error {
	return mc.c.Delete(ctx, expandID(mc.eps.AdminMenuItem, id))
}
