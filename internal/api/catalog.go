package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/foodordering/storefront/internal/config"
)

type CatalogClient struct {
	c   *Client
	eps config.Endpoints
}

func NewCatalogClient(c *Client, eps config.Endpoints) *CatalogClient {
	return &CatalogClient{c: c, eps: eps}
}

func (cc *CatalogClient) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := cc.c.Get(ctx, cc.eps.Categories, "", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Menu lists menu items, optionally restricted to one category.
func (cc *CatalogClient) Menu(ctx context.Context, categoryID int) ([]MenuItem, error) {
	rawQuery := ""
	if categoryID > 0 {
		q := url.Values{}
		q.Set("category_id", strconv.Itoa(categoryID))
		rawQuery = q.Encode()
	}
	var resp struct {
		MenuItems []MenuItem `json:"menu_items"`
	}
	if err := cc.c.Get(ctx, cc.eps.Menu, rawQuery, &resp); err != nil {
		return nil, err
	}
	return resp.MenuItems, nil
}
