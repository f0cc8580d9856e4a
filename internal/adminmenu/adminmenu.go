// Package adminmenu is the admin console's menu CRUD controller. Every
// operation is gated on the admin role; destructive ones ask for
// confirmation first.
package adminmenu

import (
	"context"
	"log"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/session"
)

type Controller struct {
	client   *api.AdminMenuClient
	sessions *session.Manager
	notifier notify.Notifier
	logger   *log.Logger
}

func NewController(client *api.AdminMenuClient, sessions *session.Manager, notifier notify.Notifier, logger *log.Logger) *Controller {
	return &Controller{client: client, sessions: sessions, notifier: notifier, logger: logger}
}

func (c *Controller) Categories(ctx context.Context) ([]api.Category, error) {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil, nil
	}
	cats, err := c.client.Categories(ctx)
	if err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return nil, err
	}
	return cats, nil
}

func (c *Controller) CreateCategory(ctx context.Context, req api.CategoryRequest) error {
	return c.mutate(ctx, "Category created", func() error {
		return c.client.CreateCategory(ctx, req)
	})
}

func (c *Controller) UpdateCategory(ctx context.Context, id int, req api.CategoryRequest) error {
	return c.mutate(ctx, "Category updated", func() error {
		return c.client.UpdateCategory(ctx, id, req)
	})
}

func (c *Controller) DeleteCategory(ctx context.Context, id int) error {
	if !c.notifier.Confirm("Delete Category", "Deleting a category also removes its menu items. Continue?") {
		return nil
	}
	return c.mutate(ctx, "Category deleted", func() error {
		return c.client.DeleteCategory(ctx, id)
	})
}

func (c *Controller) MenuItems(ctx context.Context) ([]api.MenuItem, error) {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil, nil
	}
	items, err := c.client.MenuItems(ctx)
	if err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return nil, err
	}
	return items, nil
}

func (c *Controller) CreateMenuItem(ctx context.Context, req api.MenuItemRequest) error {
	return c.mutate(ctx, "Menu item created", func() error {
		return c.client.CreateMenuItem(ctx, req)
	})
}

func (c *Controller) UpdateMenuItem(ctx context.Context, id int, req api.MenuItemRequest) error {
	return c.mutate(ctx, "Menu item updated", func() error {
		return c.client.UpdateMenuItem(ctx, id, req)
	})
}

func (c *Controller) DeleteMenuItem(ctx context.Context, id int) error {
	if !c.notifier.Confirm("Delete Menu Item", "Remove this item from the menu?") {
		return nil
	}
	return c.mutate(ctx, "Menu item deleted", func() error {
		return c.client.DeleteMenuItem(ctx, id)
	})
}

func (c *Controller) mutate(ctx context.Context, successTitle string, op func() error) error {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil
	}
	if err := op(); err != nil {
		c.logger.Printf("adminmenu: %v", err)
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return err
	}
	c.notifier.Notify(notify.SeveritySuccess, successTitle, "")
	return nil
}
