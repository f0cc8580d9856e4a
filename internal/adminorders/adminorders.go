// Package adminorders is the admin console's order management controller:
// the full order list with status and search filtering, confirm-gated
// status transitions, and edits to an order's delivery details.
package adminorders

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/session"
)

type Controller struct {
	client   *api.OrdersClient
	sessions *session.Manager
	notifier notify.Notifier
	logger   *log.Logger

	orders []api.Order
}

func NewController(client *api.OrdersClient, sessions *session.Manager, notifier notify.Notifier, logger *log.Logger) *Controller {
	return &Controller{client: client, sessions: sessions, notifier: notifier, logger: logger}
}

// Load fetches every order, server-filtered by status when one is given. A
// search query is additionally matched client-side against order number and
// customer name.
func (c *Controller) Load(ctx context.Context, status, query string) ([]api.Order, error) {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil, nil
	}
	orders, err := c.client.All(ctx, status)
	if err != nil {
		c.logger.Printf("adminorders: load failed: %v", err)
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return nil, err
	}
	if query != "" {
		q := strings.ToLower(query)
		filtered := make([]api.Order, 0, len(orders))
		for _, o := range orders {
			if strings.Contains(strings.ToLower(o.OrderNumber), q) ||
				strings.Contains(strings.ToLower(o.CustomerName), q) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	c.orders = orders
	return orders, nil
}

func (c *Controller) Orders() []api.Order { return c.orders }

// UpdateStatus moves an order to a new status after confirmation and
// reflects it in the loaded list.
func (c *Controller) UpdateStatus(ctx context.Context, orderID int, status string) error {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil
	}
	if !c.notifier.Confirm("Update Order Status", fmt.Sprintf("Change order status to %s?", status)) {
		return nil
	}
	if err := c.client.UpdateStatus(ctx, orderID, status); err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return err
	}
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			c.orders[i].Status = status
		}
	}
	c.notifier.Notify(notify.SeveritySuccess, "Updated", "Order status updated successfully")
	return nil
}

// EditDelivery rewrites the delivery address and special instructions on an
// order.
func (c *Controller) EditDelivery(ctx context.Context, orderID int, address, instructions string) error {
	if _, ok := c.sessions.RequireAuth(ctx, session.UserTypeAdmin); !ok {
		return nil
	}
	req := api.UpdateOrderRequest{DeliveryAddress: address, SpecialInstructions: instructions}
	if err := c.client.Update(ctx, orderID, req); err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return err
	}
	c.notifier.Notify(notify.SeveritySuccess, "Saved", "Order updated successfully")
	return nil
}
