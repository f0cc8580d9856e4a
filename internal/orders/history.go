// Package orders implements the order-history view state: the fetched
// order list, its status filter and pagination, the detail view, and
// receipt printing.
package orders

import (
	"context"
	"log"
	"sync"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/notify"
)

const DefaultPageSize = 5

type LoadOutcome string

const (
	LoadOK             LoadOutcome = "ok"
	LoadSessionExpired LoadOutcome = "session_expired"
	LoadFailed         LoadOutcome = "failed"
)

type Controller struct {
	client   *api.OrdersClient
	notifier notify.Notifier
	logger   *log.Logger

	pageSize int

	allOrders      []api.Order
	filteredOrders []api.Order
	statusFilter   string
	page           int

	// Detail view. Concurrent fetches race; the highest sequence number to
	// resolve wins and stale resolutions are dropped.
	mu        sync.Mutex
	detailSeq uint64
	detail    *api.OrderDetails

	receipts *ReceiptPrinter
}

func NewController(client *api.OrdersClient, notifier notify.Notifier, logger *log.Logger, receipts *ReceiptPrinter) *Controller {
	return &Controller{
		client:   client,
		notifier: notifier,
		logger:   logger,
		pageSize: DefaultPageSize,
		page:     1,
		receipts: receipts,
	}
}

// Load fetches the authenticated user's orders and resets filter and page.
func (c *Controller) Load(ctx context.Context) LoadOutcome {
	orders, err := c.client.MyOrders(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			c.notifier.Notify(notify.SeverityWarning, "Session expired",
				"Your session has expired. Please login again to continue.")
			return LoadSessionExpired
		}
		c.logger.Printf("orders: load failed: %v", err)
		c.notifier.Notify(notify.SeverityError, "Failed to load orders", "Please try again later.")
		return LoadFailed
	}

	c.allOrders = orders
	c.applyFilter()
	return LoadOK
}

// SetStatusFilter narrows the view to one status; empty means all. The
// filter is a pure predicate over the full fetched set and resets paging.
func (c *Controller) SetStatusFilter(status string) {
	c.statusFilter = status
	c.applyFilter()
}

func (c *Controller) ClearFilter() { c.SetStatusFilter("") }

func (c *Controller) applyFilter() {
	// Fresh slice: callers may still hold pages sliced from the old one.
	filtered := make([]api.Order, 0, len(c.allOrders))
	for _, o := range c.allOrders {
		if c.statusFilter == "" || o.Status == c.statusFilter {
			filtered = append(filtered, o)
		}
	}
	c.filteredOrders = filtered
	c.page = 1
}

func (c *Controller) Orders() []api.Order   { return c.allOrders }
func (c *Controller) Filtered() []api.Order { return c.filteredOrders }

func (c *Controller) PageCount() int {
	return (len(c.filteredOrders) + c.pageSize - 1) / c.pageSize
}

func (c *Controller) CurrentPage() int { return c.page }

func (c *Controller) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if max := c.PageCount(); max > 0 && n > max {
		n = max
	}
	c.page = n
}

// Page returns the orders on page n (1-based).
func (c *Controller) Page(n int) []api.Order {
	start := (n - 1) * c.pageSize
	if start < 0 || start >= len(c.filteredOrders) {
		return nil
	}
	end := start + c.pageSize
	if end > len(c.filteredOrders) {
		end = len(c.filteredOrders)
	}
	return c.filteredOrders[start:end]
}

// ViewDetails fetches the full order and opens the detail view. When
// several fetches are in flight the most recently started one determines
// the displayed content; older resolutions are dropped.
func (c *Controller) ViewDetails(ctx context.Context, orderID int) (*api.OrderDetails, error) {
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	c.mu.Unlock()

	details, err := c.client.Details(ctx, orderID)
	if err != nil {
		c.logger.Printf("orders: details %d failed: %v", orderID, err)
		c.notifier.Notify(notify.SeverityError, "Error", "Failed to load order details. Please try again.")
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == c.detailSeq {
		c.detail = details
	}
	return details, nil
}

// Detail returns the open detail view, or nil when closed.
func (c *Controller) Detail() *api.OrderDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail
}

func (c *Controller) CloseDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
}

// CancelOrder cancels a pending or confirmed order after user
// confirmation, then refreshes the list.
func (c *Controller) CancelOrder(ctx context.Context, orderID int) error {
	var target *api.Order
	for i := range c.allOrders {
		if c.allOrders[i].ID == orderID {
			target = &c.allOrders[i]
			break
		}
	}
	if target == nil {
		return nil
	}
	if target.Status != api.StatusPending && target.Status != api.StatusConfirmed {
		c.notifier.Notify(notify.SeverityWarning, "Cannot Cancel", "This order can no longer be cancelled.")
		return nil
	}
	if !c.notifier.Confirm("Cancel Order", "Are you sure you want to cancel this order?") {
		return nil
	}
	if err := c.client.UpdateStatus(ctx, orderID, api.StatusCancelled); err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return err
	}
	target.Status = api.StatusCancelled
	c.applyFilter()
	c.notifier.Notify(notify.SeveritySuccess, "Order Cancelled", "Your order has been cancelled.")
	return nil
}

// PrintOrder fetches the order and hands a formatted receipt to the print
// surfaces. Failure of every surface is a non-fatal notice.
func (c *Controller) PrintOrder(ctx context.Context, orderID int) error {
	details, err := c.client.Details(ctx, orderID)
	if err != nil {
		c.notifier.Notify(notify.SeverityError, "Error", api.UserMessage(err))
		return err
	}
	receipt := c.receipts.Build(details.Order, details.Items)
	if !c.receipts.Print(receipt) {
		c.notifier.Notify(notify.SeverityInfo, "Printing not supported", "Could not open a print target on this device.")
	}
	return nil
}
