package api

import (
	"context"
	"net/url"

	"github.com/foodordering/storefront/internal/config"
)

type OrdersClient struct {
	c   *Client
	eps config.Endpoints
}

func NewOrdersClient(c *Client, eps config.Endpoints) *OrdersClient {
	return &OrdersClient{c: c, eps: eps}
}

type PlaceOrderItem struct {
	MenuItemID     int    `json:"menu_item_id"`
	Quantity       int    `json:"quantity"`
	SpecialRequest string `json:"special_request"`
}

type PlaceOrderRequest struct {
	Items               []PlaceOrderItem `json:"items"`
	PaymentMethod       string           `json:"payment_method"`
	DeliveryAddress     string           `json:"delivery_address"`
	SpecialInstructions string           `json:"special_instructions"`
}

type PlaceOrderResponse struct {
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
	TotalAmount Price  `json:"total_amount"`
}

func (oc *OrdersClient) Place(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	var resp PlaceOrderResponse
	if err := oc.c.Post(ctx, oc.eps.OrderPlace, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (oc *OrdersClient) MyOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := oc.c.Get(ctx, oc.eps.MyOrders, "", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// All lists every order in the system, optionally restricted to one status.
// Admin-only on the backend side.
func (oc *OrdersClient) All(ctx context.Context, status string) ([]Order, error) {
	rawQuery := ""
	if status != "" {
		q := url.Values{}
		q.Set("status", status)
		rawQuery = q.Encode()
	}
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := oc.c.Get(ctx, oc.eps.AllOrders, rawQuery, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

type OrderDetails struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

func (oc *OrdersClient) Details(ctx context.Context, orderID int) (*OrderDetails, error) {
	var resp OrderDetails
	if err := oc.c.Get(ctx, expandID(oc.eps.OrderDetails, orderID), "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus moves an order to a new status. Users may only cancel; the
// admin console drives the rest of the lifecycle through the same route.
func (oc *OrdersClient) UpdateStatus(ctx context.Context, orderID int, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return oc.c.Put(ctx, expandID(oc.eps.OrderStatus, orderID), body, nil)
}

type UpdateOrderRequest struct {
	Status              string `json:"status,omitempty"`
	PaymentStatus       string `json:"payment_status,omitempty"`
	DeliveryAddress     string `json:"delivery_address,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// Update is the admin-side order mutation.
func (oc *OrdersClient) Update(ctx context.Context, orderID int, req UpdateOrderRequest) error {
	return oc.c.Put(ctx, expandID(oc.eps.OrderUpdate, orderID), req, nil)
}
