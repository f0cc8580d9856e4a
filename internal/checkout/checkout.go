// Package checkout turns the cart into an order. Validation short-circuits
// before any network call; a successful placement clears the cart.
package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/cart"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/session"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

type OutcomeCode string

const (
	OutcomeEmptyCart    OutcomeCode = "EMPTY_CART"
	OutcomeBelowMinimum OutcomeCode = "BELOW_MINIMUM"
	OutcomeAuthRequired OutcomeCode = "AUTH_REQUIRED"
	OutcomeSuccess      OutcomeCode = "SUCCESS"
	OutcomeFailure      OutcomeCode = "FAILURE"
)

type Outcome struct {
	Code    OutcomeCode
	Message string
	// Confirmation is set on success.
	Confirmation *api.PlaceOrderResponse
}

// Form is the checkout input gathered from the user. SpecialRequests maps
// menu item ids to per-line requests.
type Form struct {
	PaymentMethod       string
	DeliveryAddress     string
	SpecialInstructions string
	SpecialRequests     map[int]string
}

type Orchestrator struct {
	cart     *cart.Store
	sessions *session.Manager
	orders   *api.OrdersClient
	notifier notify.Notifier
	logger   *log.Logger

	// minOrder is the smallest accepted cart subtotal; zero disables the
	// check.
	minOrder float64

	state State
	// onReset clears any checkout form state in the UI after success.
	onReset func()
}

func NewOrchestrator(c *cart.Store, s *session.Manager, o *api.OrdersClient, n notify.Notifier, logger *log.Logger) *Orchestrator {
	return &Orchestrator{cart: c, sessions: s, orders: o, notifier: n, logger: logger, state: StateIdle}
}

// SetMinimumOrder enables the minimum-subtotal precondition.
func (o *Orchestrator) SetMinimumOrder(amount float64) { o.minOrder = amount }

// OnReset registers a callback run after a successful placement.
func (o *Orchestrator) OnReset(fn func()) { o.onReset = fn }

func (o *Orchestrator) State() State { return o.state }

// Place runs the checkout flow. Preconditions are checked in order and each
// short-circuits without a network call; only a validated cart is
// submitted. There is no automatic retry on failure.
func (o *Orchestrator) Place(ctx context.Context, form Form) Outcome {
	o.state = StateValidating
	defer func() { o.state = StateIdle }()

	if o.cart.IsEmpty() {
		o.notifier.Notify(notify.SeverityWarning, "Cart is Empty", "Please add some items to your cart first!")
		return Outcome{Code: OutcomeEmptyCart}
	}

	if totals := o.cart.Totals(); o.minOrder > 0 && totals.Subtotal < o.minOrder {
		o.notifier.Notify(notify.SeverityWarning, "Minimum Order",
			fmt.Sprintf("Minimum order amount is $%.2f. Please add a few more items!", o.minOrder))
		return Outcome{Code: OutcomeBelowMinimum}
	}

	user := o.sessions.CurrentUser(ctx)
	if user == nil || user.UserType != session.UserTypeUser {
		// Persist the cart so it survives the login detour.
		o.cart.Save(ctx)
		o.notifier.Notify(notify.SeverityInfo, "Login Required", "Please login to complete your order. Your cart will be saved!")
		return Outcome{Code: OutcomeAuthRequired}
	}

	o.state = StateSubmitting
	resp, err := o.orders.Place(ctx, o.buildRequest(form))
	if err != nil {
		msg := api.UserMessage(err)
		o.logger.Printf("checkout: place failed: %v", err)
		o.notifier.Notify(notify.SeverityError, "Order Failed", msg)
		return Outcome{Code: OutcomeFailure, Message: msg}
	}

	o.notifier.Notify(notify.SeveritySuccess, "Order Placed Successfully!",
		fmt.Sprintf("Your order #%s has been received! Order ID: %d, Total: $%.2f",
			resp.OrderNumber, resp.OrderID, float64(resp.TotalAmount)))

	o.cart.Clear(ctx)
	if o.onReset != nil {
		o.onReset()
	}
	return Outcome{Code: OutcomeSuccess, Confirmation: resp}
}

func (o *Orchestrator) buildRequest(form Form) api.PlaceOrderRequest {
	payment := form.PaymentMethod
	if payment == "" {
		payment = "cash"
	}

	items := o.cart.Items()
	req := api.PlaceOrderRequest{
		Items:               make([]api.PlaceOrderItem, 0, len(items)),
		PaymentMethod:       payment,
		DeliveryAddress:     form.DeliveryAddress,
		SpecialInstructions: form.SpecialInstructions,
	}
	for _, it := range items {
		req.Items = append(req.Items, api.PlaceOrderItem{
			MenuItemID:     it.ItemID,
			Quantity:       it.Quantity,
			SpecialRequest: form.SpecialRequests[it.ItemID],
		})
	}
	return req
}
