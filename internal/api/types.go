package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price decodes from either a JSON number or a numeric string. The backend
// serializes decimal columns as strings, so every money field goes through
// this normalization.
type Price float64

func (p *Price) UnmarshalJSON(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		*p = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("price %q: %w", s, err)
	}
	*p = Price(v)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

// ID decodes from either a JSON number or a string. Identity fields come
// back as ints from some routes and strings from others.
type ID string

func (id *ID) UnmarshalJSON(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		*id = ""
		return nil
	}
	*id = ID(strings.Trim(s, `"`))
	return nil
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type MenuItem struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

type Order struct {
	ID                  int    `json:"id"`
	OrderNumber         string `json:"order_number"`
	Status              string `json:"status"`
	TotalAmount         Price  `json:"total_amount"`
	PaymentMethod       string `json:"payment_method"`
	PaymentStatus       string `json:"payment_status"`
	CreatedAt           string `json:"created_at"`
	DeliveredAt         string `json:"delivered_at,omitempty"`
	DeliveryAddress     string `json:"delivery_address,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	CustomerName        string `json:"customer_name,omitempty"`
	CustomerPhone       string `json:"customer_phone,omitempty"`
	CustomerEmail       string `json:"customer_email,omitempty"`
}

// Order statuses as the backend reports them.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

type OrderItem struct {
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      Price  `json:"price"`
	Subtotal       Price  `json:"subtotal"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// UserData is the identity block of a login response. The backend is not
// consistent about field names across routes, so aliased fields are kept
// side by side and resolved by the session layer.
type UserData struct {
	ID        ID     `json:"id"`
	UserID    ID     `json:"user_id"`
	Username  string `json:"username"`
	UserType  string `json:"user_type"`
	Role      string `json:"role"`
	AdminRole string `json:"admin_role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserData `json:"user"`
}

type SessionInfo struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   ID     `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
}
