package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Endpoints maps logical operations to backend path templates. Templates
// with an {id} placeholder are expanded by the API clients.
type Endpoints struct {
	UserLogin   string `yaml:"user_login"`
	UserLogout  string `yaml:"user_logout"`
	AdminLogin  string `yaml:"admin_login"`
	AdminLogout string `yaml:"admin_logout"`
	Session     string `yaml:"session"`

	Categories string `yaml:"categories"`
	Menu       string `yaml:"menu"`

	OrderPlace   string `yaml:"order_place"`
	MyOrders     string `yaml:"my_orders"`
	AllOrders    string `yaml:"all_orders"`
	OrderDetails string `yaml:"order_details"`
	OrderStatus  string `yaml:"order_status"`
	OrderUpdate  string `yaml:"order_update"`

	AdminCategories string `yaml:"admin_categories"`
	AdminCategory   string `yaml:"admin_category"`
	AdminMenuItems  string `yaml:"admin_menu_items"`
	AdminMenuItem   string `yaml:"admin_menu_item"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		UserLogin:   "/user/login",
		UserLogout:  "/user/logout",
		AdminLogin:  "/admin/login",
		AdminLogout: "/admin/logout",
		Session:     "/session",

		Categories: "/order/categories",
		Menu:       "/order/menu",

		OrderPlace:   "/order/place",
		MyOrders:     "/order/my-orders",
		AllOrders:    "/order/all",
		OrderDetails: "/order/order/{id}",
		OrderStatus:  "/order/{id}/status",
		OrderUpdate:  "/order/{id}",

		AdminCategories: "/admin/menu/categories",
		AdminCategory:   "/admin/menu/categories/{id}",
		AdminMenuItems:  "/admin/menu/items",
		AdminMenuItem:   "/admin/menu/items/{id}",
	}
}

// LoadEndpoints returns the defaults, overlaid with any values found in the
// YAML file at path. An empty path means defaults only.
func LoadEndpoints(path string) (Endpoints, error) {
	eps := DefaultEndpoints()
	if path == "" {
		return eps, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return eps, fmt.Errorf("read endpoints file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &eps); err != nil {
		return eps, fmt.Errorf("parse endpoints file: %w", err)
	}
	return eps, nil
}
