package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/foodordering/storefront/internal/adminmenu"
	"github.com/foodordering/storefront/internal/adminorders"
	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/cart"
	"github.com/foodordering/storefront/internal/checkout"
	"github.com/foodordering/storefront/internal/config"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/orders"
	"github.com/foodordering/storefront/internal/session"
	"github.com/foodordering/storefront/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lmicroseconds)

	eps, err := config.LoadEndpoints(cfg.EndpointsFile)
	if err != nil {
		logger.Printf("endpoints: %v (using defaults)", err)
	}

	// Storage tiers: session-scoped memory first, durable tiers behind it.
	backends := []storage.Backend{storage.NewMemoryStore(), storage.NewFileStore(cfg.CartFile)}
	if cfg.RedisURL != "" {
		rs, err := storage.NewRedisStore(cfg.RedisURL, "storefront")
		if err != nil {
			logger.Printf("redis tier disabled: %v", err)
		} else {
			defer rs.Close()
			backends = append(backends, rs)
		}
	}
	store := storage.NewAdapter(logger, backends...)

	notifier := notify.NewLogNotifier(logger)

	// Shared HTTP client; session manager is the token source.
	sharedHTTP := &http.Client{Timeout: cfg.Timeout}
	sessions := session.NewManager(store, nil, notifier, logger)
	base := api.NewClient(cfg.BaseURL, sharedHTTP, sessions)

	authClient := api.NewAuthClient(base, eps)
	sessions.SetAuthClient(authClient)

	catalogClient := api.NewCatalogClient(base, eps)
	ordersClient := api.NewOrdersClient(base, eps)
	adminClient := api.NewAdminMenuClient(base, eps)

	cartStore := cart.NewStore(store, notifier, logger)
	placer := checkout.NewOrchestrator(cartStore, sessions, ordersClient, notifier, logger)
	placer.SetMinimumOrder(cfg.MinOrderAmount)
	history := orders.NewController(ordersClient, notifier, logger, &orders.ReceiptPrinter{
		Merchant:    "Food Ordering System",
		TaxRate:     cfg.TaxRate,
		DeliveryFee: cfg.DeliveryFee,
		Surfaces:    []orders.PrintSurface{&orders.WriterSurface{Target: "terminal", W: os.Stdout}},
		Logger:      logger,
	})
	adminMenu := adminmenu.NewController(adminClient, sessions, notifier, logger)
	adminOrders := adminorders.NewController(ordersClient, sessions, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cartStore.Load(ctx)

	shell := &shell{
		cfg:         cfg,
		logger:      logger,
		catalog:     catalogClient,
		sessions:    sessions,
		cart:        cartStore,
		placer:      placer,
		history:     history,
		adminMenu:   adminMenu,
		adminOrders: adminOrders,
	}
	shell.run(ctx)
}

type shell struct {
	cfg         config.Config
	logger      *log.Logger
	catalog     *api.CatalogClient
	sessions    *session.Manager
	cart        *cart.Store
	placer      *checkout.Orchestrator
	history     *orders.Controller
	adminMenu   *adminmenu.Controller
	adminOrders *adminorders.Controller

	menu []api.MenuItem
}

func (s *shell) run(ctx context.Context) {
	fmt.Println("storefront: type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		s.dispatch(ctx, fields[0], fields[1:])
	}
}

func (s *shell) dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		fmt.Println("menu [categoryId] | categories | add <id> | cart | inc <id> | dec <id> | rm <id>")
		fmt.Println("checkout [address] | orders | filter <status> | page <n> | order <id> | print <id> | cancel <id>")
		fmt.Println("login <user> <pass> [admin] | logout | whoami | quit")
		fmt.Println("admin-cats | admin-addcat <name> | admin-rmcat <id> | admin-items | admin-additem <cat> <price> <name> | admin-rmitem <id>")
		fmt.Println("admin-orders [status] [query] | admin-status <id> <status> | admin-edit <id> <address> [| <instructions>]")
	case "categories":
		cats, err := s.catalog.Categories(ctx)
		if err != nil {
			fmt.Println(api.UserMessage(err))
			return
		}
		for _, c := range cats {
			fmt.Printf("%3d  %s\n", c.ID, c.Name)
		}
	case "menu":
		categoryID := 0
		if len(args) > 0 {
			categoryID, _ = strconv.Atoi(args[0])
		}
		items, err := s.catalog.Menu(ctx, categoryID)
		if err != nil {
			fmt.Println(api.UserMessage(err))
			return
		}
		s.menu = items
		for _, it := range items {
			fmt.Printf("%3d  %-28s $%.2f\n", it.ID, it.Name, float64(it.Price))
		}
	case "add":
		id := atoiArg(args)
		s.cart.AddItem(ctx, id, s.lookup)
	case "inc":
		s.cart.IncreaseQuantity(ctx, atoiArg(args))
	case "dec":
		s.cart.DecreaseQuantity(ctx, atoiArg(args))
	case "rm":
		s.cart.RemoveItem(ctx, atoiArg(args))
	case "cart":
		for _, it := range s.cart.Items() {
			fmt.Printf("%3d  %-28s x%d  $%.2f\n", it.ItemID, it.Name, it.Quantity, it.UnitPrice)
		}
		t := s.cart.Totals()
		fmt.Printf("     %d item(s), subtotal %s%.2f\n", t.ItemCount, s.cfg.Currency, t.Subtotal)
	case "checkout":
		outcome := s.placer.Place(ctx, checkout.Form{DeliveryAddress: strings.Join(args, " ")})
		fmt.Printf("checkout: %s\n", outcome.Code)
	case "orders":
		// Cookie-backed sessions can be live even when local storage is
		// empty; try the backend probe before giving up.
		if !s.sessions.IsLoggedIn(ctx) && !s.sessions.SyncFromBackend(ctx) {
			fmt.Println("please login first")
			return
		}
		if s.history.Load(ctx) != orders.LoadOK {
			return
		}
		s.printOrdersPage()
	case "filter":
		status := ""
		if len(args) > 0 {
			status = args[0]
		}
		s.history.SetStatusFilter(status)
		s.printOrdersPage()
	case "page":
		s.history.SetPage(atoiArg(args))
		s.printOrdersPage()
	case "order":
		details, err := s.history.ViewDetails(ctx, atoiArg(args))
		if err != nil {
			return
		}
		fmt.Printf("Order #%s  %s  $%.2f\n", details.Order.OrderNumber, details.Order.Status, float64(details.Order.TotalAmount))
		for _, it := range details.Items {
			fmt.Printf("  %-28s x%d  $%.2f\n", it.ItemName, it.Quantity, float64(it.Subtotal))
		}
	case "print":
		_ = s.history.PrintOrder(ctx, atoiArg(args))
	case "cancel":
		_ = s.history.CancelOrder(ctx, atoiArg(args))
	case "login":
		if len(args) < 2 {
			fmt.Println("usage: login <user> <pass> [admin]")
			return
		}
		userType := session.UserTypeUser
		if len(args) > 2 && args[2] == "admin" {
			userType = session.UserTypeAdmin
		}
		s.login(ctx, userType, args[0], args[1])
	case "logout":
		userType := session.UserTypeUser
		if u := s.sessions.CurrentUser(ctx); u != nil && u.UserType != "" {
			userType = u.UserType
		}
		s.sessions.Logout(ctx, userType)
		s.cart.Load(ctx)
		fmt.Println("logged out")
	case "admin-cats":
		cats, err := s.adminMenu.Categories(ctx)
		if err != nil {
			return
		}
		for _, c := range cats {
			fmt.Printf("%3d  %s\n", c.ID, c.Name)
		}
	case "admin-addcat":
		if len(args) == 0 {
			fmt.Println("usage: admin-addcat <name...>")
			return
		}
		_ = s.adminMenu.CreateCategory(ctx, api.CategoryRequest{Name: strings.Join(args, " ")})
	case "admin-rmcat":
		_ = s.adminMenu.DeleteCategory(ctx, atoiArg(args))
	case "admin-items":
		items, err := s.adminMenu.MenuItems(ctx)
		if err != nil {
			return
		}
		for _, it := range items {
			fmt.Printf("%3d  %-28s $%.2f\n", it.ID, it.Name, float64(it.Price))
		}
	case "admin-additem":
		if len(args) < 3 {
			fmt.Println("usage: admin-additem <categoryId> <price> <name...>")
			return
		}
		categoryID, _ := strconv.Atoi(args[0])
		price, _ := strconv.ParseFloat(args[1], 64)
		_ = s.adminMenu.CreateMenuItem(ctx, api.MenuItemRequest{
			CategoryID:  categoryID,
			Name:        strings.Join(args[2:], " "),
			Price:       price,
			IsAvailable: true,
		})
	case "admin-rmitem":
		_ = s.adminMenu.DeleteMenuItem(ctx, atoiArg(args))
	case "admin-orders":
		status, query := "", ""
		if len(args) > 0 {
			status = args[0]
		}
		if len(args) > 1 {
			query = strings.Join(args[1:], " ")
		}
		list, err := s.adminOrders.Load(ctx, status, query)
		if err != nil {
			return
		}
		for _, o := range list {
			fmt.Printf("%3d  #%-10s %-20s %-10s $%.2f\n", o.ID, o.OrderNumber, o.CustomerName, o.Status, float64(o.TotalAmount))
		}
	case "admin-status":
		if len(args) < 2 {
			fmt.Println("usage: admin-status <id> <status>")
			return
		}
		_ = s.adminOrders.UpdateStatus(ctx, atoiArg(args), args[1])
	case "admin-edit":
		if len(args) < 2 {
			fmt.Println("usage: admin-edit <id> <address> [| <instructions>]")
			return
		}
		address, instructions := strings.Join(args[1:], " "), ""
		if i := strings.Index(address, "|"); i >= 0 {
			address, instructions = strings.TrimSpace(address[:i]), strings.TrimSpace(address[i+1:])
		}
		_ = s.adminOrders.EditDelivery(ctx, atoiArg(args), address, instructions)
	case "whoami":
		u := s.sessions.CurrentUser(ctx)
		if u == nil {
			fmt.Println("guest")
			return
		}
		fmt.Printf("%s (%s) id=%s role=%s\n", u.UserName, u.UserType, u.UserID, u.AdminRole)
	default:
		fmt.Println("unknown command; try 'help'")
	}
}

func (s *shell) login(ctx context.Context, userType, username, password string) {
	resp, err := s.sessions.Login(ctx, userType, username, password)
	if err != nil {
		fmt.Println(api.UserMessage(err))
		return
	}
	fmt.Printf("welcome, %s\n", resp.User.Username)
}

func (s *shell) lookup(itemID int) *api.MenuItem {
	for i := range s.menu {
		if s.menu[i].ID == itemID {
			return &s.menu[i]
		}
	}
	return nil
}

func (s *shell) printOrdersPage() {
	page := s.history.Page(s.history.CurrentPage())
	for _, o := range page {
		fmt.Printf("%4d  #%-8s %-10s $%.2f  %s\n", o.ID, o.OrderNumber, o.Status, float64(o.TotalAmount), o.CreatedAt)
	}
	fmt.Printf("page %d/%d (%d order(s))\n", s.history.CurrentPage(), s.history.PageCount(), len(s.history.Filtered()))
}

func atoiArg(args []string) int {
	if len(args) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(args[0])
	return n
}
