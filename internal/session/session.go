// Package session owns the client's identity state: who is logged in, with
// what role, and under which bearer token. Identity lives in the storage
// adapter so it survives restarts the same way the cart does.
package session

import (
	"context"
	"log"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/storage"
)

// Storage keys. KeyGuestCart is owned by the cart store but cleared here on
// logout so an anonymous cart never leaks across identities.
const (
	KeyUserID    = "userId"
	KeyUserName  = "userName"
	KeyUserType  = "userType"
	KeyAdminRole = "adminRole"
	KeyAuthToken = "authToken"
	KeyGuestCart = "guest_cart"
)

const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"

	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	UserID    string
	UserName  string
	UserType  string
	AdminRole string
}

type Manager struct {
	store    *storage.Adapter
	auth     *api.AuthClient
	notifier notify.Notifier
	logger   *log.Logger
}

func NewManager(store *storage.Adapter, auth *api.AuthClient, notifier notify.Notifier, logger *log.Logger) *Manager {
	return &Manager{store: store, auth: auth, notifier: notifier, logger: logger}
}

// SetAuthClient breaks the construction cycle: the API client needs the
// manager as its token source before the auth client exists.
func (m *Manager) SetAuthClient(auth *api.AuthClient) { m.auth = auth }

// Login authenticates against the role-specific login route and saves the
// resulting session.
func (m *Manager) Login(ctx context.Context, userType, username, password string) (*api.LoginResponse, error) {
	resp, err := m.auth.Login(ctx, userType, username, password)
	if err != nil {
		return nil, err
	}
	user := resp.User
	if user.UserType == "" {
		user.UserType = userType
	}
	m.SaveSession(ctx, user, resp.Token)
	return resp, nil
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	v, _ := m.store.Get(context.Background(), KeyAuthToken)
	return v
}

// IsLoggedIn is true when either a stored identity or a bearer token is
// present; a token alone is enough because claims can hydrate the rest.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	if _, ok := m.store.Get(ctx, KeyUserID); ok {
		return true
	}
	_, ok := m.store.Get(ctx, KeyAuthToken)
	return ok
}

func (m *Manager) IsAdmin(ctx context.Context) bool {
	v, _ := m.store.Get(ctx, KeyUserType)
	return v == UserTypeAdmin
}

func (m *Manager) IsSuperAdmin(ctx context.Context) bool {
	if !m.IsAdmin(ctx) {
		return false
	}
	v, _ := m.store.Get(ctx, KeyAdminRole)
	return v == RoleSuperAdmin
}

// CurrentUser returns the stored identity. When only a token is stored, the
// identity is hydrated from the token's claims first. Returns nil when
// nothing resolves.
func (m *Manager) CurrentUser(ctx context.Context) *User {
	if !m.IsLoggedIn(ctx) {
		return nil
	}

	if _, ok := m.store.Get(ctx, KeyUserID); !ok {
		if tok, ok := m.store.Get(ctx, KeyAuthToken); ok {
			m.hydrateFromToken(ctx, tok)
		}
	}

	u := &User{}
	u.UserID, _ = m.store.Get(ctx, KeyUserID)
	u.UserName, _ = m.store.Get(ctx, KeyUserName)
	u.UserType, _ = m.store.Get(ctx, KeyUserType)
	u.AdminRole, _ = m.store.Get(ctx, KeyAdminRole)
	if u.UserID == "" && u.UserName == "" && u.UserType == "" {
		return nil
	}
	return u
}

// SaveSession persists a login response. The backend names identity fields
// inconsistently across routes, so aliased fields are resolved here.
func (m *Manager) SaveSession(ctx context.Context, user api.UserData, token string) {
	id := string(user.ID)
	if id == "" {
		id = string(user.UserID)
	}
	userType := user.UserType
	if userType == "" {
		userType = UserTypeUser
	}
	role := user.Role
	if role == "" {
		role = user.AdminRole
	}

	m.store.Set(ctx, KeyUserID, id)
	m.store.Set(ctx, KeyUserName, user.Username)
	m.store.Set(ctx, KeyUserType, userType)
	if role != "" {
		m.store.Set(ctx, KeyAdminRole, role)
	}
	if token != "" {
		m.store.Set(ctx, KeyAuthToken, token)
	}
}

// ClearSession removes every identity key plus the anonymous cart.
func (m *Manager) ClearSession(ctx context.Context) {
	for _, key := range []string{KeyUserID, KeyUserName, KeyUserType, KeyAdminRole, KeyAuthToken, KeyGuestCart} {
		m.store.Remove(ctx, key)
	}
}

// Logout calls the backend logout route for the given role and clears local
// state. The remote call is best-effort: local clearing happens regardless.
func (m *Manager) Logout(ctx context.Context, userType string) {
	if err := m.auth.Logout(ctx, userType); err != nil {
		m.logger.Printf("session: remote logout failed: %v", err)
	}
	m.ClearSession(ctx)
}

type AuthOutcome string

const (
	AuthOK            AuthOutcome = "ok"
	AuthLoginRedirect AuthOutcome = "login_redirect"
	AuthAccessDenied  AuthOutcome = "access_denied"
)

// RequireAuth gates an action on login state and, optionally, the admin
// role. The boolean result lets callers bail out in one expression.
func (m *Manager) RequireAuth(ctx context.Context, requiredType string) (AuthOutcome, bool) {
	if !m.IsLoggedIn(ctx) {
		return AuthLoginRedirect, false
	}
	if requiredType == UserTypeAdmin && !m.IsAdmin(ctx) {
		m.notifier.Notify(notify.SeverityError, "Access Denied", "Admin access required")
		return AuthAccessDenied, false
	}
	return AuthOK, true
}

// SyncFromBackend probes the backend session route and, when the backend
// reports a live cookie session that local storage does not know about,
// saves it locally. Probe failures mean logged out.
func (m *Manager) SyncFromBackend(ctx context.Context) bool {
	if m.IsLoggedIn(ctx) {
		return true
	}
	info, err := m.auth.Session(ctx)
	if err != nil {
		m.logger.Printf("session: probe failed: %v", err)
		return false
	}
	if !info.LoggedIn {
		return false
	}
	if info.UserID != "" && info.Username != "" {
		m.SaveSession(ctx, api.UserData{
			ID:       info.UserID,
			Username: info.Username,
			UserType: info.UserType,
		}, "")
	}
	return true
}
