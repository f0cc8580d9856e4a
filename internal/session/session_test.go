package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodordering/storefront/internal/api"
	"github.com/foodordering/storefront/internal/config"
	"github.com/foodordering/storefront/internal/notify"
	"github.com/foodordering/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	notices []string
	answer  bool
}

func (f *fakeNotifier) Notify(severity notify.Severity, title, text string) {
	f.notices = append(f.notices, string(severity)+": "+title)
}
func (f *fakeNotifier) Toast(title, text string) { f.notices = append(f.notices, "toast: "+title) }
func (f *fakeNotifier) Confirm(title, text string) bool { return f.answer }

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *storage.Adapter, *fakeNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := storage.NewAdapter(discard(), storage.NewMemoryStore())
	notifier := &fakeNotifier{answer: true}
	m := NewManager(store, nil, notifier, discard())
	base := api.NewClient(srv.URL, &http.Client{Timeout: 2 * time.Second}, m)
	m.SetAuthClient(api.NewAuthClient(base, config.DefaultEndpoints()))
	return m, store, notifier
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
}

// makeToken builds an unsigned JWT-shaped token with the given payload.
func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(body) + "." + enc.EncodeToString([]byte("sig"))
}

func TestCurrentUser_HydratesFromTokenClaims(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	token := makeToken(t, map[string]any{"sub": "7", "username": "bob", "role": "admin"})
	store.Set(ctx, KeyAuthToken, token)

	u := m.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "7", u.UserID)
	assert.Equal(t, "bob", u.UserName)
	assert.Equal(t, "admin", u.UserType)
	assert.Equal(t, "admin", u.AdminRole)

	// Hydrated fields are persisted back into storage.
	id, ok := store.Get(ctx, KeyUserID)
	require.True(t, ok)
	assert.Equal(t, "7", id)
}

func TestCurrentUser_NumericClaimAliases(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	token := makeToken(t, map[string]any{"user_id": 42, "name": "alice", "user_type": "user"})
	store.Set(ctx, KeyAuthToken, token)

	u := m.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "42", u.UserID)
	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, "user", u.UserType)
}

func TestCurrentUser_MalformedTokenIsNonFatal(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	store.Set(ctx, KeyAuthToken, "not-a-token")

	// A token is present so the user counts as logged in, but nothing
	// resolves from it.
	assert.True(t, m.IsLoggedIn(ctx))
	assert.Nil(t, m.CurrentUser(ctx))
}

func TestCurrentUser_NotLoggedIn(t *testing.T) {
	m, _, _ := newTestManager(t, okHandler())
	assert.Nil(t, m.CurrentUser(context.Background()))
}

func TestSaveSession_AliasedFields(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	m.SaveSession(ctx, api.UserData{UserID: "9", Username: "carol", AdminRole: "super_admin", UserType: "admin"}, "tok")

	id, _ := store.Get(ctx, KeyUserID)
	assert.Equal(t, "9", id)
	role, _ := store.Get(ctx, KeyAdminRole)
	assert.Equal(t, "super_admin", role)
	tok, _ := store.Get(ctx, KeyAuthToken)
	assert.Equal(t, "tok", tok)

	assert.True(t, m.IsAdmin(ctx))
	assert.True(t, m.IsSuperAdmin(ctx))
}

func TestSaveSession_DefaultsUserType(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	m.SaveSession(ctx, api.UserData{ID: "1", Username: "dave"}, "")

	ut, _ := store.Get(ctx, KeyUserType)
	assert.Equal(t, UserTypeUser, ut)
	assert.False(t, m.IsAdmin(ctx))
}

func TestClearSession_RemovesIdentityAndCart(t *testing.T) {
	m, store, _ := newTestManager(t, okHandler())
	ctx := context.Background()

	m.SaveSession(ctx, api.UserData{ID: "1", Username: "dave"}, "tok")
	store.Set(ctx, KeyGuestCart, `[{"id":1}]`)

	m.ClearSession(ctx)

	assert.False(t, m.IsLoggedIn(ctx))
	_, ok := store.Get(ctx, KeyGuestCart)
	assert.False(t, ok)
}

func TestLogout_ClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	ctx := context.Background()

	m.SaveSession(ctx, api.UserData{ID: "1", Username: "dave"}, "tok")
	m.Logout(ctx, UserTypeUser)

	assert.False(t, m.IsLoggedIn(ctx))
}

func TestLogout_HitsRoleSpecificRoute(t *testing.T) {
	var path string
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	ctx := context.Background()

	m.SaveSession(ctx, api.UserData{ID: "1", UserType: UserTypeAdmin}, "")
	m.Logout(ctx, UserTypeAdmin)

	assert.Equal(t, "/admin/logout", path)
}

func TestRequireAuth(t *testing.T) {
	m, _, notifier := newTestManager(t, okHandler())
	ctx := context.Background()

	outcome, ok := m.RequireAuth(ctx, "")
	assert.Equal(t, AuthLoginRedirect, outcome)
	assert.False(t, ok)

	m.SaveSession(ctx, api.UserData{ID: "1", Username: "dave"}, "")
	outcome, ok = m.RequireAuth(ctx, "")
	assert.Equal(t, AuthOK, outcome)
	assert.True(t, ok)

	outcome, ok = m.RequireAuth(ctx, UserTypeAdmin)
	assert.Equal(t, AuthAccessDenied, outcome)
	assert.False(t, ok)
	require.NotEmpty(t, notifier.notices)
	assert.Contains(t, notifier.notices[len(notifier.notices)-1], "Access Denied")
}

func TestLogin_SavesSession(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-9","user":{"id":5,"username":"erin"}}`))
	}))
	ctx := context.Background()

	resp, err := m.Login(ctx, UserTypeUser, "erin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "erin", resp.User.Username)

	assert.True(t, m.IsLoggedIn(ctx))
	tok, _ := store.Get(ctx, KeyAuthToken)
	assert.Equal(t, "tok-9", tok)
	id, _ := store.Get(ctx, KeyUserID)
	assert.Equal(t, "5", id)
}

func TestSyncFromBackend(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logged_in":true,"user_id":3,"username":"fay","user_type":"user"}`))
	}))
	ctx := context.Background()

	require.True(t, m.SyncFromBackend(ctx))

	u := m.CurrentUser(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "3", u.UserID)
	assert.Equal(t, "fay", u.UserName)
}

func TestSyncFromBackend_ProbeFailureMeansLoggedOut(t *testing.T) {
	srv := httptest.NewServer(okHandler())
	srv.Close()

	store := storage.NewAdapter(discard(), storage.NewMemoryStore())
	m := NewManager(store, nil, &fakeNotifier{}, discard())
	base := api.NewClient(srv.URL, &http.Client{Timeout: time.Second}, m)
	m.SetAuthClient(api.NewAuthClient(base, config.DefaultEndpoints()))

	assert.False(t, m.SyncFromBackend(context.Background()))
}
