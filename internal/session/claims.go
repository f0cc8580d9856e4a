package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Claim-name aliases tried in order when pulling identity out of a token.
var (
	userIDClaims    = []string{"user_id", "sub", "id", "userId"}
	userNameClaims  = []string{"username", "name", "user_name"}
	userTypeClaims  = []string{"user_type", "type"}
	adminRoleClaims = []string{"role", "admin_role"}
)

// hydrateFromToken decodes the token payload without verifying the
// signature and persists whatever identity claims it finds. This decode is
// informational only and is never an authorization boundary; the backend
// verifies the token on every request. A malformed token hydrates nothing.
func (m *Manager) hydrateFromToken(ctx context.Context, token string) {
	claims := decodeClaims(token)
	if claims == nil {
		return
	}

	if v := firstClaim(claims, userIDClaims); v != "" {
		m.store.Set(ctx, KeyUserID, v)
	}
	if v := firstClaim(claims, userNameClaims); v != "" {
		m.store.Set(ctx, KeyUserName, v)
	}
	userType := firstClaim(claims, userTypeClaims)
	role := firstClaim(claims, adminRoleClaims)
	// A bare "role" claim of admin/super_admin doubles as the user type on
	// admin tokens.
	if userType == "" && (role == RoleAdmin || role == RoleSuperAdmin) {
		userType = UserTypeAdmin
	}
	if userType != "" {
		m.store.Set(ctx, KeyUserType, userType)
	}
	if role != "" {
		m.store.Set(ctx, KeyAdminRole, role)
	}
}

func decodeClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

func firstClaim(claims jwt.MapClaims, names []string) string {
	for _, name := range names {
		v, ok := claims[name]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			// JSON numbers decode as float64; ids are whole numbers.
			return fmt.Sprintf("%.0f", t)
		}
	}
	return ""
}
