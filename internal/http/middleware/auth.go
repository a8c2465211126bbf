package middleware

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"foodmarket-delivery/internal/logx"
)

// Roles carried in the session token.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Identity is the authenticated caller extracted from the session token.
type Identity struct {
	UserID string
	Role   string
}

type identityKey struct{}

// IdentityFrom returns the caller identity stored by Auth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity returns ctx carrying the given identity. Exposed for tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the session JWT from the auth cookie or the Authorization
// header and stores the caller identity in the request context. Requests
// without a valid token get 401.
type Auth struct {
	secret     []byte
	cookieName string
	logger     logx.Logger
}

// NewAuth creates the auth middleware.
func NewAuth(secret, cookieName string, logger logx.Logger) *Auth {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Auth{secret: []byte(secret), cookieName: cookieName, logger: logger}
}

// Handler returns chi-style middleware.
func (a *Auth) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := a.tokenFrom(r)
			if raw == "" {
				unauthorized(w, "missing auth token")
				return
			}

			id, err := a.parse(raw)
			if err != nil {
				a.logger.Debug("auth token rejected", logx.Err(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole gates a route subtree on the caller's role. Callers with a
// different role get 403, matching the upstream marker-based admin check.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok || !slices.Contains(roles, id.Role) {
				forbidden(w, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(a.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func (a *Auth) parse(raw string) (Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}
	if claims.Subject == "" {
		return Identity{}, jwt.ErrTokenRequiredClaimMissing
	}
	role := claims.Role
	if role == "" {
		role = RoleUser
	}
	return Identity{UserID: claims.Subject, Role: role}, nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeAuthError(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeAuthError(w, http.StatusForbidden, msg)
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q}`, msg)
}
