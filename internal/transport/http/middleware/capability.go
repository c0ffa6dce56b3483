package middleware

import (
	"context"
	"net/http"

	"opsdash/internal/domain/auth"
	"opsdash/internal/transport/http/api"
)

// CapabilityStore resolves a role's menu-permission tree to a yes/no answer
// for one menu entry and action.
type CapabilityStore interface {
	HasCapability(ctx context.Context, roleID, menuKey, action string) (bool, error)
}

// RequireCapability gates a route on the create/update/delete flag the
// role's menu tree carries for the given menu entry.
func RequireCapability(menuKey, action string, store CapabilityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			allowed, err := store.HasCapability(r.Context(), user.RoleID, menuKey, action)
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "capability_error", "capability check failed", GetRequestID(r.Context()))
				return
			}
			if !allowed {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests outright, for routes that have no
// finer-grained capability flag.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

var _ CapabilityStore = (*auth.Store)(nil)
