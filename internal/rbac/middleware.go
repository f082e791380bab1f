package rbac

import (
	"log/slog"
	"net/http"

	"github.com/assetdesk/assetdesk/internal/shared"
)

// Middleware wires capability authorization for HTTP handlers. Services
// enforce capabilities again at the operation boundary; this layer exists so
// a route rejects early instead of relying on the presentation layer hiding
// a tab.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAuth ensures the request belongs to a logged-in session.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.PrincipalFromContext(r.Context()); !ok {
			shared.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAny ensures the current session holds at least one of the required
// capabilities. view_all satisfies every check.
func (m Middleware) RequireAny(required ...Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				shared.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			caps := Capabilities(principal.Role)
			if Has(caps, CapViewAll) || HasAny(caps, required...) {
				next.ServeHTTP(w, r)
				return
			}
			if m.Logger != nil {
				m.Logger.Warn("capability denied",
					slog.String("user", principal.Username),
					slog.String("role", principal.Role),
					slog.String("path", r.URL.Path))
			}
			shared.WriteError(w, m.Logger, shared.ErrPermissionDenied)
		})
	}
}
