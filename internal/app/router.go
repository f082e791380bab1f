package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetdesk/assetdesk/internal/activity"
	"github.com/assetdesk/assetdesk/internal/analytics"
	"github.com/assetdesk/assetdesk/internal/asset"
	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/maintenance"
	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthHandler        *auth.Handler
	AssetHandler       *asset.Handler
	MaintenanceHandler *maintenance.Handler
	AnalyticsHandler   *analytics.Handler
	ActivityHandler    *activity.Handler
	Authz              rbac.Middleware
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// The visible tab set for the session; the asset view is always first.
	r.With(params.Authz.RequireAuth).Get("/views", func(w http.ResponseWriter, r *http.Request) {
		principal, _ := shared.PrincipalFromContext(r.Context())
		views := rbac.VisibleViews(rbac.Capabilities(principal.Role))
		shared.WriteJSON(w, http.StatusOK, views)
	})

	r.Route("/assets", params.AssetHandler.MountRoutes)
	r.Route("/maintenance", params.MaintenanceHandler.MountRoutes)
	params.MaintenanceHandler.MountAlerts(r)
	r.Route("/analytics", params.AnalyticsHandler.MountRoutes)
	params.AnalyticsHandler.MountCosts(r)
	r.Route("/logs", params.ActivityHandler.MountRoutes)

	return r
}
