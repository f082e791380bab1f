package maintenance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// Handler serves the maintenance scheduler over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authz   rbac.Middleware
	now     func() time.Time
}

// NewHandler constructs a Handler. now may be nil, defaulting to time.Now.
func NewHandler(logger *slog.Logger, service *Service, authz rbac.Middleware, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{logger: logger, service: service, authz: authz, now: now}
}

// MountRoutes registers maintenance routes. Alerts are visible to any
// authenticated session; the request form is capability gated.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authz.RequireAuth)
	r.With(h.authz.RequireAny(rbac.CapRequestMaintenance, rbac.CapManageAssets)).Get("/due", h.handleDueSoon)
	r.With(h.authz.RequireAny(rbac.CapRequestMaintenance, rbac.CapManageAssets)).Post("/requests", h.handleRequest)
}

func (h *Handler) handleDueSoon(w http.ResponseWriter, r *http.Request) {
	due, err := h.service.DueSoon(r.Context(), h.now())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, due)
}

type maintenanceRequest struct {
	AssetID string `json:"asset_id"`
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	if req.AssetID == "" {
		shared.WriteError(w, h.logger, shared.NewValidationError(map[string]string{"AssetID": "required"}))
		return
	}
	principal, _ := shared.PrincipalFromContext(r.Context())
	if err := h.service.RequestMaintenance(r.Context(), principal, req.AssetID); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "maintenance requested"})
}

// MountAlerts registers the alerts endpoint at the router root; every
// authenticated session sees alerts, mirroring the always-on banner in the
// dashboard.
func (h *Handler) MountAlerts(r chi.Router) {
	r.With(h.authz.RequireAuth).Get("/alerts", h.handleAlerts)
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.ComputeAlerts(r.Context(), h.now())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	shared.WriteJSON(w, http.StatusOK, alerts)
}
