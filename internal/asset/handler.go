package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// Handler serves the asset registry over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authz   rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, authz rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: authz}
}

// MountRoutes registers asset routes. Listing requires only authentication:
// the asset view is visible to every logged-in session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authz.RequireAuth)
	r.Get("/", h.handleList)
	r.With(h.authz.RequireAny(rbac.CapManageAssets)).Post("/", h.handleUpsert)
	r.Get("/{assetID}", h.handleGet)
	r.With(h.authz.RequireAny(rbac.CapTrackAssets)).Get("/{assetID}/identifier", h.handleIdentifier)
}

type assetDTO struct {
	AssetID         string  `json:"asset_id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	LastMaintenance *string `json:"last_maintenance"`
	NextMaintenance *string `json:"next_maintenance"`
	WarrantyExpiry  *string `json:"warranty_expiry"`
	Cost            float64 `json:"cost"`
}

func toDTO(a Asset) assetDTO {
	return assetDTO{
		AssetID:         a.ID,
		Name:            a.Name,
		Location:        a.Location,
		Status:          string(a.Status),
		LastMaintenance: dateString(a.LastMaintenance),
		NextMaintenance: dateString(a.NextMaintenance),
		WarrantyExpiry:  dateString(a.WarrantyExpiry),
		Cost:            a.Cost,
	}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ParseDate interprets an ISO date string. Absent or unparseable values
// become nil, not an error.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	dtos := make([]assetDTO, 0, len(assets))
	for _, a := range assets {
		dtos = append(dtos, toDTO(a))
	}
	shared.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "assetID"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toDTO(*a))
}

type upsertRequest struct {
	AssetID         string  `json:"asset_id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	LastMaintenance string  `json:"last_maintenance"`
	NextMaintenance string  `json:"next_maintenance"`
	WarrantyExpiry  string  `json:"warranty_expiry"`
	Cost            float64 `json:"cost"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	principal, _ := shared.PrincipalFromContext(r.Context())

	a, err := h.service.Upsert(r.Context(), principal, UpsertInput{
		ID:              req.AssetID,
		Name:            req.Name,
		Location:        req.Location,
		Status:          req.Status,
		LastMaintenance: ParseDate(req.LastMaintenance),
		NextMaintenance: ParseDate(req.NextMaintenance),
		WarrantyExpiry:  ParseDate(req.WarrantyExpiry),
		Cost:            req.Cost,
	})
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toDTO(*a))
}

func (h *Handler) handleIdentifier(w http.ResponseWriter, r *http.Request) {
	principal, _ := shared.PrincipalFromContext(r.Context())
	payload, image, err := h.service.Identifier(r.Context(), principal, chi.URLParam(r, "assetID"))
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	if r.URL.Query().Get("format") == "json" || image == nil {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"payload": payload})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}
