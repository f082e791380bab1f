package analytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
)

// Handler serves the analytics and costs views.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authz   rbac.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, authz rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: authz}
}

// MountRoutes registers analytics routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.RequireAny(rbac.CapAnalytics)).Get("/status-counts", h.handleStatusCounts)
	r.With(h.authz.RequireAny(rbac.CapAnalytics)).Get("/cost-series", h.handleCostSeries)
}

// MountCosts registers the costs view at the router root.
func (h *Handler) MountCosts(r chi.Router) {
	r.With(h.authz.RequireAny(rbac.CapViewCosts)).Get("/costs", h.handleCosts)
}

func (h *Handler) handleStatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.StatusCounts(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) handleCostSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.CostSeries(r.Context())
	if err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	if series == nil {
		series = []float64{}
	}
	shared.WriteJSON(w, http.StatusOK, series)
}

type costsResponse struct {
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"total_formatted"`
	Rows           []CostRow `json:"rows"`
}

func (h *Handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	var (
		total float64
		rows  []CostRow
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		total, err = h.service.TotalCost(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = h.service.CostBreakdown(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		shared.WriteError(w, h.logger, err)
		return
	}
	if rows == nil {
		rows = []CostRow{}
	}
	shared.WriteJSON(w, http.StatusOK, costsResponse{
		Total:          total,
		TotalFormatted: h.service.FormatTotal(total),
		Rows:           rows,
	})
}
