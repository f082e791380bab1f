package analytics

import (
	"context"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/assetdesk/assetdesk/internal/asset"
)

// AssetSource exposes the asset snapshot the aggregations read.
type AssetSource interface {
	List(ctx context.Context) ([]asset.Asset, error)
}

// Service aggregates asset counts and costs over the current snapshot.
// Reads go through the versioned cache; asset mutations bump the version.
type Service struct {
	assets  AssetSource
	cache   *Cache
	printer *message.Printer
}

// NewService wires an AssetSource with a Cache helper. cache may be nil, in
// which case every read hits the store.
func NewService(assets AssetSource, cache *Cache) *Service {
	return &Service{
		assets:  assets,
		cache:   cache,
		printer: message.NewPrinter(language.English),
	}
}

// StatusCounts groups assets by status.
func (s *Service) StatusCounts(ctx context.Context) (map[asset.Status]int, error) {
	key, err := s.cache.BuildKey(ctx, "analytics", "status_counts")
	if err != nil {
		return nil, err
	}
	var counts map[asset.Status]int
	err = s.cache.FetchJSON(ctx, key, &counts, func(ctx context.Context) (interface{}, error) {
		all, err := s.assets.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[asset.Status]int)
		for _, a := range all {
			out[a.Status]++
		}
		return out, nil
	})
	return counts, err
}

// CostSeries returns the cost column in current row order. It is not a time
// series; the chart downstream merely presents it as one.
func (s *Service) CostSeries(ctx context.Context) ([]float64, error) {
	key, err := s.cache.BuildKey(ctx, "analytics", "cost_series")
	if err != nil {
		return nil, err
	}
	var series []float64
	err = s.cache.FetchJSON(ctx, key, &series, func(ctx context.Context) (interface{}, error) {
		all, err := s.assets.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]float64, 0, len(all))
		for _, a := range all {
			out = append(out, a.Cost)
		}
		return out, nil
	})
	return series, err
}

// TotalCost sums all asset costs.
func (s *Service) TotalCost(ctx context.Context) (float64, error) {
	key, err := s.cache.BuildKey(ctx, "analytics", "total_cost")
	if err != nil {
		return 0, err
	}
	var total float64
	err = s.cache.FetchJSON(ctx, key, &total, func(ctx context.Context) (interface{}, error) {
		all, err := s.assets.List(ctx)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, a := range all {
			sum += a.Cost
		}
		return sum, nil
	})
	return total, err
}

// CostRow pairs an asset with its cost for the costs view.
type CostRow struct {
	AssetID string  `json:"asset_id"`
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
}

// CostBreakdown lists per-asset costs in current row order.
func (s *Service) CostBreakdown(ctx context.Context) ([]CostRow, error) {
	key, err := s.cache.BuildKey(ctx, "analytics", "cost_breakdown")
	if err != nil {
		return nil, err
	}
	var rows []CostRow
	err = s.cache.FetchJSON(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		all, err := s.assets.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]CostRow, 0, len(all))
		for _, a := range all {
			out = append(out, CostRow{AssetID: a.ID, Name: a.Name, Cost: a.Cost})
		}
		return out, nil
	})
	return rows, err
}

// FormatTotal renders a cost with the currency prefix and thousands
// separators, e.g. "₹4,000.50".
func (s *Service) FormatTotal(v float64) string {
	return asset.CurrencySymbol + s.printer.Sprintf("%.2f", v)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
