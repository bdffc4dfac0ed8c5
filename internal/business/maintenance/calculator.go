// Package maintenance computes maintenance-cost reports by joining building
// objects against the price catalog.
package maintenance

import (
	"context"
	"strings"

	"github.com/planor/portal-api/pkg/model"
)

// BuildingSource supplies the buildings matching a filter.
type BuildingSource interface {
	Query(ctx context.Context, filter model.BuildingFilter) ([]model.Building, error)
}

// PriceSource supplies the priced catalog entries.
type PriceSource interface {
	QueryPositivePrice(ctx context.Context) ([]model.PriceCatalogEntry, error)
}

// Calculator produces cost breakdowns with a single bulk fetch: all relevant
// buildings and the full priced catalog in two round trips, then an in-memory
// join. Catalog and per-building object lists are small, so no paging.
type Calculator struct {
	buildings BuildingSource
	prices    PriceSource
}

func NewCalculator(buildings BuildingSource, prices PriceSource) *Calculator {
	return &Calculator{buildings: buildings, prices: prices}
}

// Calculate returns the six-bucket cost breakdown for the filtered buildings.
// Object pairs without a priced catalog match contribute nothing; priced value
// under a type outside the six categories accumulates into Unmatched.
func (c *Calculator) Calculate(ctx context.Context, filter model.BuildingFilter) (model.CostBreakdown, error) {
	buildings, err := c.buildings.Query(ctx, filter)
	if err != nil {
		return model.CostBreakdown{}, err
	}
	entries, err := c.prices.QueryPositivePrice(ctx)
	if err != nil {
		return model.CostBreakdown{}, err
	}

	lookup := make(map[string]float64, len(entries))
	for _, e := range entries {
		if e.Price <= 0 {
			continue
		}
		lookup[priceKey(e.Type, e.Object)] = e.Price
	}

	breakdown := model.CostBreakdown{BuildingCount: len(buildings)}
	for _, b := range buildings {
		breakdown.TotalArea += b.Area
		for _, items := range b.Objects {
			for _, item := range items {
				if item.MaintenanceDate != "" {
					breakdown.WithMaintenanceDate++
				}
				unitPrice := lookup[priceKey(item.Type, item.Object)]
				if unitPrice <= 0 {
					continue
				}
				addBucket(&breakdown, model.ParseCategory(item.Type), unitPrice*quantity(item))
			}
		}
	}
	return breakdown, nil
}

func priceKey(typ, object string) string {
	return strings.ToLower(typ) + "_" + object
}

// quantity prefers count over area if both are somehow present.
func quantity(item model.ObjectRecord) float64 {
	switch {
	case item.Count != nil:
		return float64(*item.Count)
	case item.Area != nil:
		return *item.Area
	default:
		return 1
	}
}

func addBucket(b *model.CostBreakdown, category model.Category, amount float64) {
	switch category {
	case model.CategoryDoor:
		b.Doors += amount
	case model.CategoryWindow:
		b.Windows += amount
	case model.CategoryFloor:
		b.Floors += amount
	case model.CategoryWall:
		b.Walls += amount
	case model.CategoryRoof:
		b.Roofs += amount
	case model.CategoryArea:
		b.Areas += amount
	default:
		b.Unmatched += amount
	}
}
