// Package pricelist implements pricelist file ingestion: parse an uploaded
// file, grow the price catalog idempotently, and merge quantities into the
// target building's object map.
package pricelist

import (
	"context"
	"strings"

	"github.com/planor/portal-api/internal/platform/blob"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
)

// headerEcho is the literal header row the upstream export repeats inside the
// data section; it is always discarded before aggregation.
const headerEcho = "Typ"

// CatalogStore abstracts the price-catalog persistence for testability.
type CatalogStore interface {
	FindByTypeAndObject(ctx context.Context, typ, object string) (*model.PriceCatalogEntry, error)
	Create(ctx context.Context, entry model.PriceCatalogEntry) (model.PriceCatalogEntry, error)
}

// BuildingStore abstracts the building persistence for testability.
type BuildingStore interface {
	FindByID(ctx context.Context, id string) (model.Building, error)
	Replace(ctx context.Context, b model.Building) (model.Building, error)
}

// FileFetcher retrieves an uploaded pricelist file by URL.
type FileFetcher interface {
	FetchText(ctx context.Context, url string) (blob.File, error)
}

// Service runs the ingestion pipeline end to end.
type Service struct {
	fetcher   FileFetcher
	catalog   CatalogStore
	buildings BuildingStore
}

func NewService(fetcher FileFetcher, catalog CatalogStore, buildings BuildingStore) *Service {
	return &Service{fetcher: fetcher, catalog: catalog, buildings: buildings}
}

// Result is the ingestion response: the catalog entries touched (created or
// reused), the building after the merge, and per-label source row counts.
type Result struct {
	Documents  []model.PriceCatalogEntry `json:"documents"`
	Building   model.Building            `json:"building"`
	TypeCounts map[string]int            `json:"typeCounts"`
}

// aggregate is one batch-summed working record per object label.
type aggregate struct {
	object string
	count  int
	area   float64
	rows   int
}

// Ingest fetches the file at fileURL, parses it, and merges the result into
// the catalog and the target building. The building is resolved before any
// catalog write so a missing building fails the whole operation cleanly.
// Catalog growth is idempotent: an existing global (type, object) entry is
// authoritative and reused.
func (s *Service) Ingest(ctx context.Context, buildingID, fileURL string) (Result, error) {
	if strings.TrimSpace(buildingID) == "" {
		return Result{}, apperr.New(apperr.KindInvalidInput, "buildingId is required")
	}
	if strings.TrimSpace(fileURL) == "" {
		return Result{}, apperr.New(apperr.KindInvalidInput, "fileUrl is required")
	}

	building, err := s.buildings.FindByID(ctx, buildingID)
	if err != nil {
		return Result{}, err
	}

	file, err := s.fetcher.FetchText(ctx, fileURL)
	if err != nil {
		return Result{}, err
	}

	rows, category, err := Parse(file.Content, file.Name)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInvalidInput, err, "parse pricelist file")
	}
	if !category.Known() {
		return Result{}, apperr.New(apperr.KindInvalidInput, "cannot infer category from file name %q", file.Name)
	}

	aggregates := aggregateRows(rows)
	if len(aggregates) == 0 {
		return Result{}, apperr.New(apperr.KindInvalidInput, "no usable rows in %s", file.Name)
	}

	if building.Objects == nil {
		building.Objects = model.BuildingObjects{}
	}
	bucket := category.BucketKey()
	result := Result{TypeCounts: make(map[string]int, len(aggregates))}

	for _, agg := range aggregates {
		result.TypeCounts[agg.object] = agg.rows

		entry, err := s.catalog.FindByTypeAndObject(ctx, string(category), agg.object)
		if err != nil {
			return Result{}, err
		}
		if entry == nil {
			created, err := s.catalog.Create(ctx, model.PriceCatalogEntry{
				Type:     string(category),
				Object:   agg.object,
				IsGlobal: true,
			})
			if err != nil {
				return Result{}, err
			}
			entry = &created
		}
		result.Documents = append(result.Documents, *entry)

		building.Objects[bucket] = mergeRecord(building.Objects[bucket], category, *entry, agg)
	}

	updated, err := s.buildings.Replace(ctx, building)
	if err != nil {
		return Result{}, err
	}
	result.Building = updated
	return result, nil
}

// aggregateRows sums the batch per object label before any store interaction,
// preserving first-seen order for deterministic output.
func aggregateRows(rows []Row) []aggregate {
	index := make(map[string]int)
	var aggs []aggregate
	for _, row := range rows {
		if row.Type == headerEcho {
			continue
		}
		label := strings.TrimSpace(row.Object)
		if label == "" {
			continue
		}
		i, ok := index[label]
		if !ok {
			i = len(aggs)
			index[label] = i
			aggs = append(aggs, aggregate{object: label})
		}
		aggs[i].count += row.Count
		aggs[i].area += row.Area
		aggs[i].rows++
	}
	return aggs
}

// mergeRecord adds an aggregate into a bucket's line items. An existing item
// with the same label absorbs the new quantity; the opposing field is cleared
// so count/area exclusivity survives repeated ingestion and category
// corrections. New labels append a fresh item carrying only the relevant field.
func mergeRecord(items []model.ObjectRecord, category model.Category, entry model.PriceCatalogEntry, agg aggregate) []model.ObjectRecord {
	for i := range items {
		if items[i].Object != agg.object {
			continue
		}
		if category.CountBased() {
			count := agg.count
			if items[i].Count != nil {
				count += *items[i].Count
			}
			items[i].Count = &count
			items[i].Area = nil
		} else {
			area := agg.area
			if items[i].Area != nil {
				area += *items[i].Area
			}
			items[i].Area = &area
			items[i].Count = nil
		}
		items[i].Type = string(category)
		if items[i].ID == "" {
			items[i].ID = entry.ID
		}
		return items
	}

	rec := model.ObjectRecord{ID: entry.ID, Type: string(category), Object: agg.object}
	if category.CountBased() {
		count := agg.count
		rec.Count = &count
	} else {
		area := agg.area
		rec.Area = &area
	}
	return append(items, rec)
}
