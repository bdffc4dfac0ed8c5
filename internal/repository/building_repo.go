package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const buildingsCollection = "buildings"

// BuildingRepository handles Firestore read/write for buildings.
type BuildingRepository struct {
	client *firestore.Client
}

func NewBuildingRepository(client *firestore.Client) *BuildingRepository {
	return &BuildingRepository{client: client}
}

// FindByID loads a single building, normalizing its object map.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (model.Building, error) {
	doc, err := r.client.Collection(buildingsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.Building{}, apperr.New(apperr.KindNotFound, "building %s not found", id)
	}
	if err != nil {
		return model.Building{}, apperr.Wrap(apperr.KindStore, err, "get building %s", id)
	}
	return decodeBuilding(doc)
}

// Query returns buildings matching the filter. Property and client filters map
// to Firestore queries; the free-text search is applied in memory because
// Firestore has no substring operator and the collection stays small.
func (r *BuildingRepository) Query(ctx context.Context, filter model.BuildingFilter) ([]model.Building, error) {
	q := r.client.Collection(buildingsCollection).Query
	if filter.PropertyID != "" {
		q = q.Where("propertyId", "==", filter.PropertyID)
	}
	if filter.ClientID != "" {
		q = q.Where("clientId", "==", filter.ClientID)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	iter := q.Documents(ctx)
	defer iter.Stop()

	var buildings []model.Building
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "iterate buildings")
		}
		b, err := decodeBuilding(doc)
		if err != nil {
			return nil, err
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Name), search) &&
			!strings.Contains(strings.ToLower(b.Address), search) {
			continue
		}
		buildings = append(buildings, b)
	}
	return buildings, nil
}

// Create stores a new building document.
func (r *BuildingRepository) Create(ctx context.Context, b model.Building) (model.Building, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Objects == nil {
		b.Objects = model.BuildingObjects{}
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	ref := r.client.Collection(buildingsCollection).Doc(b.ID)
	if _, err := ref.Set(ctx, buildingDoc(b)); err != nil {
		return model.Building{}, apperr.Wrap(apperr.KindStore, err, "create building %s", b.ID)
	}
	return r.FindByID(ctx, b.ID)
}

// Replace writes the full mutable field set of a building back in one call.
// When the building carries an UpdateTime from a prior read, it is used as a
// last-update-time precondition; a concurrent write since that read surfaces
// as Conflict instead of being silently overwritten.
func (r *BuildingRepository) Replace(ctx context.Context, b model.Building) (model.Building, error) {
	if b.ID == "" {
		return model.Building{}, apperr.New(apperr.KindInvalidInput, "building id is required")
	}
	b.UpdatedAt = time.Now().UTC()

	updates := []firestore.Update{
		{Path: "name", Value: b.Name},
		{Path: "address", Value: b.Address},
		{Path: "propertyId", Value: b.PropertyID},
		{Path: "clientId", Value: b.ClientID},
		{Path: "area", Value: b.Area},
		{Path: "buildingObjects", Value: b.Objects},
		{Path: "updatedAt", Value: b.UpdatedAt},
	}
	var pre []firestore.Precondition
	if !b.UpdateTime.IsZero() {
		pre = append(pre, firestore.LastUpdateTime(b.UpdateTime))
	}

	ref := r.client.Collection(buildingsCollection).Doc(b.ID)
	_, err := ref.Update(ctx, updates, pre...)
	switch status.Code(err) {
	case codes.OK:
	case codes.NotFound:
		return model.Building{}, apperr.New(apperr.KindNotFound, "building %s not found", b.ID)
	case codes.FailedPrecondition:
		return model.Building{}, apperr.Wrap(apperr.KindConflict, err, "building %s changed since read", b.ID)
	default:
		return model.Building{}, apperr.Wrap(apperr.KindStore, err, "replace building %s", b.ID)
	}
	return r.FindByID(ctx, b.ID)
}

// Delete removes a building, reporting NotFound for unknown ids.
func (r *BuildingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := r.client.Collection(buildingsCollection).Doc(id).Delete(ctx); err != nil {
		return apperr.Wrap(apperr.KindStore, err, "delete building %s", id)
	}
	return nil
}

func decodeBuilding(doc *firestore.DocumentSnapshot) (model.Building, error) {
	var b model.Building
	if err := doc.DataTo(&b); err != nil {
		return model.Building{}, apperr.Wrap(apperr.KindStore, err, "decode building %s", doc.Ref.ID)
	}
	if b.ID == "" {
		b.ID = doc.Ref.ID
	}
	// buildingObjects is excluded from typed decode so legacy flat-array
	// documents normalize here instead of failing DataTo.
	b.Objects = model.NormalizeObjects(doc.Data()["buildingObjects"])
	b.UpdateTime = doc.UpdateTime
	return b, nil
}

func buildingDoc(b model.Building) map[string]any {
	return map[string]any{
		"id":              b.ID,
		"name":            b.Name,
		"address":         b.Address,
		"propertyId":      b.PropertyID,
		"clientId":        b.ClientID,
		"area":            b.Area,
		"buildingObjects": b.Objects,
		"createdAt":       b.CreatedAt,
		"updatedAt":       b.UpdatedAt,
	}
}
