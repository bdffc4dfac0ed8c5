package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const propertiesCollection = "properties"

// PropertyRepository handles Firestore read/write for properties.
type PropertyRepository struct {
	client *firestore.Client
}

func NewPropertyRepository(client *firestore.Client) *PropertyRepository {
	return &PropertyRepository{client: client}
}

// List returns properties, optionally restricted to one client.
func (r *PropertyRepository) List(ctx context.Context, clientID string) ([]model.Property, error) {
	q := r.client.Collection(propertiesCollection).Query
	if clientID != "" {
		q = q.Where("clientId", "==", clientID)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var properties []model.Property
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "iterate properties")
		}
		var p model.Property
		if err := doc.DataTo(&p); err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "decode property %s", doc.Ref.ID)
		}
		if p.ID == "" {
			p.ID = doc.Ref.ID
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// Create stores a new property document.
func (r *PropertyRepository) Create(ctx context.Context, p model.Property) (model.Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	ref := r.client.Collection(propertiesCollection).Doc(p.ID)
	if _, err := ref.Set(ctx, p); err != nil {
		return model.Property{}, apperr.Wrap(apperr.KindStore, err, "create property %s", p.ID)
	}
	return p, nil
}

// Update replaces an existing property document.
func (r *PropertyRepository) Update(ctx context.Context, p model.Property) (model.Property, error) {
	ref := r.client.Collection(propertiesCollection).Doc(p.ID)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.Property{}, apperr.New(apperr.KindNotFound, "property %s not found", p.ID)
	}
	if err != nil {
		return model.Property{}, apperr.Wrap(apperr.KindStore, err, "get property %s", p.ID)
	}

	var prev model.Property
	if err := doc.DataTo(&prev); err == nil {
		p.CreatedAt = prev.CreatedAt
	}
	p.UpdatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, p); err != nil {
		return model.Property{}, apperr.Wrap(apperr.KindStore, err, "update property %s", p.ID)
	}
	return p, nil
}

// Delete removes a property, reporting NotFound for unknown ids.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(propertiesCollection).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return apperr.New(apperr.KindNotFound, "property %s not found", id)
	} else if err != nil {
		return apperr.Wrap(apperr.KindStore, err, "get property %s", id)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return apperr.Wrap(apperr.KindStore, err, "delete property %s", id)
	}
	return nil
}
