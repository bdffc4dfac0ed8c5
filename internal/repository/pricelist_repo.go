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

const pricelistsCollection = "pricelists"

// PricelistRepository handles Firestore read/write for the price catalog.
type PricelistRepository struct {
	client *firestore.Client
}

func NewPricelistRepository(client *firestore.Client) *PricelistRepository {
	return &PricelistRepository{client: client}
}

// FindByTypeAndObject looks up the global catalog entry for a (type, object)
// pair. Returns nil without error when no entry exists.
func (r *PricelistRepository) FindByTypeAndObject(ctx context.Context, typ, object string) (*model.PriceCatalogEntry, error) {
	iter := r.client.Collection(pricelistsCollection).
		Where("type", "==", typ).
		Where("object", "==", object).
		Where("isGlobal", "==", true).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, err, "query catalog entry %s/%s", typ, object)
	}
	entry, err := decodeEntry(doc)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create stores a new catalog entry. Price defaults to 0; operators fill it in
// later through the update endpoint.
func (r *PricelistRepository) Create(ctx context.Context, entry model.PriceCatalogEntry) (model.PriceCatalogEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	ref := r.client.Collection(pricelistsCollection).Doc(entry.ID)
	if _, err := ref.Set(ctx, entry); err != nil {
		return model.PriceCatalogEntry{}, apperr.Wrap(apperr.KindStore, err, "create catalog entry %s", entry.ID)
	}
	return entry, nil
}

// QueryPositivePrice returns every entry with a price set, the only entries
// the cost calculator can use.
func (r *PricelistRepository) QueryPositivePrice(ctx context.Context) ([]model.PriceCatalogEntry, error) {
	iter := r.client.Collection(pricelistsCollection).Where("price", ">", 0).Documents(ctx)
	return collectEntries(iter)
}

// List returns the full catalog.
func (r *PricelistRepository) List(ctx context.Context) ([]model.PriceCatalogEntry, error) {
	iter := r.client.Collection(pricelistsCollection).Documents(ctx)
	return collectEntries(iter)
}

// UpdatePrice sets the price of an existing entry.
func (r *PricelistRepository) UpdatePrice(ctx context.Context, id string, price float64) (model.PriceCatalogEntry, error) {
	ref := r.client.Collection(pricelistsCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "price", Value: price},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return model.PriceCatalogEntry{}, apperr.New(apperr.KindNotFound, "catalog entry %s not found", id)
	}
	if err != nil {
		return model.PriceCatalogEntry{}, apperr.Wrap(apperr.KindStore, err, "update catalog entry %s", id)
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return model.PriceCatalogEntry{}, apperr.Wrap(apperr.KindStore, err, "get catalog entry %s", id)
	}
	return decodeEntry(doc)
}

func collectEntries(iter *firestore.DocumentIterator) ([]model.PriceCatalogEntry, error) {
	defer iter.Stop()
	var entries []model.PriceCatalogEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "iterate catalog entries")
		}
		entry, err := decodeEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(doc *firestore.DocumentSnapshot) (model.PriceCatalogEntry, error) {
	var entry model.PriceCatalogEntry
	if err := doc.DataTo(&entry); err != nil {
		return model.PriceCatalogEntry{}, apperr.Wrap(apperr.KindStore, err, "decode catalog entry %s", doc.Ref.ID)
	}
	if entry.ID == "" {
		entry.ID = doc.Ref.ID
	}
	return entry, nil
}
