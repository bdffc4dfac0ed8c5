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

const clientsCollection = "clients"

// ClientRepository handles Firestore read/write for client organisations.
type ClientRepository struct {
	client *firestore.Client
}

func NewClientRepository(client *firestore.Client) *ClientRepository {
	return &ClientRepository{client: client}
}

// List returns all clients.
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	iter := r.client.Collection(clientsCollection).Documents(ctx)
	defer iter.Stop()

	var clients []model.Client
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "iterate clients")
		}
		var c model.Client
		if err := doc.DataTo(&c); err != nil {
			return nil, apperr.Wrap(apperr.KindStore, err, "decode client %s", doc.Ref.ID)
		}
		if c.ID == "" {
			c.ID = doc.Ref.ID
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// Create stores a new client document.
func (r *ClientRepository) Create(ctx context.Context, c model.Client) (model.Client, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	ref := r.client.Collection(clientsCollection).Doc(c.ID)
	if _, err := ref.Set(ctx, c); err != nil {
		return model.Client{}, apperr.Wrap(apperr.KindStore, err, "create client %s", c.ID)
	}
	return c, nil
}

// Update replaces an existing client document.
func (r *ClientRepository) Update(ctx context.Context, c model.Client) (model.Client, error) {
	ref := r.client.Collection(clientsCollection).Doc(c.ID)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.Client{}, apperr.New(apperr.KindNotFound, "client %s not found", c.ID)
	}
	if err != nil {
		return model.Client{}, apperr.Wrap(apperr.KindStore, err, "get client %s", c.ID)
	}

	var prev model.Client
	if err := doc.DataTo(&prev); err == nil {
		c.CreatedAt = prev.CreatedAt
	}
	c.UpdatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, c); err != nil {
		return model.Client{}, apperr.Wrap(apperr.KindStore, err, "update client %s", c.ID)
	}
	return c, nil
}

// Delete removes a client, reporting NotFound for unknown ids.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(clientsCollection).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return apperr.New(apperr.KindNotFound, "client %s not found", id)
	} else if err != nil {
		return apperr.Wrap(apperr.KindStore, err, "get client %s", id)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return apperr.Wrap(apperr.KindStore, err, "delete client %s", id)
	}
	return nil
}
