package model

import "time"

// PriceCatalogEntry is one priced (category, object-variant) pair stored in the
// `pricelists` collection. Price stays 0 until an operator fills it in.
type PriceCatalogEntry struct {
	ID         string    `json:"id,omitempty" firestore:"id,omitempty"`
	Type       string    `json:"type,omitempty" firestore:"type,omitempty"`
	Object     string    `json:"object,omitempty" firestore:"object,omitempty"`
	Price      float64   `json:"price" firestore:"price"`
	BuildingID string    `json:"buildingId,omitempty" firestore:"buildingId,omitempty"`
	IsGlobal   bool      `json:"isGlobal" firestore:"isGlobal"`
	CreatedAt  time.Time `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// ObjectRecord is one line item inside a building's category-keyed object map.
// Exactly one of Count/Area is set: count for discrete categories (windows,
// doors), area for continuous ones (floors, walls, roofs, areas).
type ObjectRecord struct {
	ID              string   `json:"id,omitempty" firestore:"id,omitempty"`
	Type            string   `json:"type,omitempty" firestore:"type,omitempty"`
	Object          string   `json:"object,omitempty" firestore:"object,omitempty"`
	Count           *int     `json:"count,omitempty" firestore:"count,omitempty"`
	Area            *float64 `json:"area,omitempty" firestore:"area,omitempty"`
	MaintenanceDate string   `json:"maintenanceDate,omitempty" firestore:"maintenanceDate,omitempty"`
}

// Building is the core document of the `buildings` collection. Objects is
// normalized from the stored `buildingObjects` field at the repository
// boundary, so it never carries the legacy flat-array shape in memory.
type Building struct {
	ID         string          `json:"id,omitempty" firestore:"id,omitempty"`
	Name       string          `json:"name,omitempty" firestore:"name,omitempty"`
	Address    string          `json:"address,omitempty" firestore:"address,omitempty"`
	PropertyID string          `json:"propertyId,omitempty" firestore:"propertyId,omitempty"`
	ClientID   string          `json:"clientId,omitempty" firestore:"clientId,omitempty"`
	Area       float64         `json:"area,omitempty" firestore:"area,omitempty"`
	Objects    BuildingObjects `json:"buildingObjects,omitempty" firestore:"-"`
	CreatedAt  time.Time       `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`

	// UpdateTime is the Firestore document update time captured on read and
	// used as the optimistic-concurrency token on replace.
	UpdateTime time.Time `json:"-" firestore:"-"`
}

// Property groups buildings under a client.
type Property struct {
	ID        string    `json:"id,omitempty" firestore:"id,omitempty"`
	Name      string    `json:"name,omitempty" firestore:"name,omitempty"`
	Address   string    `json:"address,omitempty" firestore:"address,omitempty"`
	ClientID  string    `json:"clientId,omitempty" firestore:"clientId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// Client is a property-owning customer organisation.
type Client struct {
	ID           string    `json:"id,omitempty" firestore:"id,omitempty"`
	Name         string    `json:"name,omitempty" firestore:"name,omitempty"`
	OrgNumber    string    `json:"orgNumber,omitempty" firestore:"orgNumber,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty" firestore:"contactEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// BuildingFilter narrows a building query. Filters are AND-combined; zero
// values mean "all buildings".
type BuildingFilter struct {
	PropertyID string
	ClientID   string
	Search     string
}

// CostBreakdown is the maintenance-cost report: one bucket per category plus
// ancillary totals. Unmatched collects value priced under object types outside
// the six known categories so new categories surface instead of vanishing.
type CostBreakdown struct {
	Doors   float64 `json:"doors"`
	Floors  float64 `json:"floors"`
	Windows float64 `json:"windows"`
	Walls   float64 `json:"walls"`
	Roofs   float64 `json:"roofs"`
	Areas   float64 `json:"areas"`

	Unmatched           float64 `json:"unmatched,omitempty"`
	BuildingCount       int     `json:"buildingCount"`
	TotalArea           float64 `json:"totalArea"`
	WithMaintenanceDate int     `json:"withMaintenanceDate"`
}
