package pricelist

import (
	"context"
	"fmt"
	"testing"

	"github.com/planor/portal-api/internal/platform/blob"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
)

type fakeCatalog struct {
	entries []model.PriceCatalogEntry
	created int
}

func (f *fakeCatalog) FindByTypeAndObject(ctx context.Context, typ, object string) (*model.PriceCatalogEntry, error) {
	for i := range f.entries {
		if f.entries[i].Type == typ && f.entries[i].Object == object && f.entries[i].IsGlobal {
			entry := f.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) Create(ctx context.Context, entry model.PriceCatalogEntry) (model.PriceCatalogEntry, error) {
	f.created++
	entry.ID = fmt.Sprintf("entry-%d", f.created)
	f.entries = append(f.entries, entry)
	return entry, nil
}

type fakeBuildings struct {
	buildings map[string]model.Building
	replaced  int
}

func (f *fakeBuildings) FindByID(ctx context.Context, id string) (model.Building, error) {
	b, ok := f.buildings[id]
	if !ok {
		return model.Building{}, apperr.New(apperr.KindNotFound, "building %s not found", id)
	}
	return b, nil
}

func (f *fakeBuildings) Replace(ctx context.Context, b model.Building) (model.Building, error) {
	f.replaced++
	f.buildings[b.ID] = b
	return b, nil
}

type fakeFetcher struct {
	file blob.File
	err  error
}

func (f fakeFetcher) FetchText(ctx context.Context, url string) (blob.File, error) {
	return f.file, f.err
}

const doorContent = "Typ;Objekt;Antal;Våning;ID\nDoor;Door W;2;1;E1\nDoor;Door W;3;1;E2\n"

func newIngestService(file blob.File, building model.Building) (*Service, *fakeCatalog, *fakeBuildings) {
	catalog := &fakeCatalog{}
	buildings := &fakeBuildings{buildings: map[string]model.Building{building.ID: building}}
	return NewService(fakeFetcher{file: file}, catalog, buildings), catalog, buildings
}

func TestIngestDoorFile(t *testing.T) {
	svc, catalog, buildings := newIngestService(
		blob.File{Name: "door.csv", Content: doorContent},
		model.Building{ID: "b1", Name: "Hus A"},
	)

	result, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/door.csv")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if catalog.created != 1 {
		t.Fatalf("created entries = %d, want 1", catalog.created)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(result.Documents))
	}
	entry := result.Documents[0]
	if entry.Type != "door" || entry.Object != "Door W" || entry.Price != 0 || !entry.IsGlobal {
		t.Errorf("entry = %+v", entry)
	}

	doors := buildings.buildings["b1"].Objects["doors"]
	if len(doors) != 1 {
		t.Fatalf("doors = %d items, want 1", len(doors))
	}
	item := doors[0]
	if item.Object != "Door W" || item.Count == nil || *item.Count != 5 {
		t.Errorf("item = %+v", item)
	}
	if item.Area != nil {
		t.Errorf("area should be absent on a count item, got %v", *item.Area)
	}
	if result.TypeCounts["Door W"] != 2 {
		t.Errorf("typeCounts = %v", result.TypeCounts)
	}
}

func TestIngestTwiceReusesEntryAndSumsCounts(t *testing.T) {
	svc, catalog, buildings := newIngestService(
		blob.File{Name: "door.csv", Content: doorContent},
		model.Building{ID: "b1"},
	)

	for i := 0; i < 2; i++ {
		if _, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/door.csv"); err != nil {
			t.Fatalf("Ingest #%d: %v", i+1, err)
		}
	}

	if catalog.created != 1 {
		t.Fatalf("created entries = %d, want 1", catalog.created)
	}
	doors := buildings.buildings["b1"].Objects["doors"]
	if len(doors) != 1 {
		t.Fatalf("doors = %d items, want 1", len(doors))
	}
	if doors[0].Count == nil || *doors[0].Count != 10 {
		t.Errorf("count = %v, want 10", doors[0].Count)
	}
}

func TestIngestAddsAreaToExistingItem(t *testing.T) {
	existingArea := 100.0
	building := model.Building{
		ID: "b1",
		Objects: model.BuildingObjects{
			"floors": {{ID: "entry-9", Type: "floor", Object: "Parkett Ek", Area: &existingArea}},
		},
	}
	svc, _, buildings := newIngestService(
		blob.File{Name: "floor.csv", Content: "Golv;Parkett Ek;50,5 m²;1;F1\n"},
		building,
	)

	if _, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/floor.csv"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	floors := buildings.buildings["b1"].Objects["floors"]
	if len(floors) != 1 {
		t.Fatalf("floors = %d items, want 1", len(floors))
	}
	if floors[0].Area == nil || *floors[0].Area != 150.5 {
		t.Errorf("area = %v, want 150.5", floors[0].Area)
	}
}

func TestIngestClearsLingeringCountOnAreaItem(t *testing.T) {
	// A category correction can leave an area item with a stale count; area
	// ingestion must remove it so count/area exclusivity holds.
	staleCount := 3
	area := 100.0
	building := model.Building{
		ID: "b1",
		Objects: model.BuildingObjects{
			"floors": {{Type: "floor", Object: "Parkett Ek", Count: &staleCount, Area: &area}},
		},
	}
	svc, _, buildings := newIngestService(
		blob.File{Name: "floor.csv", Content: "Golv;Parkett Ek;50,5 m²;1;F1\n"},
		building,
	)

	if _, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/floor.csv"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	item := buildings.buildings["b1"].Objects["floors"][0]
	if item.Count != nil {
		t.Errorf("count should be cleared, got %d", *item.Count)
	}
	if item.Area == nil || *item.Area != 150.5 {
		t.Errorf("area = %v, want 150.5", item.Area)
	}
}

func TestIngestMissingBuilding(t *testing.T) {
	svc, catalog, _ := newIngestService(
		blob.File{Name: "door.csv", Content: doorContent},
		model.Building{ID: "b1"},
	)

	_, err := svc.Ingest(context.Background(), "missing", "https://blobs.example.com/door.csv")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	// Building resolution happens before any catalog write.
	if catalog.created != 0 {
		t.Errorf("created entries = %d, want 0", catalog.created)
	}
}

func TestIngestRejectsHeaderOnlyFile(t *testing.T) {
	svc, _, _ := newIngestService(
		blob.File{Name: "door.csv", Content: "Typ;Objekt;Antal;Våning;ID\n"},
		model.Building{ID: "b1"},
	)

	_, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/door.csv")
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
}

func TestIngestRejectsUnknownCategoryFile(t *testing.T) {
	svc, _, _ := newIngestService(
		blob.File{Name: "stuff.csv", Content: "X;A;5;1;E1\n"},
		model.Building{ID: "b1"},
	)

	_, err := svc.Ingest(context.Background(), "b1", "https://blobs.example.com/stuff.csv")
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("err = %v, want InvalidInput", err)
	}
}

func TestIngestValidatesRequest(t *testing.T) {
	svc, _, _ := newIngestService(blob.File{}, model.Building{ID: "b1"})

	if _, err := svc.Ingest(context.Background(), "", "https://blobs.example.com/door.csv"); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("missing buildingId: err = %v, want InvalidInput", err)
	}
	if _, err := svc.Ingest(context.Background(), "b1", ""); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("missing fileUrl: err = %v, want InvalidInput", err)
	}
}
