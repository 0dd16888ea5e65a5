package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"DivineDazzle/internal/admin"
	"DivineDazzle/internal/broadcast"
	"DivineDazzle/internal/catalog"
)

// Two storefront instances sharing one snapshot slot and one sync topic,
// the way two browser tabs share a profile.
type system struct {
	hub       *broadcast.Hub
	snapshots *catalog.MemSnapshotStore
}

func newSystem() *system {
	return &system{
		hub:       broadcast.NewHub(),
		snapshots: catalog.NewMemSnapshotStore(),
	}
}

func (sys *system) newInstance(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := catalog.NewStore(context.Background(), catalog.StoreDeps{
		Log:       zap.NewNop(),
		Snapshots: sys.snapshots,
		Channel:   sys.hub.Channel(),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	verifier, err := admin.NewStaticVerifier("admin", "admin123")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	s := &catalog.Server{
		Store:    store,
		Log:      zap.NewNop(),
		Verifier: verifier,
		JWT:      admin.NewTokenMaker("test-secret"),
	}

	ts := httptest.NewServer(catalog.NewHandler(s, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "storefront",
	}))
	t.Cleanup(ts.Close)
	return ts
}

func getProducts(t *testing.T, url string) []catalog.Product {
	t.Helper()

	resp, err := http.Get(url + "/products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return products
}

func TestSystem_EditOnOneInstanceShowsOnTheOther(t *testing.T) {
	sys := newSystem()
	a := sys.newInstance(t)
	b := sys.newInstance(t)

	client := NewAdminClient(t, a.URL, "admin", "admin123")
	created := client.AddProduct(t, catalog.Product{
		Title:    "Integration Print",
		IsActive: true,
		Sizes:    []catalog.SizeVariant{{Width: 24, Height: 18, Depth: 1.5, Price: 199.99}},
	})

	productsB := getProducts(t, b.URL)

	found := false
	for _, p := range productsB {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("product added on A never reached B: %+v", productsB)
	}

	if !reflect.DeepEqual(getProducts(t, a.URL), productsB) {
		t.Fatalf("instances diverged")
	}
}

func TestSystem_LateInstanceHydratesFromSharedSlot(t *testing.T) {
	sys := newSystem()
	a := sys.newInstance(t)

	client := NewAdminClient(t, a.URL, "admin", "admin123")
	created := client.AddProduct(t, catalog.Product{Title: "Persisted Print", IsActive: true})

	// A third tab opened later hydrates from the slot, not the defaults.
	c := sys.newInstance(t)

	found := false
	for _, p := range getProducts(t, c.URL) {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("late instance did not hydrate the persisted catalog")
	}
}

func TestSystem_LastSaveWinsAcrossInstances(t *testing.T) {
	sys := newSystem()
	a := sys.newInstance(t)
	b := sys.newInstance(t)

	clientA := NewAdminClient(t, a.URL, "admin", "admin123")
	clientB := NewAdminClient(t, b.URL, "admin", "admin123")

	clientA.AddProduct(t, catalog.Product{ID: "p_from_a", Title: "From A", IsActive: true})

	final := []catalog.Product{{ID: "p_final", Title: "Final", IsActive: true, Sizes: []catalog.SizeVariant{}}}
	clientB.ReplaceAll(t, final)

	for _, url := range []string{a.URL, b.URL} {
		got := getProducts(t, url)
		if len(got) != 1 || got[0].ID != "p_final" {
			t.Fatalf("instance %s did not settle on the last snapshot: %+v", url, got)
		}
	}
}
