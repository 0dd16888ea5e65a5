package catalog

import "context"

// DefaultSnapshotKey is the well-known slot the catalog is persisted under.
const DefaultSnapshotKey = "products"

// SnapshotStore is the durable slot holding the full catalog. Save overwrites
// unconditionally; there is no versioning and no concurrency check, the last
// write wins. Load reports ok=false when the slot is empty or the stored
// payload cannot be decoded; callers fall back to the default catalog.
type SnapshotStore interface {
	Save(ctx context.Context, products []Product) error
	Load(ctx context.Context) ([]Product, bool, error)
	Ping(ctx context.Context) error
}
