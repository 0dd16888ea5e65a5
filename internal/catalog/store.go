package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"DivineDazzle/internal/broadcast"
)

// Store owns the canonical product list for one running instance.
//
// Every mutation commits before returning: the new full snapshot is written
// to the SnapshotStore, published to the broadcast channel, and local
// watchers are signalled. Persistence and publish failures are logged and
// absorbed; the instance keeps serving from memory. Mutations that match
// nothing are silent no-ops.
//
// Concurrent edits across instances resolve by last writer wins: whichever
// full snapshot lands last replaces everything, no merging.
type Store struct {
	log       *zap.Logger
	snapshots SnapshotStore
	channel   broadcast.Channel
	origin    string

	mu       sync.RWMutex
	products []Product

	watchMu     sync.Mutex
	watchSeq    int
	watchers    map[int]chan struct{}
	unsubscribe func()
}

type StoreDeps struct {
	Log       *zap.Logger
	Snapshots SnapshotStore

	// Channel is optional; without it the instance runs standalone.
	Channel broadcast.Channel
}

// NewStore hydrates the catalog from the snapshot slot, falling back to the
// built-in default catalog when the slot is empty or unreadable, and starts
// listening for snapshots published by other instances.
func NewStore(ctx context.Context, deps StoreDeps) (*Store, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		log:       log,
		snapshots: deps.Snapshots,
		channel:   deps.Channel,
		origin:    uuid.NewString(),
		watchers:  make(map[int]chan struct{}),
	}

	products, ok, err := deps.Snapshots.Load(ctx)
	if err != nil {
		log.Warn("snapshot load failed, using default catalog", zap.Error(err))
		ok = false
	}
	if !ok {
		products = DefaultProducts()
	}
	s.products = cloneAll(products)

	if s.channel != nil {
		cancel, err := s.channel.Subscribe(s.handleMessage)
		if err != nil {
			return nil, err
		}
		s.unsubscribe = cancel
	}

	return s, nil
}

// Close tears the sync subscription down and closes the channel. The store
// itself stays readable afterwards.
func (s *Store) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.channel != nil {
		return s.channel.Close()
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.snapshots.Ping(ctx)
}

// GetAll returns a copy of the current catalog in display order.
func (s *Store) GetAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.products)
}

// Get returns the product with the given id.
func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Product{}, false
}

// Add appends the product, or replaces an existing product with the same id
// in place, keeping its position. Field contents are not validated.
func (s *Store) Add(p Product) {
	s.mu.Lock()
	replaced := false
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p.clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.products = append(s.products, p.clone())
	}
	snap := cloneAll(s.products)
	s.mu.Unlock()

	s.commit(snap)
}

// Update merges the patch into the product with the given id. Unknown id is
// a silent no-op.
func (s *Store) Update(id string, patch ProductPatch) {
	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID == id {
			patch.apply(&s.products[i])
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snap := cloneAll(s.products)
	s.mu.Unlock()

	s.commit(snap)
}

// UpdateSize merges the patch into one size variant. When duplicate size ids
// exist the first match in sequence order is patched. Unknown product or
// size id is a silent no-op.
func (s *Store) UpdateSize(productID, sizeID string, patch SizePatch) {
	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		for j := range s.products[i].Sizes {
			if s.products[i].Sizes[j].ID == sizeID {
				patch.apply(&s.products[i].Sizes[j])
				found = true
				break
			}
		}
		break
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snap := cloneAll(s.products)
	s.mu.Unlock()

	s.commit(snap)
}

// Remove deletes the product with the given id. Unknown id is a silent no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snap := cloneAll(s.products)
	s.mu.Unlock()

	s.commit(snap)
}

// RemoveSize deletes one size variant. A product left with no sizes stays in
// the catalog and lists as unavailable. Unknown ids are a silent no-op.
func (s *Store) RemoveSize(productID, sizeID string) {
	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		for j := range s.products[i].Sizes {
			if s.products[i].Sizes[j].ID == sizeID {
				s.products[i].Sizes = append(s.products[i].Sizes[:j], s.products[i].Sizes[j+1:]...)
				found = true
				break
			}
		}
		break
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snap := cloneAll(s.products)
	s.mu.Unlock()

	s.commit(snap)
}

// ReplaceAll swaps the whole catalog, the admin "save changes" path.
func (s *Store) ReplaceAll(products []Product) {
	s.setAll(products, true)
}

func (s *Store) setAll(products []Product, publish bool) {
	s.mu.Lock()
	s.products = cloneAll(products)
	snap := cloneAll(s.products)
	s.mu.Unlock()

	if publish {
		s.commit(snap)
		return
	}

	// Snapshot accepted from another instance: persist it locally
	// (redundant with the sender's write when the slot is shared, harmless)
	// and signal watchers, but do not publish it back.
	s.persist(snap)
	s.notify()
}

func (s *Store) commit(snap []Product) {
	s.persist(snap)
	s.publish(snap)
	s.notify()
}

func (s *Store) persist(snap []Product) {
	if err := s.snapshots.Save(context.Background(), snap); err != nil {
		s.log.Warn("snapshot save failed, continuing in memory", zap.Error(err))
	}
}

// Watch returns a coalescing signal channel that fires after every catalog
// change, local or synced in. Callers re-read GetAll and re-render.
func (s *Store) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.watchMu.Lock()
	id := s.watchSeq
	s.watchSeq++
	s.watchers[id] = ch
	s.watchMu.Unlock()

	return ch, func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
	}
}

func (s *Store) notify() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
