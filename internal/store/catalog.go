package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/google/btree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/domain"
	"github.com/akash06959/agronova/internal/storage"
)

// ErrProductNotFound is returned by updates against an unknown local id.
var ErrProductNotFound = errors.New("product not found")

// MutationResult is the discriminated outcome of a catalog mutation.
// Success false with a non-zero Product means the change was applied
// locally only (offline-applied); the caller decides how to tell the user.
type MutationResult struct {
	Success bool
	Product domain.Product
	Err     error
}

// CategoryStat is one row of the per-category product count.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CatalogStore caches the normalized product list and serves the derived
// views the storefront renders. Mutations go backend-first and fall back to
// offline-applied local copies with synthesized ids.
//
// The slice is canonical and keeps backend list order; the btree is an id
// index over the same records for lookups.
type CatalogStore struct {
	mu       sync.RWMutex
	products []domain.Product
	index    *btree.BTreeG[domain.Product]
	loaded   bool
	loadErr  error

	client  *backend.Client
	storage *storage.Store
	bus     EventBus.Bus
	node    *snowflake.Node
	group   singleflight.Group
}

func productLess(a, b domain.Product) bool { return a.ID < b.ID }

// NewCatalogStore builds the store. It does not fetch; call Load.
func NewCatalogStore(client *backend.Client, st *storage.Store, bus EventBus.Bus, node *snowflake.Node) *CatalogStore {
	return &CatalogStore{
		client:  client,
		storage: st,
		bus:     bus,
		node:    node,
		index:   btree.NewG(2, productLess),
	}
}

// Load fetches and normalizes the product list. Concurrent callers share
// one in-flight fetch. A failed first load empties the catalog and sets
// the error flag; there is no bundled sample fallback. A failed re-load
// after a successful one keeps serving the cached catalog, so a transient
// backend blip during a refresh never blanks the storefront.
func (s *CatalogStore) Load(ctx context.Context) error {
	_, err, _ := s.group.Do("load", func() (interface{}, error) {
		raw, err := s.client.ListProducts(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			prevSuccess := s.loaded && s.loadErr == nil
			s.loaded = true
			if prevSuccess {
				zap.S().Warnf("catalog: refresh failed, keeping %d cached products: %v", len(s.products), err)
				return nil, err
			}
			zap.S().Errorf("catalog: load failed: %v", err)
			s.products = nil
			s.index = btree.NewG(2, productLess)
			s.loadErr = errors.New("failed to load products from server")
			return nil, err
		}
		s.loaded = true
		products := make([]domain.Product, 0, len(raw))
		index := btree.NewG(2, productLess)
		for _, r := range raw {
			p := domain.NormalizeProduct(r)
			products = append(products, p)
			index.ReplaceOrInsert(p)
		}
		s.products = products
		s.index = index
		s.loadErr = nil
		s.persistLocked()
		return nil, nil
	})
	return err
}

// Loaded reports whether an initial load has completed (even a failed one).
func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LoadError returns the sticky load failure, nil after a successful load.
func (s *CatalogStore) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// AddProduct creates a product backend-first. On backend failure the record
// is applied locally with a synthesized id and marked offline.
func (s *CatalogStore) AddProduct(ctx context.Context, p domain.Product) MutationResult {
	saved, err := s.client.CreateProduct(ctx, payloadOf(p))
	if err == nil {
		normalized := domain.NormalizeProduct(saved)
		s.appendProduct(normalized)
		return MutationResult{Success: true, Product: normalized}
	}

	zap.S().Warnf("catalog: create via backend failed, applying offline: %v", err)
	now := time.Now()
	p.ID = s.node.Generate().Int64()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Offline = true
	local := domain.NormalizeProduct(rawOf(p))
	s.appendProduct(local)
	return MutationResult{Success: false, Product: local, Err: err}
}

// UpdateProduct merges a partial patch over the existing record. Both the
// full-object and (id, patch) call shapes of the storefront converge here:
// pass the record's id and whatever fields changed.
func (s *CatalogStore) UpdateProduct(ctx context.Context, id int64, patch map[string]interface{}) MutationResult {
	s.mu.RLock()
	existing, ok := s.findLocked(id)
	s.mu.RUnlock()
	if !ok {
		return MutationResult{Success: false, Err: ErrProductNotFound}
	}

	merged := rawOf(existing)
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = id
	merged["updated_at"] = time.Now().Format(time.RFC3339)
	updated := domain.NormalizeProduct(merged)

	saved, err := s.client.UpdateProduct(ctx, id, payloadOf(updated))
	if err == nil {
		normalized := domain.NormalizeProduct(saved)
		s.replaceProduct(normalized)
		return MutationResult{Success: true, Product: normalized}
	}

	zap.S().Warnf("catalog: update via backend failed, applying offline: %v", err)
	updated.Offline = true
	s.replaceProduct(updated)
	return MutationResult{Success: false, Product: updated, Err: err}
}

// ReplaceProduct is the full-object update shape.
func (s *CatalogStore) ReplaceProduct(ctx context.Context, p domain.Product) MutationResult {
	return s.UpdateProduct(ctx, p.ID, rawOf(p))
}

// DeleteProduct removes a product backend-first; the local copy goes away
// either way, with Success reporting whether the backend agreed.
func (s *CatalogStore) DeleteProduct(ctx context.Context, id int64) MutationResult {
	err := s.client.DeleteProduct(ctx, id)
	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.index.Delete(domain.Product{ID: id})
	s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		zap.S().Warnf("catalog: delete via backend failed, removed locally: %v", err)
		return MutationResult{Success: false, Err: err}
	}
	return MutationResult{Success: true}
}

// Products returns a copy of every record including inactive ones.
func (s *CatalogStore) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

// ActiveProducts returns records with status active.
func (s *CatalogStore) ActiveProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedProducts returns active records flagged featured.
func (s *CatalogStore) FeaturedProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Featured && p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// ProductBySlug finds a record by slug. Slugs are expected unique; with
// backend duplicates the first match in list order wins.
func (s *CatalogStore) ProductBySlug(slug string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ProductByID finds a record by id.
func (s *CatalogStore) ProductByID(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// ProductsByCategory returns active records in a category.
func (s *CatalogStore) ProductsByCategory(category string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category && p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// SearchProducts matches a case-insensitive substring over name,
// description and tags of active records.
func (s *CatalogStore) SearchProducts(query string) []domain.Product {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if !p.IsActive() {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			tagsMatch(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out
}

// CategoryStats counts active products per category, sorted descending by
// count. The sort is stable: categories tied on count keep first-seen
// order.
func (s *CatalogStore) CategoryStats() []CategoryStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{}
	var order []string
	for _, p := range s.products {
		if !p.IsActive() {
			continue
		}
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}
	statsOut := make([]CategoryStat, 0, len(order))
	for _, cat := range order {
		statsOut = append(statsOut, CategoryStat{Category: cat, Count: counts[cat]})
	}
	sort.SliceStable(statsOut, func(i, j int) bool {
		return statsOut[i].Count > statsOut[j].Count
	})
	return statsOut
}

// UniqueCategories lists distinct categories of active products, ascending.
func (s *CatalogStore) UniqueCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if !p.IsActive() || p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func (s *CatalogStore) appendProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	s.index.ReplaceOrInsert(p)
	s.persistLocked()
}

func (s *CatalogStore) replaceProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			break
		}
	}
	s.index.ReplaceOrInsert(p)
	s.persistLocked()
}

func (s *CatalogStore) findLocked(id int64) (domain.Product, bool) {
	return s.index.Get(domain.Product{ID: id})
}

// persistLocked caches the normalized catalog. Callers hold the lock.
func (s *CatalogStore) persistLocked() {
	if len(s.products) == 0 {
		return
	}
	data, err := json.Marshal(s.products)
	if err != nil {
		zap.S().Warnf("catalog: marshal failed: %v", err)
		return
	}
	s.storage.Put(storage.KeyProducts, data)
	if s.bus != nil {
		s.bus.Publish(TopicCatalogChanged)
	}
}

func tagsMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	copy(out, in)
	return out
}

// payloadOf maps a product onto the writable backend fields.
func payloadOf(p domain.Product) backend.ProductPayload {
	return backend.ProductPayload{
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.Stock,
		Description:   p.Description,
		ImageURL:      p.Image,
	}
}

// rawOf round-trips a product through JSON into the loose map shape the
// normalizer consumes, so patches merge over every field uniformly.
func rawOf(p domain.Product) map[string]interface{} {
	data, err := json.Marshal(p)
	if err != nil {
		return map[string]interface{}{}
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]interface{}{}
	}
	return raw
}
