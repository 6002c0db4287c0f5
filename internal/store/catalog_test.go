package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/domain"
)

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func seedCatalog(s *CatalogStore, products ...domain.Product) {
	s.products = products
	s.loaded = true
	for _, p := range products {
		s.index.ReplaceOrInsert(p)
	}
}

func catalogWithProducts(t *testing.T, products ...domain.Product) *CatalogStore {
	t.Helper()
	s := NewCatalogStore(nil, nil, nil, testNode(t))
	seedCatalog(s, products...)
	return s
}

func TestLoadNormalizesBackendRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 3, "name": "Vermicompost 5kg", "price": 100, "stock_quantity": 12, "image_url": "/img/v.png"},
			{"id": 4, "name": "Neem Oil", "price": 250, "status": "inactive"}
		]`))
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	require.NoError(t, s.Load(context.Background()))
	require.True(t, s.Loaded())
	require.NoError(t, s.LoadError())

	products := s.Products()
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "vermicompost-5kg", p.Slug)
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, "/img/v.png", p.Image)
	assert.Equal(t, 130.0, p.OriginalPrice)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, domain.ProductActive, p.Status)

	// Inactive records load but stay off the storefront views.
	assert.Len(t, s.ActiveProducts(), 1)
}

func TestLoadFailureEmptiesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	require.Error(t, s.Load(context.Background()))

	assert.True(t, s.Loaded())
	require.Error(t, s.LoadError())
	assert.Equal(t, "failed to load products from server", s.LoadError().Error())
	assert.Empty(t, s.Products())
}

func TestRefreshFailureKeepsCachedCatalog(t *testing.T) {
	var failing bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			http.Error(w, `{"detail":"down"}`, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Compost", "price": 100}]`))
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Products(), 1)

	// A failed refresh reports the error but keeps serving the cache.
	failing = true
	require.Error(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 1)
	assert.NoError(t, s.LoadError())
	_, ok := s.ProductByID(1)
	assert.True(t, ok)

	// A later successful refresh replaces the cache.
	failing = false
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 1)
}

func TestRepeatedFirstLoadFailureStaysEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	require.Error(t, s.Load(context.Background()))
	require.Error(t, s.Load(context.Background()))
	assert.Empty(t, s.Products())
	assert.Error(t, s.LoadError())
}

func TestAddProductOfflineFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	res := s.AddProduct(context.Background(), domain.Product{Name: "Coco Peat", Price: 60, Category: "Soil"})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	assert.True(t, res.Product.Offline)
	assert.NotZero(t, res.Product.ID)
	assert.Equal(t, "coco-peat", res.Product.Slug)

	// The record is applied locally despite the backend failure.
	got, ok := s.ProductByID(res.Product.ID)
	require.True(t, ok)
	assert.Equal(t, "Coco Peat", got.Name)
}

func TestUpdateProductOfflineFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	seedCatalog(s, domain.Product{ID: 5, Name: "Old Name", Slug: "old-name", Price: 100, Status: domain.ProductActive})

	res := s.UpdateProduct(context.Background(), 5, map[string]interface{}{"price": 120})

	assert.False(t, res.Success)
	assert.True(t, res.Product.Offline)
	assert.Equal(t, 120.0, res.Product.Price)

	got, ok := s.ProductByID(5)
	require.True(t, ok)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, "Old Name", got.Name, "untouched fields survive the patch")
}

func TestUpdateProductUnknownID(t *testing.T) {
	s := catalogWithProducts(t)
	res := s.UpdateProduct(context.Background(), 404, map[string]interface{}{"price": 1})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrProductNotFound)
}

func TestDeleteProductRemovesLocallyOnBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewCatalogStore(backend.New(srv.URL), nil, nil, testNode(t))
	seedCatalog(s, domain.Product{ID: 9, Name: "Gone", Status: domain.ProductActive})

	res := s.DeleteProduct(context.Background(), 9)
	assert.False(t, res.Success)
	_, ok := s.ProductByID(9)
	assert.False(t, ok)
}

func TestSearchProductsIsCaseInsensitive(t *testing.T) {
	s := catalogWithProducts(t,
		domain.Product{ID: 1, Name: "Neem Oil", Description: "pest control", Status: domain.ProductActive},
		domain.Product{ID: 2, Name: "Compost", Tags: []string{"Organic"}, Status: domain.ProductActive},
		domain.Product{ID: 3, Name: "Organic Mix", Status: domain.ProductInactive},
	)

	assert.Len(t, s.SearchProducts("NEEM"), 1)
	assert.Len(t, s.SearchProducts("pest"), 1)
	names := func(ps []domain.Product) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	// Tag matches count; inactive records never do.
	assert.Equal(t, []string{"Compost"}, names(s.SearchProducts("organic")))
}

func TestProductBySlugFirstMatchWins(t *testing.T) {
	s := catalogWithProducts(t,
		domain.Product{ID: 1, Slug: "dup", Name: "First", Status: domain.ProductActive},
		domain.Product{ID: 2, Slug: "dup", Name: "Second", Status: domain.ProductActive},
	)
	p, ok := s.ProductBySlug("dup")
	require.True(t, ok)
	assert.Equal(t, "First", p.Name)

	_, ok = s.ProductBySlug("missing")
	assert.False(t, ok)
}

func TestCategoryStats(t *testing.T) {
	s := catalogWithProducts(t,
		domain.Product{ID: 1, Category: "Seeds", Status: domain.ProductActive},
		domain.Product{ID: 2, Category: "Tools", Status: domain.ProductActive},
		domain.Product{ID: 3, Category: "Tools", Status: domain.ProductActive},
		domain.Product{ID: 4, Category: "", Status: domain.ProductActive},
		domain.Product{ID: 5, Category: "Seeds", Status: domain.ProductInactive},
	)

	stats := s.CategoryStats()
	require.Len(t, stats, 3)
	assert.Equal(t, CategoryStat{Category: "Tools", Count: 2}, stats[0])
	// Tied counts keep first-seen order.
	assert.Equal(t, CategoryStat{Category: "Seeds", Count: 1}, stats[1])
	assert.Equal(t, CategoryStat{Category: "Uncategorized", Count: 1}, stats[2])
}

func TestUniqueCategoriesSorted(t *testing.T) {
	s := catalogWithProducts(t,
		domain.Product{ID: 1, Category: "Tools", Status: domain.ProductActive},
		domain.Product{ID: 2, Category: "Seeds", Status: domain.ProductActive},
		domain.Product{ID: 3, Category: "Tools", Status: domain.ProductActive},
		domain.Product{ID: 4, Category: "Hidden", Status: domain.ProductInactive},
	)
	assert.Equal(t, []string{"Seeds", "Tools"}, s.UniqueCategories())
}
