package products

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
	"github.com/emberworks/storefront-backend/pkg/logger"
)

type fakeCache struct {
	entries map[string]string
	gets    int
	sets    int
	dels    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) CacheKey(parts ...string) string {
	return "sf:cache:" + strings.Join(parts, ":")
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	if value, ok := c.entries[key]; ok {
		return value, nil
	}
	return "", errors.New("cache miss")
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.entries[key] = value.(string)
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.dels++
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
}

func buildCatalogService(t *testing.T, cache *fakeCache) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupProductsTestDB(t))
	params := ServiceParams{Repo: repo, Logger: testLogger(t)}
	if cache != nil {
		params.Cache = cache
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceFeaturedUsesCache(t *testing.T) {
	cache := newFakeCache()
	svc, repo := buildCatalogService(t, cache)
	ctx := context.Background()

	seedProduct(t, repo, "Hoodie", "apparel", 5500, true)

	first, err := svc.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	// second call is served from the cache entry
	second, err := svc.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestServiceToggleFeaturedInvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc, repo := buildCatalogService(t, cache)
	ctx := context.Background()

	hoodie := seedProduct(t, repo, "Hoodie", "apparel", 5500, true)

	_, err := svc.ListFeatured(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cache.entries)

	require.NoError(t, svc.ToggleFeatured(ctx, hoodie.ID, false))
	assert.Empty(t, cache.entries)

	refreshed, err := svc.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Empty(t, refreshed)
}

func TestServiceCreateAndDelete(t *testing.T) {
	svc, _ := buildCatalogService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{
		Name:       "Poster",
		PriceCents: 1500,
		Category:   "decor",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poster", loaded.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceListByCategoryRequiresCategory(t *testing.T) {
	svc, _ := buildCatalogService(t, nil)

	_, err := svc.ListByCategory(context.Background(), "")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
