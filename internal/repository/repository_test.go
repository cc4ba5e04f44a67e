package repository

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
)

func TestDemoUserRepository(t *testing.T) {
	repo, err := NewDemoUserRepository("demo123", 4)
	require.NoError(t, err)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, " Manager@Slooze.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)
	assert.NoError(t, auth.ComparePassword(u.PasswordHash, "demo123"))

	u, err = repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStoreKeeper, u.Role)

	_, err = repo.GetByEmail(ctx, "nobody@slooze.com")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)
}

func TestProductRepositoryList(t *testing.T) {
	repo := NewMemoryProductRepository(DemoProducts()...)
	ctx := context.Background()

	items, total, err := repo.List(ctx, domain.ProductFilter{Category: "Grains"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	items, total, err = repo.List(ctx, domain.ProductFilter{Status: "Critical", Category: "All"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	items, total, err = repo.List(ctx, domain.ProductFilter{Search: "ETHIOPIA"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "3", items[0].ID)

	items, total, err = repo.List(ctx, domain.ProductFilter{Page: 3, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Len(t, items, 2)

	items, _, err = repo.List(ctx, domain.ProductFilter{Page: 9, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, page := range []int{math.MaxInt / 200, math.MaxInt / 2, math.MaxInt} {
		items, total, err = repo.List(ctx, domain.ProductFilter{Page: page, Limit: 200})
		require.NoError(t, err, "page %d", page)
		assert.Equal(t, 10, total)
		assert.Empty(t, items)
	}

	items, _, err = repo.List(ctx, domain.ProductFilter{Page: 1, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, items, 10)

	items, total, err = NewMemoryProductRepository().List(ctx, domain.ProductFilter{Page: 1, Limit: 4})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestProductRepositoryCRUD(t *testing.T) {
	repo := NewMemoryProductRepository()
	ctx := context.Background()

	p := &domain.Product{Name: "Barley", Category: "Grains", Stock: 10, Price: 99, Unit: "ton", Status: domain.StockStatusLowStock, Supplier: "X"}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	p.Stock = 20
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Stock)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), ErrNotFound)
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRevocationRepository(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	repo := NewRedisRevocationRepository(client, "")
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, srv.Exists("revoked:jti-1"))

	srv.FastForward(2 * time.Hour)
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	assert.False(t, srv.Exists("revoked:jti-2"))
	assert.Error(t, repo.Revoke(ctx, "", time.Now().Add(time.Hour)))
}

func TestRedisRevocationRepositoryUnavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	srv.Close()

	_, err := NewRedisRevocationRepository(client, "x:").IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestMemoryRevocationRepository(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRevocationRepository(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "a", now.Add(time.Hour)))
	revoked, _ := repo.IsRevoked(ctx, "a")
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = repo.IsRevoked(ctx, "a")
	assert.False(t, revoked)
}
