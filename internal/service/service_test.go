package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/repository"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

const testSecret = "service-test-secret-0123456789abcdef"

type recorder struct {
	events []events.Event
}

func (r *recorder) subscribe(d events.Dispatcher, types ...events.EventType) {
	for _, t := range types {
		d.Subscribe(t, func(_ context.Context, e events.Event) error {
			r.events = append(r.events, e)
			return nil
		})
	}
}

func (r *recorder) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type authFixture struct {
	svc         *AuthService
	revocations repository.RevocationRepository
	rec         *recorder
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users, err := repository.NewDemoUserRepository("demo123", bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager(testSecret)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	rec.subscribe(dispatcher, events.EventLoginSucceeded, events.EventLoginFailed, events.EventLogout)

	revocations := repository.NewMemoryRevocationRepository(time.Now)
	svc := NewAuthService(AuthDependencies{
		UserRepo:    users,
		Revocations: revocations,
		Tokens:      tokens,
		Events:      dispatcher,
	})
	return &authFixture{svc: svc, revocations: revocations, rec: rec}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "manager@slooze.com", "demo123", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, res.Identity.Role)
	assert.Equal(t, "John Manager", res.Identity.Name)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, res.Meta.IssuedAt.Add(auth.TokenTTL), res.Meta.ExpiresAt)

	res, err = f.svc.Login(ctx, "  storekeeper@slooze.com ", "demo123", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStoreKeeper, res.Identity.Role)

	assert.Equal(t, []events.EventType{events.EventLoginSucceeded, events.EventLoginSucceeded}, f.rec.types())
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "", "demo123", "")
	assert.Equal(t, 400, statusOf(t, err))
	_, err = f.svc.Login(ctx, "manager@slooze.com", "", "")
	assert.Equal(t, 400, statusOf(t, err))

	_, unknownErr := f.svc.Login(ctx, "nobody@slooze.com", "demo123", "")
	_, wrongErr := f.svc.Login(ctx, "manager@slooze.com", "wrong", "")
	assert.Equal(t, 401, statusOf(t, unknownErr))
	assert.Equal(t, 401, statusOf(t, wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	require.Len(t, f.rec.events, 2)
	reasons := []string{}
	for _, e := range f.rec.events {
		assert.Equal(t, events.EventLoginFailed, e.Type)
		reasons = append(reasons, e.Payload.(events.LoginFailedPayload).Reason)
	}
	assert.Equal(t, []string{"unknown_email", "bad_password"}, reasons)
}

func TestAuthService_LogoutRevokes(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "manager@slooze.com", "demo123", "")
	require.NoError(t, err)
	principal := &auth.Principal{Identity: res.Identity, TokenID: res.Meta.ID, ExpiresAt: res.Meta.ExpiresAt}

	require.NoError(t, f.svc.Logout(ctx, principal, ""))
	revoked, err := f.revocations.IsRevoked(ctx, res.Meta.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, f.svc.Logout(ctx, nil, ""))
	assert.Equal(t, events.EventLogout, f.rec.events[len(f.rec.events)-1].Type)
}

func TestAuthService_CurrentIdentity(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.CurrentIdentity(ctx, nil)
	assert.Equal(t, 401, statusOf(t, err))

	ghost := &auth.Principal{Identity: domain.Identity{ID: "99", Role: domain.RoleManager}}
	_, err = f.svc.CurrentIdentity(ctx, ghost)
	assert.Equal(t, 401, statusOf(t, err))

	keeper := &auth.Principal{Identity: domain.Identity{ID: "2", Email: "storekeeper@slooze.com", Role: domain.RoleStoreKeeper}}
	id, err := f.svc.CurrentIdentity(ctx, keeper)
	require.NoError(t, err)
	assert.Equal(t, keeper.Identity, id)

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func newProductService(t *testing.T) (*ProductService, *recorder) {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	rec.subscribe(dispatcher, events.EventProductChanged)
	return NewProductService(repository.NewMemoryProductRepository(repository.DemoProducts()...), dispatcher, nil), rec
}

func TestProductService_ListPaging(t *testing.T) {
	svc, _ := newProductService(t)

	page, err := svc.List(context.Background(), domain.ProductFilter{Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 4)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrev())

	page, err = svc.List(context.Background(), domain.ProductFilter{Page: 3, Limit: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext())

	page, err = svc.List(context.Background(), domain.ProductFilter{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, maxPageLimit, page.Limit)

	for _, p := range []int{11, math.MaxInt / 2, math.MaxInt} {
		page, err = svc.List(context.Background(), domain.ProductFilter{Page: p, Limit: 200})
		require.NoError(t, err, "page %d", p)
		assert.Empty(t, page.Items)
		assert.Equal(t, 10, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext())
		assert.LessOrEqual(t, page.Page, maxPage)
	}
}

func TestProductService_CreateUpdateDelete(t *testing.T) {
	svc, rec := newProductService(t)
	ctx := context.Background()
	actor := domain.Identity{ID: "2", Role: domain.RoleStoreKeeper}

	invalid := &domain.Product{Name: "Barley", Stock: -1}
	err := svc.Create(ctx, actor, invalid)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "category")
	assert.Contains(t, domainErr.Details, "stock")
	assert.Contains(t, domainErr.Details, "price")

	p := &domain.Product{Name: "Barley", Category: "Grains", Stock: 40, Price: 210, Unit: "tons", Supplier: "Plains Co"}
	require.NoError(t, svc.Create(ctx, actor, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.StockStatusInStock, p.Status)

	p.Status = domain.StockStatusLowStock
	require.NoError(t, svc.Update(ctx, actor, p))
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StockStatusLowStock, got.Status)

	p.Status = "Sold Out"
	assert.Equal(t, 400, statusOf(t, svc.Update(ctx, actor, p)))

	require.NoError(t, svc.Delete(ctx, actor, p.ID))
	assert.Equal(t, 404, statusOf(t, svc.Delete(ctx, actor, p.ID)))
	_, err = svc.Get(ctx, p.ID)
	assert.Equal(t, 404, statusOf(t, err))

	actions := []string{}
	for _, e := range rec.events {
		actions = append(actions, e.Payload.(events.ProductChangedPayload).Action)
	}
	assert.Equal(t, []string{"created", "updated", "deleted"}, actions)
}

func TestProductService_Stats(t *testing.T) {
	repo := repository.NewMemoryProductRepository(
		domain.Product{ID: "a", Name: "A", Stock: 10, Price: 2.5, Status: domain.StockStatusInStock},
		domain.Product{ID: "b", Name: "B", Stock: 4, Price: 10, Status: domain.StockStatusLowStock},
		domain.Product{ID: "c", Name: "C", Stock: 1, Price: 100, Status: domain.StockStatusCritical},
	)
	svc := NewProductService(repo, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStats{Total: 3, InStock: 1, LowStock: 1, Critical: 1, TotalValue: 165}, stats)
}

func TestProductService_ExportCSV(t *testing.T) {
	svc, _ := newProductService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "id", rows[0][0])
	for _, row := range rows {
		assert.Len(t, row, 9)
	}
}

func TestAuditService_LogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	ctx := context.Background()
	manager := domain.Identity{ID: "1", Email: "manager@slooze.com", Role: domain.RoleManager}
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventLoginSucceeded, events.ActorFromIdentity(manager, "10.0.0.1"), nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventTokenRejected, events.Actor{IP: "10.0.0.2"}, events.TokenRejectedPayload{Path: "/dashboard"})))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, string(events.EventLoginSucceeded), entries[0].Message)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, "1", entries[0].ContextMap()["user_id"])
	assert.Equal(t, "MANAGER", entries[0].ContextMap()["role"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "10.0.0.2", entries[1].ContextMap()["ip"])
	assert.NotContains(t, entries[1].ContextMap(), "user_id")
}
