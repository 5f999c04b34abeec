//go:build integration

package pgstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/TwigBush/shopgraph/internal/types"
)

func startPostgres(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("shopgraph"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	url, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	s, err := Connect(ctx, url, Options{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate is repeatable")
	return s
}

func TestPostgresRoundTrip(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	cat, err := s.Categories().Create(ctx, types.Category{Name: "Electronics"})
	require.NoError(t, err)
	assert.Nil(t, cat.Description)

	p, err := s.Products().Create(ctx, types.Product{
		Name: "Smartphone", Price: decimal.RequireFromString("999.99"), InStock: true, CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("999.99").Equal(p.Price))

	age := 30
	u, err := s.Users().Create(ctx, types.User{Name: "Alice", Email: "Alice@Example.com", Password: "x", Age: &age, Role: types.RoleUser})
	require.NoError(t, err)
	got, err := s.Users().FindOne(ctx, types.Filter{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, u, got)

	co, err := s.Companies().Create(ctx, types.Company{Name: "InnoTech Ltd.", Location: "Berlin", Industry: "Tech"})
	require.NoError(t, err)

	o, err := s.Orders().Create(ctx, types.Order{
		TotalAmount: decimal.RequireFromString("1999.98"), Status: "Pending", OrderDate: "2024-05-01",
		UserID: u.ID, ProductID: p.ID, CompanyID: co.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", o.OrderDate)

	o.Status = "Shipped"
	o, err = s.Orders().Update(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", o.Status)

	_, err = s.Reviews().Create(ctx, types.Review{Rating: 4.5, Comment: "Great", ProductID: p.ID, UserID: u.ID})
	require.NoError(t, err)
	_, err = s.Reviews().Create(ctx, types.Review{Rating: 1, Comment: "again", ProductID: p.ID, UserID: u.ID})
	assert.Error(t, err, "one review per user and product")

	_, err = s.Products().Find(ctx, 9999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresFiltersAndPages(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()
	cat, err := s.Categories().Create(ctx, types.Category{Name: "Gadgets"})
	require.NoError(t, err)
	for _, price := range []string{"10", "20", "30", "40", "50"} {
		_, err := s.Products().Create(ctx, types.Product{Name: "Gadget " + price, Price: decimal.RequireFromString(price), CategoryID: cat.ID})
		require.NoError(t, err)
	}

	lo, hi := decimal.NewFromInt(20), decimal.NewFromInt(40)
	page, err := s.Products().List(ctx, types.Filter{Search: "GADGET", MinPrice: &lo, MaxPrice: &hi}, types.Page{Offset: 1, Limit: 4})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Gadget 30", page[0].Name)

	n, err := s.Products().Count(ctx, types.Filter{CategoryID: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPostgresWithTxRollsBack(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx types.Tx) error {
		if _, err := tx.Companies().Create(ctx, types.Company{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	n, err := s.Companies().Count(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	err = s.WithTx(ctx, func(tx types.Tx) error {
		_, err := tx.Companies().Create(ctx, types.Company{Name: "Acme"})
		return err
	})
	require.NoError(t, err)
	_, err = s.Companies().FindOne(ctx, types.Filter{Name: "ACME"})
	assert.NoError(t, err)
}

func TestPostgresUniqueKeys(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	u, err := s.Users().Create(ctx, types.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: types.RoleUser})
	require.NoError(t, err)
	bob, err := s.Users().Create(ctx, types.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: types.RoleUser})
	require.NoError(t, err)
	cat, err := s.Categories().Create(ctx, types.Category{Name: "Electronics"})
	require.NoError(t, err)
	_, err = s.Companies().Create(ctx, types.Company{Name: "InnoTech Ltd."})
	require.NoError(t, err)
	p, err := s.Products().Create(ctx, types.Product{Name: "Smartphone", Price: decimal.NewFromInt(1), CategoryID: cat.ID})
	require.NoError(t, err)
	_, err = s.Reviews().Create(ctx, types.Review{Rating: 4, ProductID: p.ID, UserID: u.ID})
	require.NoError(t, err)

	dup := func(t *testing.T, err error, key string) {
		t.Helper()
		var d *types.DuplicateError
		require.ErrorAs(t, err, &d)
		assert.Equal(t, key, d.Key)
		assert.ErrorIs(t, err, types.ErrDuplicate)
	}

	_, err = s.Users().Create(ctx, types.User{Name: "Eve", Email: "ALICE@example.com", Password: "x", Role: types.RoleUser})
	dup(t, err, types.KeyUserEmail)
	bob.Email = "Alice@Example.com"
	_, err = s.Users().Update(ctx, bob)
	dup(t, err, types.KeyUserEmail)
	_, err = s.Categories().Create(ctx, types.Category{Name: "electronics"})
	dup(t, err, types.KeyCategoryName)
	_, err = s.Companies().Create(ctx, types.Company{Name: "INNOTECH LTD."})
	dup(t, err, types.KeyCompanyName)
	_, err = s.Reviews().Create(ctx, types.Review{Rating: 1, ProductID: p.ID, UserID: u.ID})
	dup(t, err, types.KeyReviewProduct)
}
