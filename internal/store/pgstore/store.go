// Package pgstore persists the catalogue in PostgreSQL through a pgx
// connection pool.
package pgstore

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TwigBush/shopgraph/internal/types"
)

//go:embed schema.sql
var schemaSQL string

type Options struct {
	MaxConns int32
	MinConns int32
}

// set is one view of every collection over a single querier.
type set struct {
	users      *collection[types.User]
	categories *collection[types.Category]
	products   *collection[types.Product]
	orders     *collection[types.Order]
	reviews    *collection[types.Review]
	companies  *collection[types.Company]
}

func newSet(q querier) *set {
	return &set{
		users:      &collection[types.User]{q: q, m: userMapping},
		categories: &collection[types.Category]{q: q, m: categoryMapping},
		products:   &collection[types.Product]{q: q, m: productMapping},
		orders:     &collection[types.Order]{q: q, m: orderMapping},
		reviews:    &collection[types.Review]{q: q, m: reviewMapping},
		companies:  &collection[types.Company]{q: q, m: companyMapping},
	}
}

func (s *set) Users() types.Collection[types.User]          { return s.users }
func (s *set) Categories() types.Collection[types.Category] { return s.categories }
func (s *set) Products() types.Collection[types.Product]    { return s.products }
func (s *set) Orders() types.Collection[types.Order]        { return s.orders }
func (s *set) Reviews() types.Collection[types.Review]      { return s.reviews }
func (s *set) Companies() types.Collection[types.Company]   { return s.companies }

type Store struct {
	*set
	pool *pgxpool.Pool
}

// Connect opens a pool for url and verifies it with a ping.
func Connect(ctx context.Context, url string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return New(pool), nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{set: newSet(pool), pool: pool}
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// WithTx runs fn in a read-committed transaction. The unique indexes back
// the checks the validators make inside fn.
func (s *Store) WithTx(ctx context.Context, fn func(tx types.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// no-op after a successful commit
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(newSet(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() { s.pool.Close() }
