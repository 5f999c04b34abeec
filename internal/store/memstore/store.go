// Package memstore is the in-memory Store. A single RWMutex guards all
// tables; WithTx runs against a copy and swaps it in on success, so a failed
// unit of work leaves no trace.
package memstore

import (
	"context"
	"sync"

	"github.com/TwigBush/shopgraph/internal/types"
)

type dataset struct {
	users      *table[types.User]
	categories *table[types.Category]
	products   *table[types.Product]
	orders     *table[types.Order]
	reviews    *table[types.Review]
	companies  *table[types.Company]
}

func newDataset() *dataset {
	return &dataset{
		users:      newTable(users),
		categories: newTable(categories),
		products:   newTable(products),
		orders:     newTable(orders),
		reviews:    newTable(reviews),
		companies:  newTable(companies),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:      d.users.clone(),
		categories: d.categories.clone(),
		products:   d.products.clone(),
		orders:     d.orders.clone(),
		reviews:    d.reviews.clone(),
		companies:  d.companies.clone(),
	}
}

func (d *dataset) Users() types.Collection[types.User]          { return d.users }
func (d *dataset) Categories() types.Collection[types.Category] { return d.categories }
func (d *dataset) Products() types.Collection[types.Product]    { return d.products }
func (d *dataset) Orders() types.Collection[types.Order]        { return d.orders }
func (d *dataset) Reviews() types.Collection[types.Review]      { return d.reviews }
func (d *dataset) Companies() types.Collection[types.Company]   { return d.companies }

type Store struct {
	mu   sync.RWMutex
	data *dataset
}

func New() *Store { return &Store{data: newDataset()} }

// WithTx holds the write lock for the whole unit of work. fn must only use
// tx; calling back into the Store from fn deadlocks.
func (s *Store) WithTx(ctx context.Context, fn func(tx types.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) Close() {}

func (s *Store) Users() types.Collection[types.User] {
	return &locked[types.User]{s: s, pick: func(d *dataset) *table[types.User] { return d.users }}
}

func (s *Store) Categories() types.Collection[types.Category] {
	return &locked[types.Category]{s: s, pick: func(d *dataset) *table[types.Category] { return d.categories }}
}

func (s *Store) Products() types.Collection[types.Product] {
	return &locked[types.Product]{s: s, pick: func(d *dataset) *table[types.Product] { return d.products }}
}

func (s *Store) Orders() types.Collection[types.Order] {
	return &locked[types.Order]{s: s, pick: func(d *dataset) *table[types.Order] { return d.orders }}
}

func (s *Store) Reviews() types.Collection[types.Review] {
	return &locked[types.Review]{s: s, pick: func(d *dataset) *table[types.Review] { return d.reviews }}
}

func (s *Store) Companies() types.Collection[types.Company] {
	return &locked[types.Company]{s: s, pick: func(d *dataset) *table[types.Company] { return d.companies }}
}

// locked makes each call on a table atomic on its own.
type locked[T any] struct {
	s    *Store
	pick func(*dataset) *table[T]
}

func (l *locked[T]) read() (*table[T], func()) {
	l.s.mu.RLock()
	return l.pick(l.s.data), l.s.mu.RUnlock
}

func (l *locked[T]) write() (*table[T], func()) {
	l.s.mu.Lock()
	return l.pick(l.s.data), l.s.mu.Unlock
}

func (l *locked[T]) Find(ctx context.Context, id int64) (T, error) {
	t, done := l.read()
	defer done()
	return t.Find(ctx, id)
}

func (l *locked[T]) FindOne(ctx context.Context, f types.Filter) (T, error) {
	t, done := l.read()
	defer done()
	return t.FindOne(ctx, f)
}

func (l *locked[T]) List(ctx context.Context, f types.Filter, p types.Page) ([]T, error) {
	t, done := l.read()
	defer done()
	return t.List(ctx, f, p)
}

func (l *locked[T]) Count(ctx context.Context, f types.Filter) (int, error) {
	t, done := l.read()
	defer done()
	return t.Count(ctx, f)
}

func (l *locked[T]) Create(ctx context.Context, v T) (T, error) {
	t, done := l.write()
	defer done()
	return t.Create(ctx, v)
}

func (l *locked[T]) Update(ctx context.Context, v T) (T, error) {
	t, done := l.write()
	defer done()
	return t.Update(ctx, v)
}

func (l *locked[T]) Delete(ctx context.Context, id int64) (T, error) {
	t, done := l.write()
	defer done()
	return t.Delete(ctx, id)
}

func (l *locked[T]) DeleteWhere(ctx context.Context, f types.Filter) (int, error) {
	t, done := l.write()
	defer done()
	return t.DeleteWhere(ctx, f)
}

var _ types.Store = (*Store)(nil)
