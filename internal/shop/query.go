package shop

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

// Page is one window of a paginated read. PrevPage and NextPage are nil at
// the edges.
type Page[T any] struct {
	Items    []T
	PrevPage *int
	NextPage *int
}

// PageArgs are the 1-based page and its size; zero means the default.
type PageArgs struct {
	Page  int
	Limit int
}

type ProductQuery struct {
	PageArgs
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type UserQuery struct {
	PageArgs
	Search string
}

func (s *Service) window(a PageArgs) (page int, p types.Page) {
	page, limit := a.Page, a.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.pageSize
	}
	return page, types.Page{Offset: (page - 1) * limit, Limit: limit}
}

func paginate[T any](ctx context.Context, c types.Collection[T], f types.Filter, page int, p types.Page) (Page[T], error) {
	items, err := c.List(ctx, f, p)
	if err != nil {
		return Page[T]{}, apperr.Wrap(err)
	}
	total, err := c.Count(ctx, f)
	if err != nil {
		return Page[T]{}, apperr.Wrap(err)
	}
	out := Page[T]{Items: items}
	if page > 1 {
		prev := page - 1
		out.PrevPage = &prev
	}
	if p.Offset+p.Limit < total {
		next := page + 1
		out.NextPage = &next
	}
	return out, nil
}

func (s *Service) Products(ctx context.Context, q ProductQuery) (Page[types.Product], error) {
	page, p := s.window(q.PageArgs)
	f := types.Filter{Search: q.Search, MinPrice: q.MinPrice, MaxPrice: q.MaxPrice}
	return paginate(ctx, s.store.Products(), f, page, p)
}

func (s *Service) Users(ctx context.Context, q UserQuery) (Page[types.User], error) {
	page, p := s.window(q.PageArgs)
	return paginate(ctx, s.store.Users(), types.Filter{Search: q.Search}, page, p)
}

func all[T any](ctx context.Context, c types.Collection[T], f types.Filter) ([]T, error) {
	v, err := c.List(ctx, f, types.Page{})
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return v, nil
}

func (s *Service) Categories(ctx context.Context) ([]types.Category, error) {
	return all(ctx, s.store.Categories(), types.Filter{})
}

func (s *Service) Orders(ctx context.Context) ([]types.Order, error) {
	return all(ctx, s.store.Orders(), types.Filter{})
}

func (s *Service) Reviews(ctx context.Context) ([]types.Review, error) {
	return all(ctx, s.store.Reviews(), types.Filter{})
}

func (s *Service) Companies(ctx context.Context) ([]types.Company, error) {
	return all(ctx, s.store.Companies(), types.Filter{})
}

// lookup returns nil for a missing row.
func lookup[T any](ctx context.Context, c types.Collection[T], id int64) (*T, error) {
	if id <= 0 {
		return nil, nil
	}
	v, err := c.Find(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return &v, nil
}

func (s *Service) Product(ctx context.Context, id int64) (*types.Product, error) {
	return lookup(ctx, s.store.Products(), id)
}

func (s *Service) Category(ctx context.Context, id int64) (*types.Category, error) {
	return lookup(ctx, s.store.Categories(), id)
}

func (s *Service) User(ctx context.Context, id int64) (*types.User, error) {
	return lookup(ctx, s.store.Users(), id)
}

func (s *Service) Order(ctx context.Context, id int64) (*types.Order, error) {
	return lookup(ctx, s.store.Orders(), id)
}

func (s *Service) Review(ctx context.Context, id int64) (*types.Review, error) {
	return lookup(ctx, s.store.Reviews(), id)
}

func (s *Service) Company(ctx context.Context, id int64) (*types.Company, error) {
	return lookup(ctx, s.store.Companies(), id)
}

// Relationship reads.

func (s *Service) ProductsInCategory(ctx context.Context, categoryID int64) ([]types.Product, error) {
	return all(ctx, s.store.Products(), types.Filter{CategoryID: categoryID})
}

func (s *Service) OrdersFor(ctx context.Context, f types.Filter) ([]types.Order, error) {
	if f.Empty() {
		return nil, nil
	}
	return all(ctx, s.store.Orders(), f)
}

func (s *Service) ReviewsFor(ctx context.Context, f types.Filter) ([]types.Review, error) {
	if f.Empty() {
		return nil, nil
	}
	return all(ctx, s.store.Reviews(), f)
}

// RequireProduct fails with "Product not found" when id does not resolve.
// Review subscriptions use it before attaching.
func (s *Service) RequireProduct(ctx context.Context, id int64) error {
	p, err := s.Product(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFoundf("Product not found")
	}
	return nil
}
