package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/TwigBush/shopgraph/internal/shop"
	"github.com/TwigBush/shopgraph/internal/types"
)

func gqlID(id int64) graphql.ID { return graphql.ID(types.FormatID(id)) }

func wrapAll[T any, R any](svc *shop.Service, items []T, wrap func(*shop.Service, T) R) []R {
	out := make([]R, len(items))
	for i, v := range items {
		out[i] = wrap(svc, v)
	}
	return out
}

func wrapOne[T any, R any](svc *shop.Service, v *T, wrap func(*shop.Service, T) *R) *R {
	if v == nil {
		return nil
	}
	return wrap(svc, *v)
}

type userResolver struct {
	svc *shop.Service
	u   types.User
}

func newUser(svc *shop.Service, u types.User) *userResolver { return &userResolver{svc, u} }

func (r *userResolver) ID() graphql.ID { return gqlID(r.u.ID) }
func (r *userResolver) Name() string   { return r.u.Name }
func (r *userResolver) Email() string  { return r.u.Email }
func (r *userResolver) Role() string   { return string(r.u.Role) }

func (r *userResolver) Age() *int32 {
	if r.u.Age == nil {
		return nil
	}
	a := int32(*r.u.Age)
	return &a
}

func (r *userResolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	v, err := r.svc.OrdersFor(ctx, types.Filter{UserID: r.u.ID})
	return wrapAll(r.svc, v, newOrder), err
}

func (r *userResolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	v, err := r.svc.ReviewsFor(ctx, types.Filter{UserID: r.u.ID})
	return wrapAll(r.svc, v, newReview), err
}

type categoryResolver struct {
	svc *shop.Service
	c   types.Category
}

func newCategory(svc *shop.Service, c types.Category) *categoryResolver {
	return &categoryResolver{svc, c}
}

func (r *categoryResolver) ID() graphql.ID       { return gqlID(r.c.ID) }
func (r *categoryResolver) Name() string         { return r.c.Name }
func (r *categoryResolver) Description() *string { return r.c.Description }

func (r *categoryResolver) Products(ctx context.Context) ([]*productResolver, error) {
	v, err := r.svc.ProductsInCategory(ctx, r.c.ID)
	return wrapAll(r.svc, v, newProduct), err
}

type productResolver struct {
	svc *shop.Service
	p   types.Product
}

func newProduct(svc *shop.Service, p types.Product) *productResolver { return &productResolver{svc, p} }

func (r *productResolver) ID() graphql.ID         { return gqlID(r.p.ID) }
func (r *productResolver) Name() string           { return r.p.Name }
func (r *productResolver) Price() float64         { return r.p.Price.InexactFloat64() }
func (r *productResolver) InStock() bool          { return r.p.InStock }
func (r *productResolver) CategoryID() graphql.ID { return gqlID(r.p.CategoryID) }

func (r *productResolver) Category(ctx context.Context) (*categoryResolver, error) {
	c, err := r.svc.Category(ctx, r.p.CategoryID)
	return wrapOne(r.svc, c, newCategory), err
}

func (r *productResolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	v, err := r.svc.OrdersFor(ctx, types.Filter{ProductID: r.p.ID})
	return wrapAll(r.svc, v, newOrder), err
}

func (r *productResolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	v, err := r.svc.ReviewsFor(ctx, types.Filter{ProductID: r.p.ID})
	return wrapAll(r.svc, v, newReview), err
}

type orderResolver struct {
	svc *shop.Service
	o   types.Order
}

func newOrder(svc *shop.Service, o types.Order) *orderResolver { return &orderResolver{svc, o} }

func (r *orderResolver) ID() graphql.ID        { return gqlID(r.o.ID) }
func (r *orderResolver) TotalAmount() float64  { return r.o.TotalAmount.InexactFloat64() }
func (r *orderResolver) Status() string        { return r.o.Status }
func (r *orderResolver) OrderDate() string     { return r.o.OrderDate }
func (r *orderResolver) UserID() graphql.ID    { return gqlID(r.o.UserID) }
func (r *orderResolver) ProductID() graphql.ID { return gqlID(r.o.ProductID) }
func (r *orderResolver) CompanyID() graphql.ID { return gqlID(r.o.CompanyID) }

func (r *orderResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.User(ctx, r.o.UserID)
	return wrapOne(r.svc, u, newUser), err
}

func (r *orderResolver) Product(ctx context.Context) (*productResolver, error) {
	p, err := r.svc.Product(ctx, r.o.ProductID)
	return wrapOne(r.svc, p, newProduct), err
}

func (r *orderResolver) Company(ctx context.Context) (*companyResolver, error) {
	c, err := r.svc.Company(ctx, r.o.CompanyID)
	return wrapOne(r.svc, c, newCompany), err
}

type reviewResolver struct {
	svc *shop.Service
	r   types.Review
}

func newReview(svc *shop.Service, r types.Review) *reviewResolver { return &reviewResolver{svc, r} }

func (r *reviewResolver) ID() graphql.ID        { return gqlID(r.r.ID) }
func (r *reviewResolver) Rating() float64       { return r.r.Rating }
func (r *reviewResolver) Comment() string       { return r.r.Comment }
func (r *reviewResolver) ProductID() graphql.ID { return gqlID(r.r.ProductID) }
func (r *reviewResolver) UserID() graphql.ID    { return gqlID(r.r.UserID) }

func (r *reviewResolver) Product(ctx context.Context) (*productResolver, error) {
	p, err := r.svc.Product(ctx, r.r.ProductID)
	return wrapOne(r.svc, p, newProduct), err
}

func (r *reviewResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.User(ctx, r.r.UserID)
	return wrapOne(r.svc, u, newUser), err
}

type companyResolver struct {
	svc *shop.Service
	c   types.Company
}

func newCompany(svc *shop.Service, c types.Company) *companyResolver { return &companyResolver{svc, c} }

func (r *companyResolver) ID() graphql.ID   { return gqlID(r.c.ID) }
func (r *companyResolver) Name() string     { return r.c.Name }
func (r *companyResolver) Location() string { return r.c.Location }
func (r *companyResolver) Industry() string { return r.c.Industry }

func (r *companyResolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	v, err := r.svc.OrdersFor(ctx, types.Filter{CompanyID: r.c.ID})
	return wrapAll(r.svc, v, newOrder), err
}

type pageResolver[R any] struct {
	items []R
	prev  *int
	next  *int
}

func newPage[T any, R any](svc *shop.Service, p shop.Page[T], wrap func(*shop.Service, T) R) *pageResolver[R] {
	return &pageResolver[R]{items: wrapAll(svc, p.Items, wrap), prev: p.PrevPage, next: p.NextPage}
}

func (p *pageResolver[R]) Items() []R { return p.items }

func (p *pageResolver[R]) PrevPage() *int32 { return int32Ptr(p.prev) }

func (p *pageResolver[R]) NextPage() *int32 { return int32Ptr(p.next) }

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

type authPayloadResolver struct {
	svc *shop.Service
	a   shop.AuthPayload
}

func (r *authPayloadResolver) Token() string       { return r.a.Token }
func (r *authPayloadResolver) User() *userResolver { return newUser(r.svc, r.a.User) }
