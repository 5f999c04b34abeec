package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/TwigBush/shopgraph/internal/shop"
	"github.com/TwigBush/shopgraph/internal/types"
)

// Subscriber opens a stream of events on a named channel. The stream ends
// when ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) <-chan types.Event
}

// Resolver is the schema root. Query, Mutation and Subscription fields
// share names, so each operation type has its own resolver.
type Resolver struct {
	svc    *shop.Service
	events Subscriber
}

func NewResolver(svc *shop.Service, events Subscriber) *Resolver {
	return &Resolver{svc: svc, events: events}
}

func (r *Resolver) Query() *queryResolver { return &queryResolver{r.svc} }

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r.svc} }

func (r *Resolver) Subscription() *subscriptionResolver {
	return &subscriptionResolver{svc: r.svc, events: r.events}
}

type queryResolver struct {
	svc *shop.Service
}

func pageArgs(page, limit *int32) shop.PageArgs {
	var a shop.PageArgs
	if page != nil {
		a.Page = int(*page)
	}
	if limit != nil {
		a.Limit = int(*limit)
	}
	return a
}

func (q *queryResolver) Products(ctx context.Context, args struct {
	Page     *int32
	Limit    *int32
	Search   *string
	MinPrice *float64
	MaxPrice *float64
}) (*pageResolver[*productResolver], error) {
	in := shop.ProductQuery{PageArgs: pageArgs(args.Page, args.Limit), MinPrice: money(args.MinPrice), MaxPrice: money(args.MaxPrice)}
	if args.Search != nil {
		in.Search = *args.Search
	}
	p, err := q.svc.Products(ctx, in)
	if err != nil {
		return nil, err
	}
	return newPage(q.svc, p, newProduct), nil
}

func (q *queryResolver) Users(ctx context.Context, args struct {
	Page   *int32
	Limit  *int32
	Search *string
}) (*pageResolver[*userResolver], error) {
	in := shop.UserQuery{PageArgs: pageArgs(args.Page, args.Limit)}
	if args.Search != nil {
		in.Search = *args.Search
	}
	p, err := q.svc.Users(ctx, in)
	if err != nil {
		return nil, err
	}
	return newPage(q.svc, p, newUser), nil
}

func (q *queryResolver) Categories(ctx context.Context) ([]*categoryResolver, error) {
	v, err := q.svc.Categories(ctx)
	return wrapAll(q.svc, v, newCategory), err
}

func (q *queryResolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	v, err := q.svc.Orders(ctx)
	return wrapAll(q.svc, v, newOrder), err
}

func (q *queryResolver) Reviews(ctx context.Context) ([]*reviewResolver, error) {
	v, err := q.svc.Reviews(ctx)
	return wrapAll(q.svc, v, newReview), err
}

func (q *queryResolver) Companies(ctx context.Context) ([]*companyResolver, error) {
	v, err := q.svc.Companies(ctx)
	return wrapAll(q.svc, v, newCompany), err
}

type idArgs struct {
	ID graphql.ID
}

func (q *queryResolver) Product(ctx context.Context, args idArgs) (*productResolver, error) {
	v, err := q.svc.Product(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newProduct), err
}

func (q *queryResolver) Category(ctx context.Context, args idArgs) (*categoryResolver, error) {
	v, err := q.svc.Category(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newCategory), err
}

func (q *queryResolver) User(ctx context.Context, args idArgs) (*userResolver, error) {
	v, err := q.svc.User(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newUser), err
}

func (q *queryResolver) Order(ctx context.Context, args idArgs) (*orderResolver, error) {
	v, err := q.svc.Order(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newOrder), err
}

func (q *queryResolver) Review(ctx context.Context, args idArgs) (*reviewResolver, error) {
	v, err := q.svc.Review(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newReview), err
}

func (q *queryResolver) Company(ctx context.Context, args idArgs) (*companyResolver, error) {
	v, err := q.svc.Company(ctx, parseID(args.ID))
	return wrapOne(q.svc, v, newCompany), err
}
