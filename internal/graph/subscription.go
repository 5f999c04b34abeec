package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/TwigBush/shopgraph/internal/shop"
	"github.com/TwigBush/shopgraph/internal/types"
)

type subscriptionResolver struct {
	svc    *shop.Service
	events Subscriber
}

type payloadResolver[R any] struct {
	kind types.MutationKind
	data R
}

func (p *payloadResolver[R]) Mutation() string { return string(p.kind) }
func (p *payloadResolver[R]) Data() R          { return p.data }

// forward adapts a broker stream to resolvers. Events whose payload is not a
// T are skipped.
func forward[T any, R any](ctx context.Context, svc *shop.Service, src <-chan types.Event, wrap func(*shop.Service, T) R) <-chan *payloadResolver[R] {
	out := make(chan *payloadResolver[R])
	go func() {
		defer close(out)
		for ev := range src {
			v, ok := ev.Data.(T)
			if !ok {
				continue
			}
			select {
			case out <- &payloadResolver[R]{kind: ev.Mutation, data: wrap(svc, v)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *subscriptionResolver) Product(ctx context.Context) <-chan *payloadResolver[*productResolver] {
	return forward(ctx, s.svc, s.events.Subscribe(ctx, types.ProductChannel), newProduct)
}

func (s *subscriptionResolver) Order(ctx context.Context) <-chan *payloadResolver[*orderResolver] {
	return forward(ctx, s.svc, s.events.Subscribe(ctx, types.OrderChannel), newOrder)
}

func (s *subscriptionResolver) Category(ctx context.Context) <-chan *payloadResolver[*categoryResolver] {
	return forward(ctx, s.svc, s.events.Subscribe(ctx, types.CategoryChannel), newCategory)
}

// Review streams changes to one product's reviews. The product must exist
// when the subscription starts.
func (s *subscriptionResolver) Review(ctx context.Context, args struct{ ProductID graphql.ID }) (<-chan *payloadResolver[*reviewResolver], error) {
	id := parseID(args.ProductID)
	if err := s.svc.RequireProduct(ctx, id); err != nil {
		return nil, err
	}
	return forward(ctx, s.svc, s.events.Subscribe(ctx, types.ReviewChannel(id)), newReview), nil
}
