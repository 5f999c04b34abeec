package shop

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
)

func orderEvent(kind types.MutationKind) func(types.Order) []publication {
	return func(types.Order) []publication {
		return []publication{{channel: types.OrderChannel, kind: kind}}
	}
}

func (s *Service) CreateOrder(ctx context.Context, in types.CreateOrder) (types.Order, error) {
	return run(ctx, s, mutation[types.Order]{
		op:     "createOrder",
		action: authz.CreateOrder,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateOrder(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.Order, error) {
			return tx.Orders().Create(ctx, types.Order{
				TotalAmount: in.TotalAmount,
				Status:      in.Status,
				OrderDate:   in.OrderDate,
				UserID:      in.UserID,
				ProductID:   in.ProductID,
				CompanyID:   in.CompanyID,
			})
		},
		publish: orderEvent(types.Created),
	})
}

func (s *Service) UpdateOrder(ctx context.Context, id int64, patch types.OrderPatch) (types.Order, error) {
	var cur types.Order
	return run(ctx, s, mutation[types.Order]{
		op:     "updateOrder",
		action: authz.UpdateOrder,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateOrder(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Order, error) {
			return tx.Orders().Update(ctx, patch.Apply(cur))
		},
		publish: orderEvent(types.Updated),
	})
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) (types.Order, error) {
	return run(ctx, s, mutation[types.Order]{
		op:     "deleteOrder",
		action: authz.DeleteOrder,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			_, err := s.validator.DeleteOrder(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Order, error) {
			return tx.Orders().Delete(ctx, id)
		},
		publish: orderEvent(types.Deleted),
	})
}
