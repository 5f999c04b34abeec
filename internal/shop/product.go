package shop

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
)

func productEvent(kind types.MutationKind) func(types.Product) []publication {
	return func(types.Product) []publication {
		return []publication{{channel: types.ProductChannel, kind: kind}}
	}
}

func (s *Service) CreateProduct(ctx context.Context, in types.CreateProduct) (types.Product, error) {
	return run(ctx, s, mutation[types.Product]{
		op:     "createProduct",
		action: authz.CreateProduct,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateProduct(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.Product, error) {
			return tx.Products().Create(ctx, types.Product{
				Name:       in.Name,
				Price:      in.Price,
				InStock:    in.InStock,
				CategoryID: in.CategoryID,
			})
		},
		publish: productEvent(types.Created),
	})
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, patch types.ProductPatch) (types.Product, error) {
	var cur types.Product
	return run(ctx, s, mutation[types.Product]{
		op:     "updateProduct",
		action: authz.UpdateProduct,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateProduct(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Product, error) {
			return tx.Products().Update(ctx, patch.Apply(cur))
		},
		publish: productEvent(types.Updated),
	})
}

// DeleteProduct removes the product with its orders and reviews.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (types.Product, error) {
	return run(ctx, s, mutation[types.Product]{
		op:     "deleteProduct",
		action: authz.DeleteProduct,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			_, err := s.validator.DeleteProduct(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Product, error) {
			if err := productCascade(id).apply(ctx, tx, s.log); err != nil {
				return types.Product{}, err
			}
			return tx.Products().Delete(ctx, id)
		},
		publish: productEvent(types.Deleted),
	})
}
