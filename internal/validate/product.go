package validate

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

func checkPrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return apperr.Invalidf("Price must not be negative")
	}
	return nil
}

func (v *Validator) CreateProduct(ctx context.Context, tx types.Tx, in types.CreateProduct) error {
	if err := ref(ctx, tx.Categories(), in.CategoryID, apperr.NotFound, "Category not found"); err != nil {
		return err
	}
	return checkPrice(in.Price)
}

// UpdateProduct returns the product as it is before the patch.
func (v *Validator) UpdateProduct(ctx context.Context, tx types.Tx, id int64, p types.ProductPatch) (types.Product, error) {
	cur, err := find(ctx, tx.Products(), id, "Product not found")
	if err != nil {
		return cur, err
	}
	if p.CategoryID != nil {
		if err := ref(ctx, tx.Categories(), *p.CategoryID, apperr.NotFound, "Invalid category ID"); err != nil {
			return cur, err
		}
	}
	if p.Price != nil {
		if err := checkPrice(*p.Price); err != nil {
			return cur, err
		}
	}
	return cur, nil
}

func (v *Validator) DeleteProduct(ctx context.Context, tx types.Tx, id int64) (types.Product, error) {
	return find(ctx, tx.Products(), id, "Product not found")
}
