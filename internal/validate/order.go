package validate

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

func (v *Validator) CreateOrder(ctx context.Context, tx types.Tx, in types.CreateOrder) error {
	if err := ref(ctx, tx.Users(), in.UserID, apperr.NotFound, "User not found"); err != nil {
		return err
	}
	prod, err := find(ctx, tx.Products(), in.ProductID, "Product not found")
	if err != nil {
		return err
	}
	if !prod.InStock {
		return apperr.NoStock()
	}
	if err := ref(ctx, tx.Companies(), in.CompanyID, apperr.NotFound, "Company not found"); err != nil {
		return err
	}
	return checkOrderDate(in.OrderDate)
}

func (v *Validator) UpdateOrder(ctx context.Context, tx types.Tx, id int64, p types.OrderPatch) (types.Order, error) {
	cur, err := find(ctx, tx.Orders(), id, "Order not found")
	if err != nil {
		return cur, err
	}
	if p.UserID != nil {
		if err := ref(ctx, tx.Users(), *p.UserID, apperr.NotFound, "Invalid user ID"); err != nil {
			return cur, err
		}
	}
	if p.ProductID != nil {
		if err := ref(ctx, tx.Products(), *p.ProductID, apperr.NotFound, "Invalid product ID"); err != nil {
			return cur, err
		}
	}
	if p.CompanyID != nil {
		if err := ref(ctx, tx.Companies(), *p.CompanyID, apperr.NotFound, "Invalid company ID"); err != nil {
			return cur, err
		}
	}
	if p.OrderDate != nil {
		if err := checkOrderDate(*p.OrderDate); err != nil {
			return cur, err
		}
	}
	return cur, nil
}

func (v *Validator) DeleteOrder(ctx context.Context, tx types.Tx, id int64) (types.Order, error) {
	return find(ctx, tx.Orders(), id, "Order not found")
}
