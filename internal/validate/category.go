package validate

import (
	"context"
	"slices"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

const msgCategoryNameRequired = "Category name is required"

func (v *Validator) CreateCategory(ctx context.Context, tx types.Tx, in types.CreateCategory) error {
	if len(in.Products) > 0 {
		ids := slices.Compact(slices.Sorted(slices.Values(in.Products)))
		n, err := tx.Products().Count(ctx, types.Filter{IDs: ids})
		if err != nil {
			return err
		}
		if n != len(ids) {
			return apperr.New(apperr.NotFound, "Invalid Product IDs given")
		}
	}
	if err := required(in.Name, msgCategoryNameRequired); err != nil {
		return err
	}
	taken, err := exists(ctx, tx.Categories(), types.Filter{Name: in.Name})
	if err != nil {
		return err
	}
	if taken {
		return apperr.New(apperr.Conflict, CategoryNameTaken(in.Name))
	}
	return nil
}

func (v *Validator) UpdateCategory(ctx context.Context, tx types.Tx, id int64, p types.CategoryPatch) (types.Category, error) {
	cur, err := find(ctx, tx.Categories(), id, "Category not found")
	if err != nil {
		return cur, err
	}
	if p.Name != nil {
		if err := required(*p.Name, msgCategoryNameRequired); err != nil {
			return cur, err
		}
		taken, err := exists(ctx, tx.Categories(), types.Filter{Name: *p.Name, ExcludeID: id})
		if err != nil {
			return cur, err
		}
		if taken {
			return cur, apperr.New(apperr.Conflict, MsgCategoryNameTaken)
		}
	}
	return cur, nil
}

func (v *Validator) DeleteCategory(ctx context.Context, tx types.Tx, id int64) (types.Category, error) {
	return find(ctx, tx.Categories(), id, "Category not found")
}
