package shop

import (
	"context"
	"slices"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

func categoryEvent(kind types.MutationKind) func(types.Category) []publication {
	return func(types.Category) []publication {
		return []publication{{channel: types.CategoryChannel, kind: kind}}
	}
}

// CreateCategory also moves any listed products into the new category.
func (s *Service) CreateCategory(ctx context.Context, in types.CreateCategory) (types.Category, error) {
	return run(ctx, s, mutation[types.Category]{
		op:     "createCategory",
		action: authz.CreateCategory,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateCategory(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.Category, error) {
			c, err := tx.Categories().Create(ctx, types.Category{Name: in.Name, Description: in.Description})
			if err != nil {
				return c, err
			}
			for _, pid := range slices.Compact(slices.Sorted(slices.Values(in.Products))) {
				p, err := tx.Products().Find(ctx, pid)
				if err != nil {
					return c, err
				}
				p.CategoryID = c.ID
				if _, err := tx.Products().Update(ctx, p); err != nil {
					return c, err
				}
			}
			return c, nil
		},
		publish: categoryEvent(types.Created),
		unique:  map[string]string{types.KeyCategoryName: validate.CategoryNameTaken(in.Name)},
	})
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, patch types.CategoryPatch) (types.Category, error) {
	var cur types.Category
	return run(ctx, s, mutation[types.Category]{
		op:     "updateCategory",
		action: authz.UpdateCategory,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateCategory(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Category, error) {
			return tx.Categories().Update(ctx, patch.Apply(cur))
		},
		publish: categoryEvent(types.Updated),
		unique:  map[string]string{types.KeyCategoryName: validate.MsgCategoryNameTaken},
	})
}

// DeleteCategory removes the category, its products and their orders and reviews.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (types.Category, error) {
	return run(ctx, s, mutation[types.Category]{
		op:     "deleteCategory",
		action: authz.DeleteCategory,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			_, err := s.validator.DeleteCategory(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Category, error) {
			plan, err := categoryCascade(ctx, tx, id)
			if err != nil {
				return types.Category{}, err
			}
			if err := plan.apply(ctx, tx, s.log); err != nil {
				return types.Category{}, err
			}
			return tx.Categories().Delete(ctx, id)
		},
		publish: categoryEvent(types.Deleted),
	})
}
