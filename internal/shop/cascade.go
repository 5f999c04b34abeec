package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TwigBush/shopgraph/internal/types"
)

var errUnscoped = errors.New("cascade step has no filter")

// cascadeStep removes the dependents selected by filter from one collection.
type cascadeStep struct {
	what   string
	filter types.Filter
	del    func(ctx context.Context, tx types.Tx, f types.Filter) (int, error)
}

// cascadePlan is an ordered list of dependent deletes. It runs inside the
// unit of work of the primary delete, so either everything goes or nothing.
type cascadePlan []cascadeStep

func (p cascadePlan) apply(ctx context.Context, tx types.Tx, log *slog.Logger) error {
	for _, st := range p {
		if st.filter.Empty() {
			return fmt.Errorf("cascade %s: %w", st.what, errUnscoped)
		}
		n, err := st.del(ctx, tx, st.filter)
		if err != nil {
			return fmt.Errorf("cascade %s: %w", st.what, err)
		}
		log.Debug("cascade", "what", st.what, "removed", n)
	}
	return nil
}

func ordersWhere(f types.Filter) cascadeStep {
	return cascadeStep{what: "orders", filter: f, del: func(ctx context.Context, tx types.Tx, f types.Filter) (int, error) {
		return tx.Orders().DeleteWhere(ctx, f)
	}}
}

func reviewsWhere(f types.Filter) cascadeStep {
	return cascadeStep{what: "reviews", filter: f, del: func(ctx context.Context, tx types.Tx, f types.Filter) (int, error) {
		return tx.Reviews().DeleteWhere(ctx, f)
	}}
}

func productsWhere(f types.Filter) cascadeStep {
	return cascadeStep{what: "products", filter: f, del: func(ctx context.Context, tx types.Tx, f types.Filter) (int, error) {
		return tx.Products().DeleteWhere(ctx, f)
	}}
}

func productCascade(productID int64) cascadePlan {
	return cascadePlan{
		ordersWhere(types.Filter{ProductID: productID}),
		reviewsWhere(types.Filter{ProductID: productID}),
	}
}

// categoryCascade needs the category's current products to reach their
// orders and reviews.
func categoryCascade(ctx context.Context, tx types.Tx, categoryID int64) (cascadePlan, error) {
	prods, err := tx.Products().List(ctx, types.Filter{CategoryID: categoryID}, types.Page{})
	if err != nil {
		return nil, err
	}
	var plan cascadePlan
	for _, p := range prods {
		plan = append(plan, productCascade(p.ID)...)
	}
	return append(plan, productsWhere(types.Filter{CategoryID: categoryID})), nil
}

func userCascade(userID int64) cascadePlan {
	return cascadePlan{
		ordersWhere(types.Filter{UserID: userID}),
		reviewsWhere(types.Filter{UserID: userID}),
	}
}

func companyCascade(companyID int64) cascadePlan {
	return cascadePlan{ordersWhere(types.Filter{CompanyID: companyID})}
}
