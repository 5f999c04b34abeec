package validate

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

// CreateReview expects UserID to be resolved; a nil UserID never matches a user.
func (v *Validator) CreateReview(ctx context.Context, tx types.Tx, in types.CreateReview) error {
	var userID int64
	if in.UserID != nil {
		userID = *in.UserID
	}
	if err := ref(ctx, tx.Products(), in.ProductID, apperr.NotFound, "Product not found"); err != nil {
		return err
	}
	if err := ref(ctx, tx.Users(), userID, apperr.NotFound, "User not found"); err != nil {
		return err
	}
	if err := checkRating(in.Rating); err != nil {
		return err
	}
	dup, err := exists(ctx, tx.Reviews(), types.Filter{UserID: userID, ProductID: in.ProductID})
	if err != nil {
		return err
	}
	if dup {
		return apperr.New(apperr.Conflict, MsgDuplicateReview)
	}
	return nil
}

func (v *Validator) UpdateReview(ctx context.Context, tx types.Tx, id int64, p types.ReviewPatch) (types.Review, error) {
	cur, err := find(ctx, tx.Reviews(), id, "Review not found")
	if err != nil {
		return cur, err
	}
	if p.Rating != nil {
		if err := checkRating(*p.Rating); err != nil {
			return cur, err
		}
	}
	if p.ProductID != nil {
		if err := ref(ctx, tx.Products(), *p.ProductID, apperr.NotFound, "Invalid product ID"); err != nil {
			return cur, err
		}
	}
	if p.UserID != nil {
		if err := ref(ctx, tx.Users(), *p.UserID, apperr.NotFound, "Invalid user ID"); err != nil {
			return cur, err
		}
	}
	next := p.Apply(cur)
	if next.UserID != cur.UserID || next.ProductID != cur.ProductID {
		dup, err := exists(ctx, tx.Reviews(), types.Filter{UserID: next.UserID, ProductID: next.ProductID, ExcludeID: id})
		if err != nil {
			return cur, err
		}
		if dup {
			return cur, apperr.New(apperr.Conflict, MsgDuplicateReview)
		}
	}
	return cur, nil
}

func (v *Validator) DeleteReview(ctx context.Context, tx types.Tx, id int64) (types.Review, error) {
	return find(ctx, tx.Reviews(), id, "Review not found")
}
