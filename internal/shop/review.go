package shop

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

func reviewOwner(id int64) func(context.Context, types.Tx) (*int64, error) {
	return ownerOf(types.Tx.Reviews, id, func(r types.Review) int64 { return r.UserID })
}

// CreateReview attributes the review to the caller unless a user id is given.
func (s *Service) CreateReview(ctx context.Context, in types.CreateReview) (types.Review, error) {
	return run(ctx, s, mutation[types.Review]{
		op:     "createReview",
		action: authz.CreateReview,
		validate: func(ctx context.Context, tx types.Tx, p types.Principal) error {
			if in.UserID == nil {
				uid := p.ID
				in.UserID = &uid
			}
			return s.validator.CreateReview(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.Review, error) {
			return tx.Reviews().Create(ctx, types.Review{
				Rating:    in.Rating,
				Comment:   in.Comment,
				ProductID: in.ProductID,
				UserID:    *in.UserID,
			})
		},
		publish: func(r types.Review) []publication {
			return []publication{{channel: types.ReviewChannel(r.ProductID), kind: types.Created}}
		},
		unique: map[string]string{types.KeyReviewProduct: validate.MsgDuplicateReview},
	})
}

// UpdateReview announces on the channel of the product the review belonged
// to before the update, where existing subscribers listen.
func (s *Service) UpdateReview(ctx context.Context, id int64, patch types.ReviewPatch) (types.Review, error) {
	var cur types.Review
	return run(ctx, s, mutation[types.Review]{
		op:     "updateReview",
		action: authz.UpdateReview,
		owner:  reviewOwner(id),
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateReview(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Review, error) {
			return tx.Reviews().Update(ctx, patch.Apply(cur))
		},
		publish: func(types.Review) []publication {
			return []publication{{channel: types.ReviewChannel(cur.ProductID), kind: types.Updated}}
		},
		unique: map[string]string{types.KeyReviewProduct: validate.MsgDuplicateReview},
	})
}

func (s *Service) DeleteReview(ctx context.Context, id int64) (types.Review, error) {
	var cur types.Review
	return run(ctx, s, mutation[types.Review]{
		op:     "deleteReview",
		action: authz.DeleteReview,
		owner:  reviewOwner(id),
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.DeleteReview(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Review, error) {
			return tx.Reviews().Delete(ctx, id)
		},
		publish: func(types.Review) []publication {
			return []publication{{channel: types.ReviewChannel(cur.ProductID), kind: types.Deleted}}
		},
	})
}
