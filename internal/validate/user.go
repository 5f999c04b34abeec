package validate

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

const msgEmailRequired = "Email is required"

func (v *Validator) CreateUser(ctx context.Context, tx types.Tx, in types.CreateUser) error {
	if err := required(in.Email, msgEmailRequired); err != nil {
		return err
	}
	taken, err := exists(ctx, tx.Users(), types.Filter{Email: in.Email})
	if err != nil {
		return err
	}
	if taken {
		return apperr.New(apperr.Conflict, MsgEmailTaken)
	}
	if in.Role != nil {
		if err := checkRole(*in.Role); err != nil {
			return err
		}
	}
	return checkPassword(in.Password)
}

func (v *Validator) UpdateUser(ctx context.Context, tx types.Tx, id int64, p types.UserPatch) (types.User, error) {
	cur, err := find(ctx, tx.Users(), id, "User not found")
	if err != nil {
		return cur, err
	}
	if p.Role != nil {
		if err := checkRole(*p.Role); err != nil {
			return cur, err
		}
	}
	if p.Email != nil {
		if err := required(*p.Email, msgEmailRequired); err != nil {
			return cur, err
		}
		taken, err := exists(ctx, tx.Users(), types.Filter{Email: *p.Email, ExcludeID: id})
		if err != nil {
			return cur, err
		}
		if taken {
			return cur, apperr.New(apperr.Conflict, MsgEmailTakenByOther)
		}
	}
	if p.Password != nil {
		if err := checkPassword(*p.Password); err != nil {
			return cur, err
		}
		if v.passwords.Matches(cur.Password, *p.Password) {
			return cur, apperr.Invalidf("New password cannot be the same as the old password")
		}
	}
	return cur, nil
}

func (v *Validator) DeleteUser(ctx context.Context, tx types.Tx, id int64) (types.User, error) {
	return find(ctx, tx.Users(), id, "User not found")
}
