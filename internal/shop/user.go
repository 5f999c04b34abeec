package shop

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

// AuthPayload is what login and signup hand back.
type AuthPayload struct {
	Token string
	User  types.User
}

func (s *Service) newUser(ctx context.Context, tx types.Tx, in types.CreateUser) (types.User, error) {
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return types.User{}, err
	}
	role := types.RoleUser
	if in.Role != nil {
		role = *in.Role
	}
	return tx.Users().Create(ctx, types.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Age:      in.Age,
		Role:     role,
	})
}

// CreateUser is the admin variant of registration and may set any role.
func (s *Service) CreateUser(ctx context.Context, in types.CreateUser) (types.User, error) {
	return run(ctx, s, mutation[types.User]{
		op:     "createUser",
		action: authz.CreateUser,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateUser(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.User, error) {
			return s.newUser(ctx, tx, in)
		},
		unique: map[string]string{types.KeyUserEmail: validate.MsgEmailTaken},
	})
}

// Signup is open registration. The role is always user.
func (s *Service) Signup(ctx context.Context, in types.CreateUser) (AuthPayload, error) {
	role := types.RoleUser
	in.Role = &role
	u, err := run(ctx, s, mutation[types.User]{
		op: "signup",
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateUser(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.User, error) {
			return s.newUser(ctx, tx, in)
		},
		unique: map[string]string{types.KeyUserEmail: validate.MsgEmailTaken},
	})
	if err != nil {
		return AuthPayload{}, err
	}
	tok, err := s.tokens.Issue(types.Principal{ID: u.ID, Role: u.Role})
	if err != nil {
		return AuthPayload{}, apperr.Wrap(err)
	}
	return AuthPayload{Token: tok, User: u}, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, patch types.UserPatch) (types.User, error) {
	var cur types.User
	return run(ctx, s, mutation[types.User]{
		op:     "updateUser",
		action: authz.UpdateUser,
		owner:  ownerOf(types.Tx.Users, id, func(u types.User) int64 { return u.ID }),
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateUser(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.User, error) {
			next := patch.Apply(cur)
			if patch.Password != nil {
				hash, err := s.passwords.Hash(*patch.Password)
				if err != nil {
					return types.User{}, err
				}
				next.Password = hash
			}
			return tx.Users().Update(ctx, next)
		},
		unique: map[string]string{types.KeyUserEmail: validate.MsgEmailTakenByOther},
	})
}

// DeleteUser removes the user with their orders and reviews.
func (s *Service) DeleteUser(ctx context.Context, id int64) (types.User, error) {
	return run(ctx, s, mutation[types.User]{
		op:     "deleteUser",
		action: authz.DeleteUser,
		owner:  ownerOf(types.Tx.Users, id, func(u types.User) int64 { return u.ID }),
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			_, err := s.validator.DeleteUser(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.User, error) {
			if err := userCascade(id).apply(ctx, tx, s.log); err != nil {
				return types.User{}, err
			}
			return tx.Users().Delete(ctx, id)
		},
	})
}
