package shop

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

func (s *Service) CreateCompany(ctx context.Context, in types.CreateCompany) (types.Company, error) {
	return run(ctx, s, mutation[types.Company]{
		op:     "createCompany",
		action: authz.CreateCompany,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			return s.validator.CreateCompany(ctx, tx, in)
		},
		write: func(ctx context.Context, tx types.Tx) (types.Company, error) {
			return tx.Companies().Create(ctx, types.Company{Name: in.Name, Location: in.Location, Industry: in.Industry})
		},
		unique: map[string]string{types.KeyCompanyName: validate.MsgCompanyNameTaken},
	})
}

func (s *Service) UpdateCompany(ctx context.Context, id int64, patch types.CompanyPatch) (types.Company, error) {
	var cur types.Company
	return run(ctx, s, mutation[types.Company]{
		op:     "updateCompany",
		action: authz.UpdateCompany,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) (err error) {
			cur, err = s.validator.UpdateCompany(ctx, tx, id, patch)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Company, error) {
			return tx.Companies().Update(ctx, patch.Apply(cur))
		},
		unique: map[string]string{types.KeyCompanyName: validate.MsgCompanyNameTaken},
	})
}

// DeleteCompany removes the company and its orders.
func (s *Service) DeleteCompany(ctx context.Context, id int64) (types.Company, error) {
	return run(ctx, s, mutation[types.Company]{
		op:     "deleteCompany",
		action: authz.DeleteCompany,
		validate: func(ctx context.Context, tx types.Tx, _ types.Principal) error {
			_, err := s.validator.DeleteCompany(ctx, tx, id)
			return err
		},
		write: func(ctx context.Context, tx types.Tx) (types.Company, error) {
			if err := companyCascade(id).apply(ctx, tx, s.log); err != nil {
				return types.Company{}, err
			}
			return tx.Companies().Delete(ctx, id)
		},
	})
}
