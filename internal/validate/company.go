package validate

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

const msgCompanyNameRequired = "Company name is required"

func (v *Validator) CreateCompany(ctx context.Context, tx types.Tx, in types.CreateCompany) error {
	if err := required(in.Name, msgCompanyNameRequired); err != nil {
		return err
	}
	taken, err := exists(ctx, tx.Companies(), types.Filter{Name: in.Name})
	if err != nil {
		return err
	}
	if taken {
		return apperr.New(apperr.Conflict, MsgCompanyNameTaken)
	}
	return nil
}

func (v *Validator) UpdateCompany(ctx context.Context, tx types.Tx, id int64, p types.CompanyPatch) (types.Company, error) {
	cur, err := find(ctx, tx.Companies(), id, "Company not found")
	if err != nil {
		return cur, err
	}
	if p.Name != nil {
		if err := required(*p.Name, msgCompanyNameRequired); err != nil {
			return cur, err
		}
		taken, err := exists(ctx, tx.Companies(), types.Filter{Name: *p.Name, ExcludeID: id})
		if err != nil {
			return cur, err
		}
		if taken {
			return cur, apperr.New(apperr.Conflict, MsgCompanyNameTaken)
		}
	}
	return cur, nil
}

func (v *Validator) DeleteCompany(ctx context.Context, tx types.Tx, id int64) (types.Company, error) {
	return find(ctx, tx.Companies(), id, "Company not found")
}
