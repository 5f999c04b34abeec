package pgstore

import (
	"fmt"
	"strings"

	"github.com/TwigBush/shopgraph/internal/types"
)

// sqlArgs accumulates positional parameters while a statement is built.
type sqlArgs struct {
	vals []any
}

func (a *sqlArgs) add(v any) string {
	a.vals = append(a.vals, v)
	return fmt.Sprintf("$%d", len(a.vals))
}

// criteria names the filter fields a table understands.
type criteria struct {
	name, email, price bool

	category, user, product, company bool
}

func (c criteria) where(f types.Filter, a *sqlArgs) string {
	var conds []string
	if len(f.IDs) > 0 {
		conds = append(conds, "id = ANY("+a.add(f.IDs)+")")
	}
	if f.ExcludeID != 0 {
		conds = append(conds, "id <> "+a.add(f.ExcludeID))
	}
	if c.name && f.Name != "" {
		conds = append(conds, "lower(name) = lower("+a.add(f.Name)+")")
	}
	if c.name && f.Search != "" {
		conds = append(conds, "strpos(lower(name), lower("+a.add(f.Search)+")) > 0")
	}
	if c.email && f.Email != "" {
		conds = append(conds, "lower(email) = lower("+a.add(f.Email)+")")
	}
	if c.price && f.MinPrice != nil {
		conds = append(conds, "price >= "+a.add(f.MinPrice.String())+"::numeric")
	}
	if c.price && f.MaxPrice != nil {
		conds = append(conds, "price <= "+a.add(f.MaxPrice.String())+"::numeric")
	}
	ref := func(on bool, col string, id int64) {
		if on && id != 0 {
			conds = append(conds, col+" = "+a.add(id))
		}
	}
	ref(c.category, "category_id", f.CategoryID)
	ref(c.user, "user_id", f.UserID)
	ref(c.product, "product_id", f.ProductID)
	ref(c.company, "company_id", f.CompanyID)
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
