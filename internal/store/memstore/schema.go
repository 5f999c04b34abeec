package memstore

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TwigBush/shopgraph/internal/types"
)

func nameMatches(name string, f types.Filter) bool {
	if f.Name != "" && !strings.EqualFold(name, f.Name) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func refMatches(want, got int64) bool { return want == 0 || want == got }

func priceMatches(p decimal.Decimal, f types.Filter) bool {
	if f.MinPrice != nil && p.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

var users = &schema[types.User]{
	id:    func(v types.User) int64 { return v.ID },
	setID: func(v *types.User, id int64) { v.ID = id },
	match: func(v types.User, f types.Filter) bool {
		if f.Email != "" && !strings.EqualFold(v.Email, f.Email) {
			return false
		}
		return nameMatches(v.Name, f)
	},
}

var categories = &schema[types.Category]{
	id:    func(v types.Category) int64 { return v.ID },
	setID: func(v *types.Category, id int64) { v.ID = id },
	match: func(v types.Category, f types.Filter) bool { return nameMatches(v.Name, f) },
}

var products = &schema[types.Product]{
	id:    func(v types.Product) int64 { return v.ID },
	setID: func(v *types.Product, id int64) { v.ID = id },
	match: func(v types.Product, f types.Filter) bool {
		return nameMatches(v.Name, f) && priceMatches(v.Price, f) && refMatches(f.CategoryID, v.CategoryID)
	},
}

var orders = &schema[types.Order]{
	id:    func(v types.Order) int64 { return v.ID },
	setID: func(v *types.Order, id int64) { v.ID = id },
	match: func(v types.Order, f types.Filter) bool {
		return refMatches(f.UserID, v.UserID) && refMatches(f.ProductID, v.ProductID) && refMatches(f.CompanyID, v.CompanyID)
	},
}

var reviews = &schema[types.Review]{
	id:    func(v types.Review) int64 { return v.ID },
	setID: func(v *types.Review, id int64) { v.ID = id },
	match: func(v types.Review, f types.Filter) bool {
		return refMatches(f.UserID, v.UserID) && refMatches(f.ProductID, v.ProductID)
	},
}

var companies = &schema[types.Company]{
	id:    func(v types.Company) int64 { return v.ID },
	setID: func(v *types.Company, id int64) { v.ID = id },
	match: func(v types.Company, f types.Filter) bool { return nameMatches(v.Name, f) },
}
