package pgstore

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/TwigBush/shopgraph/internal/types"
)

// Money and dates travel as text so that no precision or zone is lost in
// the driver.
const (
	numeric = "::text::numeric"
	date    = "::text::date"
)

func money(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return d, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

var userMapping = &mapping[types.User]{
	table:   "users",
	selects: "id, name, email, password, age, role",
	columns: []column{{name: "name"}, {name: "email"}, {name: "password"}, {name: "age"}, {name: "role"}},
	values: func(v types.User) []any {
		return []any{v.Name, v.Email, v.Password, v.Age, string(v.Role)}
	},
	id: func(v types.User) int64 { return v.ID },
	scan: func(row pgx.Row) (types.User, error) {
		var u types.User
		var role string
		err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Age, &role)
		u.Role = types.Role(role)
		return u, err
	},
	filter: criteria{name: true, email: true},
}

var categoryMapping = &mapping[types.Category]{
	table:   "categories",
	selects: "id, name, description",
	columns: []column{{name: "name"}, {name: "description"}},
	values:  func(v types.Category) []any { return []any{v.Name, v.Description} },
	id:      func(v types.Category) int64 { return v.ID },
	scan: func(row pgx.Row) (types.Category, error) {
		var c types.Category
		err := row.Scan(&c.ID, &c.Name, &c.Description)
		return c, err
	},
	filter: criteria{name: true},
}

var productMapping = &mapping[types.Product]{
	table:   "products",
	selects: "id, name, price::text, in_stock, category_id",
	columns: []column{{name: "name"}, {name: "price", cast: numeric}, {name: "in_stock"}, {name: "category_id"}},
	values: func(v types.Product) []any {
		return []any{v.Name, v.Price.String(), v.InStock, v.CategoryID}
	},
	id: func(v types.Product) int64 { return v.ID },
	scan: func(row pgx.Row) (types.Product, error) {
		var p types.Product
		var price string
		if err := row.Scan(&p.ID, &p.Name, &price, &p.InStock, &p.CategoryID); err != nil {
			return p, err
		}
		var err error
		p.Price, err = money(price)
		return p, err
	},
	filter: criteria{name: true, price: true, category: true},
}

var orderMapping = &mapping[types.Order]{
	table:   "orders",
	selects: "id, total_amount::text, status, to_char(order_date, 'YYYY-MM-DD'), user_id, product_id, company_id",
	columns: []column{
		{name: "total_amount", cast: numeric}, {name: "status"}, {name: "order_date", cast: date},
		{name: "user_id"}, {name: "product_id"}, {name: "company_id"},
	},
	values: func(v types.Order) []any {
		return []any{v.TotalAmount.String(), v.Status, v.OrderDate, v.UserID, v.ProductID, v.CompanyID}
	},
	id: func(v types.Order) int64 { return v.ID },
	scan: func(row pgx.Row) (types.Order, error) {
		var o types.Order
		var total string
		if err := row.Scan(&o.ID, &total, &o.Status, &o.OrderDate, &o.UserID, &o.ProductID, &o.CompanyID); err != nil {
			return o, err
		}
		var err error
		o.TotalAmount, err = money(total)
		return o, err
	},
	filter: criteria{user: true, product: true, company: true},
}

var reviewMapping = &mapping[types.Review]{
	table:   "reviews",
	selects: "id, rating, comment, product_id, user_id",
	columns: []column{{name: "rating"}, {name: "comment"}, {name: "product_id"}, {name: "user_id"}},
	values: func(v types.Review) []any {
		return []any{v.Rating, v.Comment, v.ProductID, v.UserID}
	},
	id: func(v types.Review) int64 { return v.ID },
	scan: func(row pgx.Row) (types.Review, error) {
		var r types.Review
		err := row.Scan(&r.ID, &r.Rating, &r.Comment, &r.ProductID, &r.UserID)
		return r, err
	},
	filter: criteria{user: true, product: true},
}

var companyMapping = &mapping[types.Company]{
	table:   "companies",
	selects: "id, name, location, industry",
	columns: []column{{name: "name"}, {name: "location"}, {name: "industry"}},
	values:  func(v types.Company) []any { return []any{v.Name, v.Location, v.Industry} },
	id:      func(v types.Company) int64 { return v.ID },
	scan: func(row pgx.Row) (types.Company, error) {
		var c types.Company
		err := row.Scan(&c.ID, &c.Name, &c.Location, &c.Industry)
		return c, err
	},
	filter: criteria{name: true},
}
