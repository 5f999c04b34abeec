package types

import "github.com/shopspring/decimal"

// Create inputs carry every required field. Patch inputs use nil for
// "not present"; only non-nil fields are applied.

type CreateUser struct {
	Name     string
	Email    string
	Password string
	Age      *int
	Role     *Role
}

type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	Role     *Role
}

type CreateCategory struct {
	Name        string
	Description *string
	Products    []int64
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type CreateProduct struct {
	Name       string
	Price      decimal.Decimal
	InStock    bool
	CategoryID int64
}

type ProductPatch struct {
	Name       *string
	Price      *decimal.Decimal
	InStock    *bool
	CategoryID *int64
}

type CreateOrder struct {
	TotalAmount decimal.Decimal
	Status      string
	OrderDate   string
	UserID      int64
	ProductID   int64
	CompanyID   int64
}

type OrderPatch struct {
	TotalAmount *decimal.Decimal
	Status      *string
	OrderDate   *string
	UserID      *int64
	ProductID   *int64
	CompanyID   *int64
}

type CreateReview struct {
	Rating    float64
	Comment   string
	ProductID int64
	UserID    *int64 // nil means the caller
}

type ReviewPatch struct {
	Rating    *float64
	Comment   *string
	ProductID *int64
	UserID    *int64
}

type CreateCompany struct {
	Name     string
	Location string
	Industry string
}

type CompanyPatch struct {
	Name     *string
	Location *string
	Industry *string
}

func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		age := *p.Age
		u.Age = &age
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	return c
}

func (p ProductPatch) Apply(v Product) Product {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.InStock != nil {
		v.InStock = *p.InStock
	}
	if p.CategoryID != nil {
		v.CategoryID = *p.CategoryID
	}
	return v
}

func (p OrderPatch) Apply(o Order) Order {
	if p.TotalAmount != nil {
		o.TotalAmount = *p.TotalAmount
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.OrderDate != nil {
		o.OrderDate = *p.OrderDate
	}
	if p.UserID != nil {
		o.UserID = *p.UserID
	}
	if p.ProductID != nil {
		o.ProductID = *p.ProductID
	}
	if p.CompanyID != nil {
		o.CompanyID = *p.CompanyID
	}
	return o
}

func (p ReviewPatch) Apply(r Review) Review {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
	if p.ProductID != nil {
		r.ProductID = *p.ProductID
	}
	if p.UserID != nil {
		r.UserID = *p.UserID
	}
	return r
}

func (p CompanyPatch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	return c
}
