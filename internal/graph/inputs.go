package graph

import (
	"github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"

	"github.com/TwigBush/shopgraph/internal/types"
)

// Field names match the schema case-insensitively.

type loginInput struct {
	Email    string
	Password string
}

type createUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int32
	Role     *string
}

func (in createUserInput) domain() types.CreateUser {
	return types.CreateUser{Name: in.Name, Email: in.Email, Password: in.Password, Age: intPtr(in.Age), Role: rolePtr(in.Role)}
}

type updateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int32
	Role     *string
}

func (in updateUserInput) domain() types.UserPatch {
	return types.UserPatch{Name: in.Name, Email: in.Email, Password: in.Password, Age: intPtr(in.Age), Role: rolePtr(in.Role)}
}

type createCategoryInput struct {
	Name        string
	Description *string
	Products    *[]graphql.ID
}

func (in createCategoryInput) domain() types.CreateCategory {
	out := types.CreateCategory{Name: in.Name, Description: in.Description}
	if in.Products != nil {
		for _, id := range *in.Products {
			out.Products = append(out.Products, parseID(id))
		}
	}
	return out
}

type updateCategoryInput struct {
	Name        *string
	Description *string
}

func (in updateCategoryInput) domain() types.CategoryPatch {
	return types.CategoryPatch{Name: in.Name, Description: in.Description}
}

type createProductInput struct {
	Name       string
	Price      float64
	InStock    bool
	CategoryID graphql.ID
}

func (in createProductInput) domain() types.CreateProduct {
	return types.CreateProduct{Name: in.Name, Price: decimal.NewFromFloat(in.Price), InStock: in.InStock, CategoryID: parseID(in.CategoryID)}
}

type updateProductInput struct {
	Name       *string
	Price      *float64
	InStock    *bool
	CategoryID *graphql.ID
}

func (in updateProductInput) domain() types.ProductPatch {
	return types.ProductPatch{Name: in.Name, Price: money(in.Price), InStock: in.InStock, CategoryID: idPtr(in.CategoryID)}
}

type createOrderInput struct {
	TotalAmount float64
	Status      string
	OrderDate   string
	UserID      graphql.ID
	ProductID   graphql.ID
	CompanyID   graphql.ID
}

func (in createOrderInput) domain() types.CreateOrder {
	return types.CreateOrder{
		TotalAmount: decimal.NewFromFloat(in.TotalAmount),
		Status:      in.Status,
		OrderDate:   in.OrderDate,
		UserID:      parseID(in.UserID),
		ProductID:   parseID(in.ProductID),
		CompanyID:   parseID(in.CompanyID),
	}
}

type updateOrderInput struct {
	TotalAmount *float64
	Status      *string
	OrderDate   *string
	UserID      *graphql.ID
	ProductID   *graphql.ID
	CompanyID   *graphql.ID
}

func (in updateOrderInput) domain() types.OrderPatch {
	return types.OrderPatch{
		TotalAmount: money(in.TotalAmount),
		Status:      in.Status,
		OrderDate:   in.OrderDate,
		UserID:      idPtr(in.UserID),
		ProductID:   idPtr(in.ProductID),
		CompanyID:   idPtr(in.CompanyID),
	}
}

type createReviewInput struct {
	Rating    float64
	Comment   string
	ProductID graphql.ID
	UserID    *graphql.ID
}

func (in createReviewInput) domain() types.CreateReview {
	return types.CreateReview{Rating: in.Rating, Comment: in.Comment, ProductID: parseID(in.ProductID), UserID: idPtr(in.UserID)}
}

type updateReviewInput struct {
	Rating    *float64
	Comment   *string
	ProductID *graphql.ID
	UserID    *graphql.ID
}

func (in updateReviewInput) domain() types.ReviewPatch {
	return types.ReviewPatch{Rating: in.Rating, Comment: in.Comment, ProductID: idPtr(in.ProductID), UserID: idPtr(in.UserID)}
}

type createCompanyInput struct {
	Name     string
	Location string
	Industry string
}

func (in createCompanyInput) domain() types.CreateCompany {
	return types.CreateCompany{Name: in.Name, Location: in.Location, Industry: in.Industry}
}

type updateCompanyInput struct {
	Name     *string
	Location *string
	Industry *string
}

func (in updateCompanyInput) domain() types.CompanyPatch {
	return types.CompanyPatch{Name: in.Name, Location: in.Location, Industry: in.Industry}
}

func parseID(id graphql.ID) int64 { return types.ParseID(string(id)) }

func idPtr(id *graphql.ID) *int64 {
	if id == nil {
		return nil
	}
	v := parseID(*id)
	return &v
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func rolePtr(s *string) *types.Role {
	if s == nil {
		return nil
	}
	r := types.Role(*s)
	return &r
}

func money(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
