package authz

import (
	"context"
	"fmt"

	"github.com/TwigBush/shopgraph/internal/types"
)

// Scope is the relation a principal must have to the target of an action.
type Scope int

const (
	AdminOnly Scope = iota
	SelfOrAdmin
	// UserOnly admits any authenticated non-admin. Admins are refused.
	UserOnly
)

type Action string

const (
	CreateProduct  Action = "createProduct"
	UpdateProduct  Action = "updateProduct"
	DeleteProduct  Action = "deleteProduct"
	CreateCategory Action = "createCategory"
	UpdateCategory Action = "updateCategory"
	DeleteCategory Action = "deleteCategory"
	CreateCompany  Action = "createCompany"
	UpdateCompany  Action = "updateCompany"
	DeleteCompany  Action = "deleteCompany"
	CreateOrder    Action = "createOrder"
	UpdateOrder    Action = "updateOrder"
	DeleteOrder    Action = "deleteOrder"
	CreateUser     Action = "createUser"
	UpdateUser     Action = "updateUser"
	DeleteUser     Action = "deleteUser"
	CreateReview   Action = "createReview"
	UpdateReview   Action = "updateReview"
	DeleteReview   Action = "deleteReview"
)

type Rule struct {
	Scope  Scope
	Phrase string // completes "You do not have permission to ..."
}

// Rules is the whole policy table.
var Rules = map[Action]Rule{
	CreateProduct:  {AdminOnly, "create a product"},
	UpdateProduct:  {AdminOnly, "update a product"},
	DeleteProduct:  {AdminOnly, "delete a product"},
	CreateCategory: {AdminOnly, "create a category"},
	UpdateCategory: {AdminOnly, "update a category"},
	DeleteCategory: {AdminOnly, "delete a category"},
	CreateCompany:  {AdminOnly, "create a company"},
	UpdateCompany:  {AdminOnly, "update a company"},
	DeleteCompany:  {AdminOnly, "delete a company"},
	CreateOrder:    {AdminOnly, "create an order"},
	UpdateOrder:    {AdminOnly, "update this order"},
	DeleteOrder:    {AdminOnly, "delete this order"},
	CreateUser:     {AdminOnly, "create a user"},
	UpdateUser:     {SelfOrAdmin, "update this user"},
	DeleteUser:     {SelfOrAdmin, "delete this user"},
	CreateReview:   {UserOnly, "create a review"},
	UpdateReview:   {SelfOrAdmin, "update this review"},
	DeleteReview:   {SelfOrAdmin, "delete this review"},
}

func (a Action) Phrase() string {
	if r, ok := Rules[a]; ok {
		return r.Phrase
	}
	return string(a)
}

// Policy evaluates Rules. It never returns an error; the signature matches
// Authorizer so other deciders can be swapped in.
type Policy struct{}

func NewPolicy() *Policy { return &Policy{} }

func (p *Policy) Check(_ context.Context, req Request) (Decision, error) {
	rule, ok := Rules[req.Action]
	if !ok {
		return Decision{Reason: fmt.Sprintf("unknown action %q", req.Action)}, nil
	}
	deny := Decision{Reason: "You do not have permission to " + rule.Phrase}
	sub := req.Subject

	switch rule.Scope {
	case AdminOnly:
		if sub.IsAdmin() {
			return Decision{Allowed: true}, nil
		}
	case SelfOrAdmin:
		if sub.IsAdmin() {
			return Decision{Allowed: true}, nil
		}
		if req.Owner != nil && *req.Owner == sub.ID {
			return Decision{Allowed: true}, nil
		}
	case UserOnly:
		if sub.Role == types.RoleUser {
			return Decision{Allowed: true}, nil
		}
	}
	return deny, nil
}
