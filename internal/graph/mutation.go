package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/TwigBush/shopgraph/internal/shop"
)

type mutationResolver struct {
	svc *shop.Service
}

// entity turns a service result into a resolver, or nil on error.
func entity[T any, R any](svc *shop.Service, v T, err error, wrap func(*shop.Service, T) *R) (*R, error) {
	if err != nil {
		return nil, err
	}
	return wrap(svc, v), nil
}

func (m *mutationResolver) Login(ctx context.Context, args struct{ Data loginInput }) (*authPayloadResolver, error) {
	a, err := m.svc.Login(ctx, args.Data.Email, args.Data.Password)
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{m.svc, a}, nil
}

func (m *mutationResolver) Signup(ctx context.Context, args struct{ Data createUserInput }) (*authPayloadResolver, error) {
	a, err := m.svc.Signup(ctx, args.Data.domain())
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{m.svc, a}, nil
}

func (m *mutationResolver) CreateUser(ctx context.Context, args struct{ Data createUserInput }) (*userResolver, error) {
	v, err := m.svc.CreateUser(ctx, args.Data.domain())
	return entity(m.svc, v, err, newUser)
}

func (m *mutationResolver) UpdateUser(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateUserInput
}) (*userResolver, error) {
	v, err := m.svc.UpdateUser(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newUser)
}

func (m *mutationResolver) DeleteUser(ctx context.Context, args idArgs) (*userResolver, error) {
	v, err := m.svc.DeleteUser(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newUser)
}

func (m *mutationResolver) CreateCategory(ctx context.Context, args struct{ Data createCategoryInput }) (*categoryResolver, error) {
	v, err := m.svc.CreateCategory(ctx, args.Data.domain())
	return entity(m.svc, v, err, newCategory)
}

func (m *mutationResolver) UpdateCategory(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateCategoryInput
}) (*categoryResolver, error) {
	v, err := m.svc.UpdateCategory(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newCategory)
}

func (m *mutationResolver) DeleteCategory(ctx context.Context, args idArgs) (*categoryResolver, error) {
	v, err := m.svc.DeleteCategory(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newCategory)
}

func (m *mutationResolver) CreateProduct(ctx context.Context, args struct{ Data createProductInput }) (*productResolver, error) {
	v, err := m.svc.CreateProduct(ctx, args.Data.domain())
	return entity(m.svc, v, err, newProduct)
}

func (m *mutationResolver) UpdateProduct(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateProductInput
}) (*productResolver, error) {
	v, err := m.svc.UpdateProduct(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newProduct)
}

func (m *mutationResolver) DeleteProduct(ctx context.Context, args idArgs) (*productResolver, error) {
	v, err := m.svc.DeleteProduct(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newProduct)
}

func (m *mutationResolver) CreateOrder(ctx context.Context, args struct{ Data createOrderInput }) (*orderResolver, error) {
	v, err := m.svc.CreateOrder(ctx, args.Data.domain())
	return entity(m.svc, v, err, newOrder)
}

func (m *mutationResolver) UpdateOrder(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateOrderInput
}) (*orderResolver, error) {
	v, err := m.svc.UpdateOrder(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newOrder)
}

func (m *mutationResolver) DeleteOrder(ctx context.Context, args idArgs) (*orderResolver, error) {
	v, err := m.svc.DeleteOrder(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newOrder)
}

func (m *mutationResolver) CreateReview(ctx context.Context, args struct{ Data createReviewInput }) (*reviewResolver, error) {
	v, err := m.svc.CreateReview(ctx, args.Data.domain())
	return entity(m.svc, v, err, newReview)
}

func (m *mutationResolver) UpdateReview(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateReviewInput
}) (*reviewResolver, error) {
	v, err := m.svc.UpdateReview(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newReview)
}

func (m *mutationResolver) DeleteReview(ctx context.Context, args idArgs) (*reviewResolver, error) {
	v, err := m.svc.DeleteReview(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newReview)
}

func (m *mutationResolver) CreateCompany(ctx context.Context, args struct{ Data createCompanyInput }) (*companyResolver, error) {
	v, err := m.svc.CreateCompany(ctx, args.Data.domain())
	return entity(m.svc, v, err, newCompany)
}

func (m *mutationResolver) UpdateCompany(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateCompanyInput
}) (*companyResolver, error) {
	v, err := m.svc.UpdateCompany(ctx, parseID(args.ID), args.Data.domain())
	return entity(m.svc, v, err, newCompany)
}

func (m *mutationResolver) DeleteCompany(ctx context.Context, args idArgs) (*companyResolver, error) {
	v, err := m.svc.DeleteCompany(ctx, parseID(args.ID))
	return entity(m.svc, v, err, newCompany)
}
