package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"golang.org/x/crypto/bcrypt"

	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/pubsub"
	"github.com/TwigBush/shopgraph/internal/seed"
	"github.com/TwigBush/shopgraph/internal/shop"
	"github.com/TwigBush/shopgraph/internal/store/memstore"
	"github.com/TwigBush/shopgraph/internal/types"
)

type env struct {
	svc    *shop.Service
	broker *pubsub.Broker
	schema *graphql.Schema
	http   http.Handler

	adminToken string // Sophia Carter
	userToken  string // Olivia Brown
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	pw := auth.Passwords{Cost: bcrypt.MinCost}
	d, err := seed.Demo()
	require.NoError(t, err)
	_, err = seed.Load(ctx, store, pw, d)
	require.NoError(t, err)

	tokens, err := auth.NewTokens(auth.TokenConfig{Secret: "graph-test"})
	require.NoError(t, err)
	broker := pubsub.NewBroker()
	svc := shop.New(shop.Deps{Store: store, Guard: tokens, Tokens: tokens, Passwords: pw, Events: broker})
	schema, err := NewSchema(svc, broker, Options{})
	require.NoError(t, err)

	e := &env{svc: svc, broker: broker, schema: schema}
	h := Handler(schema)
	e.http = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(auth.WithHeader(r.Context(), r.Header.Get("Authorization"))))
	})

	login := func(email, password string) string {
		a, err := svc.Login(ctx, email, password)
		require.NoError(t, err)
		return a.Token
	}
	e.adminToken = login("sophia.carter@test.com", "sophiacarter123")
	e.userToken = login("olivia.brown@test.com", "oliviabrown123")
	return e
}

type gqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *env) do(t *testing.T, token, query string, vars map[string]any) gqlResult {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.http.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out gqlResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func firstError(t *testing.T, r gqlResult) string {
	t.Helper()
	if len(r.Errors) == 0 {
		t.Fatalf("expected an error, got data %s", r.Data)
	}
	return r.Errors[0].Message
}

func TestSDLIsValid(t *testing.T) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL})
	require.NoError(t, err)

	var mutations []string
	for _, f := range s.Mutation.Fields {
		mutations = append(mutations, f.Name)
	}
	for _, kind := range []string{"User", "Category", "Product", "Order", "Review", "Company"} {
		for _, verb := range []string{"create", "update", "delete"} {
			assert.Contains(t, mutations, verb+kind)
		}
	}
	assert.Contains(t, mutations, "login")
	assert.Contains(t, mutations, "signup")
	assert.NotNil(t, s.Subscription.Fields.ForName("review").Arguments.ForName("productID"))
}

const createLaptop = `mutation {
  createProduct(data: {name: "Laptop", price: 1499.99, inStock: true, categoryID: 1}) {
    id name price inStock category { name }
  }
}`

func TestCreateProductOverHTTP(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, "Authentication required", firstError(t, e.do(t, "", createLaptop, nil)))
	assert.Equal(t, "Invalid token", firstError(t, e.do(t, "garbage", createLaptop, nil)))
	assert.Equal(t, "You do not have permission to create a product", firstError(t, e.do(t, e.userToken, createLaptop, nil)))

	missing := `mutation { createProduct(data: {name: "Laptop", price: 1499.99, inStock: true, categoryID: 999}) { id } }`
	assert.Equal(t, "Category not found", firstError(t, e.do(t, e.adminToken, missing, nil)))

	res := e.do(t, e.adminToken, createLaptop, nil)
	require.Empty(t, res.Errors)
	var p struct {
		ID       string
		Name     string
		Price    float64
		InStock  bool
		Category struct{ Name string }
	}
	require.NoError(t, json.Unmarshal(res.Data["createProduct"], &p))
	assert.Equal(t, "9", p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, 1499.99, p.Price)
	assert.Equal(t, "Electronics", p.Category.Name)
}

func TestLoginOverHTTP(t *testing.T) {
	e := newEnv(t)
	q := `mutation($email: String!, $password: String!) {
  login(data: {email: $email, password: $password}) { token user { name role } }
}`
	res := e.do(t, "", q, map[string]any{"email": "james.anderson@test.com", "password": "jamesanderson123"})
	require.Empty(t, res.Errors)
	var a struct {
		Token string
		User  struct{ Name, Role string }
	}
	require.NoError(t, json.Unmarshal(res.Data["login"], &a))
	assert.NotEmpty(t, a.Token)
	assert.Equal(t, "admin", a.User.Role)

	res = e.do(t, "", q, map[string]any{"email": "james.anderson@test.com", "password": "wrong"})
	assert.Equal(t, "Invalid email or password", firstError(t, res))
}

func TestProductsPageOverHTTP(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, "", `{ products { items { name } prevPage nextPage } }`, nil)
	require.Empty(t, res.Errors)
	var page struct {
		Items    []struct{ Name string }
		PrevPage *int
		NextPage *int
	}
	require.NoError(t, json.Unmarshal(res.Data["products"], &page))
	assert.Len(t, page.Items, 4)
	assert.Nil(t, page.PrevPage)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)

	res = e.do(t, "", `{ products(page: 1, limit: 10, minPrice: 100, search: "o") { items { name } } }`, nil)
	require.Empty(t, res.Errors)
	require.NoError(t, json.Unmarshal(res.Data["products"], &page))
	var names []string
	for _, it := range page.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Smartphone", "Office Chair", "Wireless Headphones", "Bookshelf"}, names)
}

func TestRelationsOverHTTP(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, "", `{ user(id: 3) { name orders { status product { name } company { name } } reviews { rating } } }`, nil)
	require.Empty(t, res.Errors)
	var u struct {
		Name   string
		Orders []struct {
			Status  string
			Product struct{ Name string }
			Company struct{ Name string }
		}
		Reviews []struct{ Rating float64 }
	}
	require.NoError(t, json.Unmarshal(res.Data["user"], &u))
	assert.Equal(t, "Olivia Brown", u.Name)
	require.Len(t, u.Orders, 1)
	assert.Equal(t, "Delivered", u.Orders[0].Status)
	assert.Equal(t, "Smartphone", u.Orders[0].Product.Name)
	assert.Equal(t, "InnoTech Ltd.", u.Orders[0].Company.Name)
	require.Len(t, u.Reviews, 1)
	assert.Equal(t, 4.5, u.Reviews[0].Rating)

	res = e.do(t, "", `{ company(id: 404) { name } }`, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, "null", string(res.Data["company"]))
}

func TestReviewFlowOverHTTP(t *testing.T) {
	e := newEnv(t)
	create := `mutation { createReview(data: {rating: 4, comment: "Solid", productID: 6}) { id userID } }`

	assert.Equal(t, "You do not have permission to create a review", firstError(t, e.do(t, e.adminToken, create, nil)))

	res := e.do(t, e.userToken, create, nil)
	require.Empty(t, res.Errors)
	var r struct{ ID, UserID string }
	require.NoError(t, json.Unmarshal(res.Data["createReview"], &r))
	assert.Equal(t, "3", r.UserID)

	assert.Equal(t, "You have already reviewed this product", firstError(t, e.do(t, e.userToken, create, nil)))

	bad := `mutation { updateReview(id: ` + r.ID + `, data: {rating: 9}) { id } }`
	assert.Equal(t, "Rating must be between 0 and 5", firstError(t, e.do(t, e.userToken, bad, nil)))
}

func TestCategoryConflictOverHTTP(t *testing.T) {
	e := newEnv(t)
	q := `mutation { createCategory(data: {name: "Home Decor", description: "Products for home"}) { id name } }`
	res := e.do(t, e.adminToken, q, nil)
	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"id":"6","name":"Home Decor"}`, string(res.Data["createCategory"]))
	assert.Equal(t, "Category name Home Decor already exists", firstError(t, e.do(t, e.adminToken, q, nil)))
}

func TestEveryGuardedMutationNeedsCredential(t *testing.T) {
	e := newEnv(t)
	for name, q := range map[string]string{
		"createUser":    `mutation { createUser(data: {name: "x", email: "x@y.z", password: "abc123"}) { id } }`,
		"updateUser":    `mutation { updateUser(id: 3, data: {name: "x"}) { id } }`,
		"deleteUser":    `mutation { deleteUser(id: 3) { id } }`,
		"createOrder":   `mutation { createOrder(data: {totalAmount: 1, status: "x", orderDate: "2024-01-01", userID: 3, productID: 1, companyID: 1}) { id } }`,
		"deleteOrder":   `mutation { deleteOrder(id: 1) { id } }`,
		"deleteReview":  `mutation { deleteReview(id: 1) { id } }`,
		"createCompany": `mutation { createCompany(data: {name: "x", location: "y", industry: "z"}) { id } }`,
		"updateCompany": `mutation { updateCompany(id: 1, data: {location: "z"}) { id } }`,
		"deleteProduct": `mutation { deleteProduct(id: 1) { id } }`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "Authentication required", firstError(t, e.do(t, "", q, nil)))
		})
	}
	ps, err := e.svc.Products(context.Background(), shop.ProductQuery{PageArgs: shop.PageArgs{Limit: 100}})
	require.NoError(t, err)
	assert.Len(t, ps.Items, 8)
	assert.Zero(t, e.broker.Subscribers(types.ProductChannel))
}
