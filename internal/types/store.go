package types

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Unique keys a store enforces on its own.
const (
	KeyUserEmail     = "users.email"
	KeyCategoryName  = "categories.name"
	KeyCompanyName   = "companies.name"
	KeyReviewProduct = "reviews.user_product"
)

// DuplicateError reports a write rejected by a unique key. It matches
// ErrDuplicate under errors.Is.
type DuplicateError struct {
	Key string
}

func (e *DuplicateError) Error() string { return "duplicate key " + e.Key }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Filter selects rows of a collection. Zero values are ignored; a criterion
// that does not apply to an entity kind is ignored by that kind.
type Filter struct {
	IDs        []int64 // id in set
	ExcludeID  int64   // id != ExcludeID
	Name       string  // case-insensitive equality
	Email      string
	Search     string // case-insensitive substring of name
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID int64
	UserID     int64
	ProductID  int64
	CompanyID  int64
}

// Empty reports whether f selects every row.
func (f Filter) Empty() bool {
	return len(f.IDs) == 0 && f.ExcludeID == 0 && f.Name == "" && f.Email == "" &&
		f.Search == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.CategoryID == 0 && f.UserID == 0 && f.ProductID == 0 && f.CompanyID == 0
}

// Page is an offset window; Limit 0 means unbounded. Rows are ordered by id.
type Page struct {
	Offset int
	Limit  int
}

// Collection is the persistence view of one entity kind.
type Collection[T any] interface {
	Find(ctx context.Context, id int64) (T, error)
	FindOne(ctx context.Context, f Filter) (T, error)
	List(ctx context.Context, f Filter, p Page) ([]T, error)
	Count(ctx context.Context, f Filter) (int, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, v T) (T, error)
	Delete(ctx context.Context, id int64) (T, error)
	DeleteWhere(ctx context.Context, f Filter) (int, error)
}

type Tx interface {
	Users() Collection[User]
	Categories() Collection[Category]
	Products() Collection[Product]
	Orders() Collection[Order]
	Reviews() Collection[Review]
	Companies() Collection[Company]
}

// Store is a Tx whose calls are individually atomic, plus a unit of work:
// WithTx commits when fn returns nil and discards every write otherwise.
type Store interface {
	Tx
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Close()
}
