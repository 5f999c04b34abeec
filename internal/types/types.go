package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// Principal is the authenticated caller decoded from a verified credential.
type Principal struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash
	Age      *int   `json:"age,omitempty"`
	Role     Role   `json:"role"`
}

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	InStock    bool            `json:"inStock"`
	CategoryID int64           `json:"categoryID"`
}

type Order struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	OrderDate   string          `json:"orderDate"`
	UserID      int64           `json:"userID"`
	ProductID   int64           `json:"productID"`
	CompanyID   int64           `json:"companyID"`
}

type Review struct {
	ID        int64   `json:"id"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	ProductID int64   `json:"productID"`
	UserID    int64   `json:"userID"`
}

type Company struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Industry string `json:"industry"`
}

// ParseID normalizes an external identifier to a storage key. Anything that
// is not a positive integer maps to 0, which never matches a stored row.
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func FormatID(id int64) string { return strconv.FormatInt(id, 10) }
