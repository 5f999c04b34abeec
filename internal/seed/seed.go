// Package seed loads the demo catalogue shipped with the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/TwigBush/shopgraph/internal/types"
)

//go:embed demo.yaml
var demo []byte

// Data is a seed document. Rows refer to each other by natural key:
// categories, products and companies by name, users by email.
type Data struct {
	Users []struct {
		Name     string     `yaml:"name"`
		Email    string     `yaml:"email"`
		Password string     `yaml:"password"`
		Age      *int       `yaml:"age"`
		Role     types.Role `yaml:"role"`
	} `yaml:"users"`
	Companies []struct {
		Name     string `yaml:"name"`
		Location string `yaml:"location"`
		Industry string `yaml:"industry"`
	} `yaml:"companies"`
	Categories []struct {
		Name        string  `yaml:"name"`
		Description *string `yaml:"description"`
	} `yaml:"categories"`
	Products []struct {
		Name     string `yaml:"name"`
		Price    string `yaml:"price"`
		InStock  bool   `yaml:"in_stock"`
		Category string `yaml:"category"`
	} `yaml:"products"`
	Orders []struct {
		Total   string `yaml:"total"`
		Status  string `yaml:"status"`
		Date    string `yaml:"date"`
		User    string `yaml:"user"`
		Product string `yaml:"product"`
		Company string `yaml:"company"`
	} `yaml:"orders"`
	Reviews []struct {
		Product string  `yaml:"product"`
		User    string  `yaml:"user"`
		Rating  float64 `yaml:"rating"`
		Comment string  `yaml:"comment"`
	} `yaml:"reviews"`
}

// Hasher turns a plaintext password into its stored form.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Counts reports how many rows of each kind a load created.
type Counts struct {
	Users, Companies, Categories, Products, Orders, Reviews int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d users, %d companies, %d categories, %d products, %d orders, %d reviews",
		c.Users, c.Companies, c.Categories, c.Products, c.Orders, c.Reviews)
}

// Demo returns the embedded data set.
func Demo() (*Data, error) { return Parse(demo) }

func Parse(b []byte) (*Data, error) {
	var d Data
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &d, nil
}

// Load inserts d in one unit of work. A dangling reference fails the whole load.
func Load(ctx context.Context, s types.Store, h Hasher, d *Data) (Counts, error) {
	var n Counts
	err := s.WithTx(ctx, func(tx types.Tx) error {
		n = Counts{}
		users := map[string]int64{}
		for _, u := range d.Users {
			hash, err := h.Hash(u.Password)
			if err != nil {
				return err
			}
			role := u.Role
			if role == "" {
				role = types.RoleUser
			}
			if !role.Valid() {
				return fmt.Errorf("user %s: invalid role %q", u.Email, role)
			}
			row, err := tx.Users().Create(ctx, types.User{Name: u.Name, Email: u.Email, Password: hash, Age: u.Age, Role: role})
			if err != nil {
				return fmt.Errorf("user %s: %w", u.Email, err)
			}
			users[u.Email] = row.ID
			n.Users++
		}

		companies := map[string]int64{}
		for _, c := range d.Companies {
			row, err := tx.Companies().Create(ctx, types.Company{Name: c.Name, Location: c.Location, Industry: c.Industry})
			if err != nil {
				return fmt.Errorf("company %s: %w", c.Name, err)
			}
			companies[c.Name] = row.ID
			n.Companies++
		}

		categories := map[string]int64{}
		for _, c := range d.Categories {
			row, err := tx.Categories().Create(ctx, types.Category{Name: c.Name, Description: c.Description})
			if err != nil {
				return fmt.Errorf("category %s: %w", c.Name, err)
			}
			categories[c.Name] = row.ID
			n.Categories++
		}

		products := map[string]int64{}
		for _, p := range d.Products {
			cat, ok := categories[p.Category]
			if !ok {
				return fmt.Errorf("product %s: unknown category %q", p.Name, p.Category)
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("product %s: %w", p.Name, err)
			}
			row, err := tx.Products().Create(ctx, types.Product{Name: p.Name, Price: price, InStock: p.InStock, CategoryID: cat})
			if err != nil {
				return fmt.Errorf("product %s: %w", p.Name, err)
			}
			products[p.Name] = row.ID
			n.Products++
		}

		for i, o := range d.Orders {
			uid, pid, cid := users[o.User], products[o.Product], companies[o.Company]
			if uid == 0 || pid == 0 || cid == 0 {
				return fmt.Errorf("order %d: unresolved user, product or company", i+1)
			}
			total, err := decimal.NewFromString(o.Total)
			if err != nil {
				return fmt.Errorf("order %d: %w", i+1, err)
			}
			if _, err := tx.Orders().Create(ctx, types.Order{
				TotalAmount: total, Status: o.Status, OrderDate: o.Date,
				UserID: uid, ProductID: pid, CompanyID: cid,
			}); err != nil {
				return fmt.Errorf("order %d: %w", i+1, err)
			}
			n.Orders++
		}

		for i, r := range d.Reviews {
			uid, pid := users[r.User], products[r.Product]
			if uid == 0 || pid == 0 {
				return fmt.Errorf("review %d: unresolved user or product", i+1)
			}
			if _, err := tx.Reviews().Create(ctx, types.Review{Rating: r.Rating, Comment: r.Comment, ProductID: pid, UserID: uid}); err != nil {
				return fmt.Errorf("review %d: %w", i+1, err)
			}
			n.Reviews++
		}
		return nil
	})
	return n, err
}

// Reset deletes every row, dependents first.
func Reset(ctx context.Context, s types.Store) error {
	return s.WithTx(ctx, func(tx types.Tx) error {
		all := types.Filter{}
		for _, del := range []func() (int, error){
			func() (int, error) { return tx.Reviews().DeleteWhere(ctx, all) },
			func() (int, error) { return tx.Orders().DeleteWhere(ctx, all) },
			func() (int, error) { return tx.Products().DeleteWhere(ctx, all) },
			func() (int, error) { return tx.Categories().DeleteWhere(ctx, all) },
			func() (int, error) { return tx.Companies().DeleteWhere(ctx, all) },
			func() (int, error) { return tx.Users().DeleteWhere(ctx, all) },
		} {
			if _, err := del(); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		return nil
	})
}
