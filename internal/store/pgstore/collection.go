package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TwigBush/shopgraph/internal/types"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type column struct {
	name string
	cast string // appended to the placeholder, e.g. "::text::numeric"
}

// mapping binds an entity type to its table.
type mapping[T any] struct {
	table   string
	selects string // id first, in scan order
	columns []column
	values  func(v T) []any // in columns order
	id      func(v T) int64
	scan    func(row pgx.Row) (T, error)
	filter  criteria
}

type collection[T any] struct {
	q querier
	m *mapping[T]
}

// uniqueKeys maps unique constraints in schema.sql to store keys.
var uniqueKeys = map[string]string{
	"users_email_key":          types.KeyUserEmail,
	"categories_name_key":      types.KeyCategoryName,
	"companies_name_key":       types.KeyCompanyName,
	"reviews_user_product_key": types.KeyReviewProduct,
}

// translate turns a unique violation (SQLSTATE 23505) into a DuplicateError.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		key, ok := uniqueKeys[pgErr.ConstraintName]
		if !ok {
			key = pgErr.ConstraintName
		}
		return &types.DuplicateError{Key: key}
	}
	return err
}

func (c *collection[T]) one(ctx context.Context, sql string, args ...any) (T, error) {
	v, err := c.m.scan(c.q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return v, types.ErrNotFound
	}
	if err != nil {
		return v, fmt.Errorf("%s: %w", c.m.table, translate(err))
	}
	return v, nil
}

func (c *collection[T]) Find(ctx context.Context, id int64) (T, error) {
	return c.one(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", c.m.selects, c.m.table), id)
}

func (c *collection[T]) FindOne(ctx context.Context, f types.Filter) (T, error) {
	var a sqlArgs
	where := c.m.filter.where(f, &a)
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT 1", c.m.selects, c.m.table, where)
	return c.one(ctx, sql, a.vals...)
}

func (c *collection[T]) List(ctx context.Context, f types.Filter, p types.Page) ([]T, error) {
	var a sqlArgs
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s ORDER BY id", c.m.selects, c.m.table, c.m.filter.where(f, &a))
	if p.Limit > 0 {
		b.WriteString(" LIMIT " + a.add(p.Limit))
	}
	if p.Offset > 0 {
		b.WriteString(" OFFSET " + a.add(p.Offset))
	}
	rows, err := c.q.Query(ctx, b.String(), a.vals...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.m.table, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return c.m.scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.m.table, err)
	}
	return out, nil
}

func (c *collection[T]) Count(ctx context.Context, f types.Filter) (int, error) {
	var a sqlArgs
	var n int
	sql := fmt.Sprintf("SELECT count(*) FROM %s%s", c.m.table, c.m.filter.where(f, &a))
	if err := c.q.QueryRow(ctx, sql, a.vals...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", c.m.table, err)
	}
	return n, nil
}

func (c *collection[T]) Create(ctx context.Context, v T) (T, error) {
	var a sqlArgs
	names := make([]string, len(c.m.columns))
	params := make([]string, len(c.m.columns))
	for i, val := range c.m.values(v) {
		names[i] = c.m.columns[i].name
		params[i] = a.add(val) + c.m.columns[i].cast
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		c.m.table, strings.Join(names, ", "), strings.Join(params, ", "), c.m.selects)
	return c.one(ctx, sql, a.vals...)
}

func (c *collection[T]) Update(ctx context.Context, v T) (T, error) {
	var a sqlArgs
	sets := make([]string, len(c.m.columns))
	for i, val := range c.m.values(v) {
		sets[i] = c.m.columns[i].name + " = " + a.add(val) + c.m.columns[i].cast
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		c.m.table, strings.Join(sets, ", "), a.add(c.m.id(v)), c.m.selects)
	return c.one(ctx, sql, a.vals...)
}

func (c *collection[T]) Delete(ctx context.Context, id int64) (T, error) {
	return c.one(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING %s", c.m.table, c.m.selects), id)
}

func (c *collection[T]) DeleteWhere(ctx context.Context, f types.Filter) (int, error) {
	var a sqlArgs
	tag, err := c.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s%s", c.m.table, c.m.filter.where(f, &a)), a.vals...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.m.table, err)
	}
	return int(tag.RowsAffected()), nil
}
