package memstore

import (
	"context"
	"maps"
	"slices"

	"github.com/TwigBush/shopgraph/internal/types"
)

// schema describes how a table reads and writes an entity's key and how the
// entity-specific parts of a Filter apply to it.
type schema[T any] struct {
	id    func(T) int64
	setID func(*T, int64)
	match func(T, types.Filter) bool
}

// table is an unsynchronized collection. Callers hold Store.mu.
type table[T any] struct {
	rows map[int64]T
	next int64
	s    *schema[T]
}

func newTable[T any](s *schema[T]) *table[T] {
	return &table[T]{rows: make(map[int64]T), s: s}
}

func (t *table[T]) clone() *table[T] {
	return &table[T]{rows: maps.Clone(t.rows), next: t.next, s: t.s}
}

func (t *table[T]) matches(v T, f types.Filter) bool {
	id := t.s.id(v)
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, id) {
		return false
	}
	if f.ExcludeID != 0 && id == f.ExcludeID {
		return false
	}
	return t.s.match(v, f)
}

func (t *table[T]) selectRows(f types.Filter) []T {
	var out []T
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; t.matches(v, f) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) Find(_ context.Context, id int64) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		return v, types.ErrNotFound
	}
	return v, nil
}

func (t *table[T]) FindOne(_ context.Context, f types.Filter) (T, error) {
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		if v := t.rows[id]; t.matches(v, f) {
			return v, nil
		}
	}
	var zero T
	return zero, types.ErrNotFound
}

func (t *table[T]) List(_ context.Context, f types.Filter, p types.Page) ([]T, error) {
	rows := t.selectRows(f)
	if p.Offset >= len(rows) {
		return []T{}, nil
	}
	rows = rows[p.Offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows, nil
}

func (t *table[T]) Count(_ context.Context, f types.Filter) (int, error) {
	return len(t.selectRows(f)), nil
}

func (t *table[T]) Create(_ context.Context, v T) (T, error) {
	t.next++
	t.s.setID(&v, t.next)
	t.rows[t.next] = v
	return v, nil
}

func (t *table[T]) Update(_ context.Context, v T) (T, error) {
	id := t.s.id(v)
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, types.ErrNotFound
	}
	t.rows[id] = v
	return v, nil
}

func (t *table[T]) Delete(_ context.Context, id int64) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		return v, types.ErrNotFound
	}
	delete(t.rows, id)
	return v, nil
}

func (t *table[T]) DeleteWhere(_ context.Context, f types.Filter) (int, error) {
	n := 0
	for id, v := range t.rows {
		if t.matches(v, f) {
			delete(t.rows, id)
			n++
		}
	}
	return n, nil
}
