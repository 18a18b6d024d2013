package orders

import (
	"context"
	"sort"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

type Repo struct {
	col *jsonstore.Collection[Order]
}

func NewRepo(s *jsonstore.Store) *Repo {
	return &Repo{col: jsonstore.NewCollection[Order](s, "orders")}
}

// List returns all orders newest first.
func (r *Repo) List(ctx context.Context) ([]Order, error) {
	_ = ctx
	items, err := r.col.All()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	_ = ctx
	items, err := r.col.All()
	if err != nil {
		return Order{}, err
	}
	for _, o := range items {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, jsonstore.ErrNotFound
}

func (r *Repo) Insert(ctx context.Context, o Order) error {
	_ = ctx
	return r.col.Append(o)
}

// Update applies fn to the matching order inside the store lock.
func (r *Repo) Update(ctx context.Context, id int64, fn func(*Order)) error {
	_ = ctx
	return r.col.Mutate(func(items []Order) ([]Order, error) {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				return items, nil
			}
		}
		return nil, jsonstore.ErrNotFound
	})
}

func (r *Repo) Delete(ctx context.Context, id int64) (Order, error) {
	_ = ctx
	var removed Order
	err := r.col.Mutate(func(items []Order) ([]Order, error) {
		for i := range items {
			if items[i].ID == id {
				removed = items[i]
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, jsonstore.ErrNotFound
	})
	return removed, err
}
