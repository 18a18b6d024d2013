package products

import (
	"context"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

type Repo struct {
	col  *jsonstore.Collection[Product]
	cats *jsonstore.Collection[string]
}

func NewRepo(s *jsonstore.Store) *Repo {
	return &Repo{
		col:  jsonstore.NewCollection[Product](s, "products"),
		cats: jsonstore.NewCollection[string](s, "categories"),
	}
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	_ = ctx
	return r.col.All()
}

func (r *Repo) Insert(ctx context.Context, p Product) error {
	_ = ctx
	return r.col.Append(p)
}

// Delete removes the product and returns it so the caller can clean up
// its media files.
func (r *Repo) Delete(ctx context.Context, id int64) (Product, error) {
	_ = ctx
	var removed Product
	err := r.col.Mutate(func(items []Product) ([]Product, error) {
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

func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	_ = ctx
	return r.cats.All()
}

func (r *Repo) AddCategory(ctx context.Context, name string) error {
	_ = ctx
	return r.cats.Mutate(func(items []string) ([]string, error) {
		for _, c := range items {
			if c == name {
				return items, nil // already there, keep idempotent
			}
		}
		return append(items, name), nil
	})
}

func (r *Repo) RemoveCategory(ctx context.Context, name string) error {
	_ = ctx
	return r.cats.Mutate(func(items []string) ([]string, error) {
		for i, c := range items {
			if c == name {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, jsonstore.ErrNotFound
	})
}
