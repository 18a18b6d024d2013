package reviews

import (
	"context"
	"time"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

type Review struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

type Repo struct {
	col *jsonstore.Collection[Review]
}

func NewRepo(s *jsonstore.Store) *Repo {
	return &Repo{col: jsonstore.NewCollection[Review](s, "reviews")}
}

func (r *Repo) List(ctx context.Context) ([]Review, error) {
	_ = ctx
	return r.col.All()
}

func (r *Repo) Insert(ctx context.Context, rv Review) (Review, error) {
	_ = ctx
	if rv.ID == 0 {
		rv.ID = time.Now().UnixMilli()
	}
	if rv.Rating < 1 {
		rv.Rating = 1
	}
	if rv.Rating > 5 {
		rv.Rating = 5
	}
	if rv.Date == "" {
		rv.Date = time.Now().Format("1/2/2006")
	}
	return rv, r.col.Append(rv)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_ = ctx
	return r.col.Mutate(func(items []Review) ([]Review, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, jsonstore.ErrNotFound
	})
}
