package music

import (
	"context"
	"time"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

// Track is a background-music entry; URL points at the uploaded audio file.
type Track struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Repo struct {
	col *jsonstore.Collection[Track]
}

func NewRepo(s *jsonstore.Store) *Repo {
	return &Repo{col: jsonstore.NewCollection[Track](s, "music")}
}

func (r *Repo) List(ctx context.Context) ([]Track, error) {
	_ = ctx
	return r.col.All()
}

func (r *Repo) Insert(ctx context.Context, t Track) (Track, error) {
	_ = ctx
	if t.ID == 0 {
		t.ID = time.Now().UnixMilli()
	}
	return t, r.col.Append(t)
}

// Delete removes the track and returns it so the caller can drop the
// audio file from storage.
func (r *Repo) Delete(ctx context.Context, id int64) (Track, error) {
	_ = ctx
	var removed Track
	err := r.col.Mutate(func(items []Track) ([]Track, error) {
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
