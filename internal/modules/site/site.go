// Package site holds the odds and ends of the storefront shell: the
// visitor counter and the backup archive.
package site

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
)

type Service struct {
	store *jsonstore.Store
	views *jsonstore.Scalar[int]

	uploadDir string
}

func NewService(store *jsonstore.Store, uploadDir string) *Service {
	return &Service{
		store:     store,
		views:     jsonstore.NewScalar[int](store, "views"),
		uploadDir: uploadDir,
	}
}

// BumpViews increments the visitor counter and returns the value before
// the bump, which is what the landing page displays.
func (s *Service) BumpViews(ctx context.Context) (int, error) {
	_ = ctx
	after, err := s.views.Update(func(v int) int { return v + 1 })
	if err != nil {
		return 0, err
	}
	return after - 1, nil
}

// WriteBackup streams a zip of the database file plus the uploads dir.
func (s *Service) WriteBackup(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)
	defer zw.Close()

	if err := addFile(zw, s.store.Path(), "db.json"); err != nil && !os.IsNotExist(err) {
		return err
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing uploaded yet
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(s.uploadDir, e.Name())
		if err := addFile(zw, src, "uploads/"+e.Name()); err != nil {
			return err
		}
	}
	return nil
}

func addFile(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}
