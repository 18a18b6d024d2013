package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dchamindu826/norcal-dubs/internal/shared/slug"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// objectKey builds "<slug>-<random>.<ext>" so admins can tell uploads
// apart in the bucket while collisions stay impossible.
func objectKey(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return slug.FromName(base) + "-" + uuid.NewString() + ext
}
