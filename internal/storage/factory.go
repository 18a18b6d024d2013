package storage

import (
	"context"
	"fmt"

	"github.com/dchamindu826/norcal-dubs/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

func FromConfig(ctx context.Context, cfg *config.Config) (FactoryResult, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return FactoryResult{Driver: "local", Storage: NewLocal(cfg.UploadDir, cfg.UploadURLPath)}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBase,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.StorageDriver)
	}
}
