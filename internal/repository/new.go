package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/db"
	"github.com/debemdeboas/the-gallery/internal/util"
	"github.com/debemdeboas/the-gallery/internal/util/compression"
)

// New builds the backend selected by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	switch cfg.Type {
	case config.StorageMemory:
		repoLogger.Warn().Msg("Using in-memory storage, collections reset on restart")
		return NewMemoryRepository(), nil
	case config.StorageDiskv:
		path, err := util.ExpandPath(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewDiskvRepository(path)
	case config.StorageSQLite:
		path, err := util.ExpandPath(cfg.Path)
		if err != nil {
			return nil, err
		}
		compressor, err := compression.ByName(cfg.Compression)
		if err != nil {
			return nil, err
		}
		database := db.NewSQLite(path)
		if err := database.InitDB(); err != nil {
			return nil, err
		}
		return NewDBRepository(database, compressor), nil
	case config.StorageS3:
		return NewS3Repository(ctx, S3Options{
			Bucket:          cfg.Bucket,
			Prefix:          cfg.Prefix,
			Region:          cfg.Region,
			BaseEndpoint:    cfg.Endpoint,
			AccessKeyID:     os.Getenv(config.EnvS3AccessKeyID),
			AccessKeySecret: os.Getenv(config.EnvS3SecretAccessKey),
		})
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
