package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/debemdeboas/the-gallery/internal/db"
	"github.com/debemdeboas/the-gallery/internal/util"
	"github.com/debemdeboas/the-gallery/internal/util/compression"
)

type DBRepository struct { // implements Repository
	db         db.DB
	compressor compression.Compressor
}

func NewDBRepository(db db.DB, compressor compression.Compressor) *DBRepository {
	if compressor == nil {
		compressor = compression.ZstdCompressor{}
	}
	return &DBRepository{
		db:         db,
		compressor: compressor,
	}
}

func (r *DBRepository) GetItem(ctx context.Context, key string) ([]byte, error) {
	var compressed []byte
	err := r.db.Get().QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&compressed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying %s: %w", key, err)
	}

	value, err := r.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing %s with %s: %w", key, r.compressor.Name(), err)
	}
	return value, nil
}

func (r *DBRepository) SetItem(ctx context.Context, key string, value []byte) error {
	compressed, err := r.compressor.Compress(value)
	if err != nil {
		return fmt.Errorf("error compressing content with %s: %w", r.compressor.Name(), err)
	}

	res, err := r.db.Get().ExecContext(ctx,
		`INSERT INTO storage (key, value, content_hash, modified_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, content_hash = excluded.content_hash, modified_at = excluded.modified_at`,
		key, compressed, util.ContentHash(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}

	repoLogger.Debug().Str("key", key).Str("codec", r.compressor.Name()).Int("bytes", len(value)).Int("stored", len(compressed)).Interface("result", res).Msg("Value saved")
	return nil
}

func (r *DBRepository) RemoveItem(ctx context.Context, key string) error {
	if _, err := r.db.Get().ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("error removing %s: %w", key, err)
	}
	return nil
}

func (r *DBRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.Get().QueryContext(ctx, `SELECT key FROM storage ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("error querying keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("error scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ContentHash returns the hash of the uncompressed value stored under key.
func (r *DBRepository) ContentHash(ctx context.Context, key string) (string, error) {
	var hash sql.NullString
	err := r.db.Get().QueryRowContext(ctx, `SELECT content_hash FROM storage WHERE key = ?`, key).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("error querying hash of %s: %w", key, err)
	}
	return hash.String, nil
}

func (r *DBRepository) Close() error {
	return r.db.Close()
}
