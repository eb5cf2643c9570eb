package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/db"
	"github.com/debemdeboas/the-gallery/internal/util/compression"
)

func TestMain(m *testing.M) {
	SetLogger(zerolog.New(io.Discard))
	db.SetLogger(zerolog.New(io.Discard))
	os.Exit(m.Run())
}

// fakeS3 keeps objects in a map and mimics the NoSuchKey error.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{}
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, s3types.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

func backends(t *testing.T) map[string]Repository {
	t.Helper()

	diskvRepo, err := NewDiskvRepository(filepath.Join(t.TempDir(), "diskv"))
	if err != nil {
		t.Fatalf("Failed to create diskv repository: %v", err)
	}

	database := db.NewSQLite(filepath.Join(t.TempDir(), "storage.sqlite"))
	if err := database.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	dbRepo := NewDBRepository(database, compression.ZstdCompressor{})
	t.Cleanup(func() { dbRepo.Close() })

	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"diskv":  diskvRepo,
		"sqlite": dbRepo,
		"s3":     NewS3RepositoryWithClient(newFakeS3(), "gallery", "collections/"),
	}
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()

	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("Missing key", func(t *testing.T) {
				_, err := repo.GetItem(ctx, "babaGalleryImages")
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Expected ErrNotFound, got %v", err)
				}
			})

			t.Run("Set and Get", func(t *testing.T) {
				value := []byte(`[{"id":1,"title":"First"}]`)
				if err := repo.SetItem(ctx, "babaGalleryBlogPosts", value); err != nil {
					t.Fatalf("SetItem failed: %v", err)
				}

				got, err := repo.GetItem(ctx, "babaGalleryBlogPosts")
				if err != nil {
					t.Fatalf("GetItem failed: %v", err)
				}
				if !bytes.Equal(got, value) {
					t.Errorf("Expected %q, got %q", value, got)
				}
			})

			t.Run("Overwrite", func(t *testing.T) {
				if err := repo.SetItem(ctx, "babaGalleryBlogPosts", []byte(`[]`)); err != nil {
					t.Fatalf("SetItem failed: %v", err)
				}
				got, _ := repo.GetItem(ctx, "babaGalleryBlogPosts")
				if string(got) != `[]` {
					t.Errorf("Expected overwritten value, got %q", got)
				}
			})

			t.Run("Keys", func(t *testing.T) {
				if err := repo.SetItem(ctx, "babaGalleryProjects", []byte(`[]`)); err != nil {
					t.Fatalf("SetItem failed: %v", err)
				}
				keys, err := repo.Keys(ctx)
				if err != nil {
					t.Fatalf("Keys failed: %v", err)
				}
				expected := []string{"babaGalleryBlogPosts", "babaGalleryProjects"}
				if name == "s3" {
					// S3 listing order is not guaranteed by the fake.
					if len(keys) != len(expected) {
						t.Errorf("Expected %d keys, got %v", len(expected), keys)
					}
					return
				}
				if !reflect.DeepEqual(keys, expected) {
					t.Errorf("Expected %v, got %v", expected, keys)
				}
			})

			t.Run("Remove", func(t *testing.T) {
				if err := repo.RemoveItem(ctx, "babaGalleryProjects"); err != nil {
					t.Fatalf("RemoveItem failed: %v", err)
				}
				if _, err := repo.GetItem(ctx, "babaGalleryProjects"); !errors.Is(err, ErrNotFound) {
					t.Errorf("Expected ErrNotFound after remove, got %v", err)
				}
				if err := repo.RemoveItem(ctx, "never-existed"); err != nil {
					t.Errorf("Expected removing a missing key to succeed, got %v", err)
				}
			})
		})
	}
}

func TestMemoryRepositoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	value := []byte("abc")
	repo.SetItem(ctx, "k", value)
	value[0] = 'z'

	got, _ := repo.GetItem(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Expected stored value to be isolated from caller, got %q", got)
	}

	got[1] = 'z'
	again, _ := repo.GetItem(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Expected returned value to be a copy, got %q", again)
	}
}

func TestDBRepositoryStoresCompressed(t *testing.T) {
	ctx := context.Background()

	database := db.NewSQLite(filepath.Join(t.TempDir(), "compressed.sqlite"))
	if err := database.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	repo := NewDBRepository(database, nil)
	defer repo.Close()

	value := bytes.Repeat([]byte(`{"id":1,"name":"Babazon"},`), 100)
	if err := repo.SetItem(ctx, "babaGalleryProjects", value); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	var raw []byte
	if err := database.QueryRow(`SELECT value FROM storage WHERE key = ?`, "babaGalleryProjects").Scan(&raw); err != nil {
		t.Fatalf("Failed to read raw value: %v", err)
	}
	if len(raw) >= len(value) {
		t.Errorf("Expected compressed value smaller than %d bytes, got %d", len(value), len(raw))
	}

	hash, err := repo.ContentHash(ctx, "babaGalleryProjects")
	if err != nil {
		t.Fatalf("ContentHash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("Expected sha256 hex hash, got %q", hash)
	}

	if _, err := repo.ContentHash(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDiskvRepositoryPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewDiskvRepository(dir)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	if err := first.SetItem(ctx, "babaGalleryImages", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	second, err := NewDiskvRepository(dir)
	if err != nil {
		t.Fatalf("Failed to reopen repository: %v", err)
	}
	got, err := second.GetItem(ctx, "babaGalleryImages")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Expected persisted value, got %q", got)
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		repo, err := New(ctx, config.StorageConfig{Type: config.StorageMemory})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := repo.(*MemoryRepository); !ok {
			t.Errorf("Expected *MemoryRepository, got %T", repo)
		}
	})

	t.Run("Diskv", func(t *testing.T) {
		repo, err := New(ctx, config.StorageConfig{Type: config.StorageDiskv, Path: t.TempDir()})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := repo.(*DiskvRepository); !ok {
			t.Errorf("Expected *DiskvRepository, got %T", repo)
		}
	})

	t.Run("SQLite", func(t *testing.T) {
		repo, err := New(ctx, config.StorageConfig{
			Type:        config.StorageSQLite,
			Path:        filepath.Join(t.TempDir(), "gallery.db"),
			Compression: "gzip",
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		defer repo.Close()
		if _, ok := repo.(*DBRepository); !ok {
			t.Errorf("Expected *DBRepository, got %T", repo)
		}
	})

	t.Run("SQLite with unknown compression", func(t *testing.T) {
		_, err := New(ctx, config.StorageConfig{
			Type:        config.StorageSQLite,
			Path:        filepath.Join(t.TempDir(), "gallery.db"),
			Compression: "brotli",
		})
		if err == nil {
			t.Error("Expected error for unknown compression")
		}
	})

	t.Run("Unknown type", func(t *testing.T) {
		if _, err := New(ctx, config.StorageConfig{Type: "floppy"}); err == nil {
			t.Error("Expected error for unknown storage type")
		}
	})
}
