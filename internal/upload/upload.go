// Package upload keeps uploaded images in memory so the gallery and projects
// can reference them until the process exits.
package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/model"
)

var (
	ErrNotImage = errors.New("upload is not an image")
	ErrTooLarge = errors.New("upload exceeds the size limit")
	ErrFull     = errors.New("upload storage is full")
)

var uploadLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	uploadLogger = l
}

type Upload struct {
	Ref         string
	FileName    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// URL is where the upload is served from.
func (u *Upload) URL() string {
	return config.UploadsUrlPath + u.Ref
}

// Preview is the upload as a data URL.
func (u *Upload) Preview() string {
	return "data:" + u.ContentType + ";base64," + base64.StdEncoding.EncodeToString(u.Data)
}

type Store struct {
	mu       sync.RWMutex
	uploads  map[string]*Upload
	held     int64
	maxBytes int64
	maxTotal int64
}

// NewStore keeps uploads of up to maxBytes each and maxTotal altogether.
func NewStore(maxBytes, maxTotal int64) *Store {
	return &Store{uploads: make(map[string]*Upload), maxBytes: maxBytes, maxTotal: maxTotal}
}

// Put reads an image from r and keeps it under a new reference. Dimensions
// fall back to 800x600 when the format cannot be decoded.
func (s *Store) Put(fileName string, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, contentType)
	}

	u := &Upload{
		Ref:         uuid.New().String(),
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
		Width:       model.DefaultImageWidth,
		Height:      model.DefaultImageHeight,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 && cfg.Height > 0 {
		u.Width, u.Height = cfg.Width, cfg.Height
	} else if err != nil {
		uploadLogger.Debug().Err(err).Str("contentType", contentType).Msg("Could not decode image dimensions")
	}

	s.mu.Lock()
	if s.held+int64(len(data)) > s.maxTotal {
		held := s.held
		s.mu.Unlock()
		uploadLogger.Warn().Int64("held", held).Int("bytes", len(data)).Msg("Upload storage full")
		return nil, ErrFull
	}
	s.uploads[u.Ref] = u
	s.held += int64(len(data))
	s.mu.Unlock()

	uploadLogger.Info().Str("ref", u.Ref).Str("fileName", fileName).Int("bytes", len(data)).Msg("Stored upload")
	return u, nil
}

func (s *Store) Get(ref string) (*Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.uploads[ref]
	return u, ok
}

// Delete frees the upload under ref and reports whether it was held.
func (s *Store) Delete(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[ref]
	if !ok {
		return false
	}
	delete(s.uploads, ref)
	s.held -= int64(len(u.Data))
	uploadLogger.Info().Str("ref", ref).Int("bytes", len(u.Data)).Msg("Released upload")
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}

// Held is the number of bytes currently kept.
func (s *Store) Held() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.held
}

// RefFromURL extracts the reference from an upload URL. Other URLs report false.
func RefFromURL(src string) (string, bool) {
	ref, ok := strings.CutPrefix(src, config.UploadsUrlPath)
	if !ok || ref == "" || strings.Contains(ref, "/") {
		return "", false
	}
	return ref, true
}

// BaseName is the file name up to its first dot, used as the default item name.
func BaseName(fileName string) string {
	name, _, _ := strings.Cut(path.Base(strings.ReplaceAll(fileName, "\\", "/")), ".")
	return name
}
