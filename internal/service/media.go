package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"gamesapi/internal/model"
	"gamesapi/internal/storage"
)

var ErrReaderNil = errors.New("reader is nil")

// MediaService handles game media uploads (thumbnails, screenshots, builds).
type MediaService interface {
	// Upload streams the content to object storage under a generated key and
	// returns the stored object with a time-limited download URL.
	// originalFilename is used only to extract the extension; the stored key
	// is UUID + original extension under the media/ prefix.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.MediaObject, error)
}

// mediaService is a concrete implementation of MediaService.
type mediaService struct {
	store     storage.Storage
	urlExpiry time.Duration
}

// NewMediaService constructs a new MediaService. urlExpiry bounds how long
// returned download URLs stay valid.
func NewMediaService(store storage.Storage, urlExpiry time.Duration) MediaService {
	return &mediaService{store: store, urlExpiry: urlExpiry}
}

func (s *mediaService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.MediaObject, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("media", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download url: %w", err)
	}

	return &model.MediaObject{
		Key:         objInfo.Key,
		URL:         url,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
	}, nil
}
