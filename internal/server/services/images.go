package services

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/filex"
	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/storage"
)

// Upload categories, used as name tags in storage.
const (
	KindZone    = "zone"
	KindProfile = "profile"
)

// MaxImageSize is the largest accepted upload in bytes.
const MaxImageSize = 10 << 20

// ImageService validates uploads and drives the two-phase file lifecycle.
// Stage writes bytes to the temp namespace; the caller confirms after its
// database transaction commits, or discards on failure.
type ImageService struct {
	store  storage.Store
	logger logging.Logger
}

func NewImageService(store storage.Store, logger logging.Logger) *ImageService {
	return &ImageService{store: store, logger: logger.With("component", "images")}
}

// Stage validates the upload and writes it to the temp namespace. It
// returns the temp name plus the permanent name to promote it to.
func (s *ImageService) Stage(ctx context.Context, data []byte, kind, originalName, contentType string) (tempName, finalName string, err error) {
	if len(data) == 0 {
		return "", "", common.ErrEmptyUpload
	}
	if len(data) > MaxImageSize {
		return "", "", fmt.Errorf("%d bytes: %w", len(data), common.ErrFileTooLarge)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%q: %w", contentType, common.ErrUnsupportedFileType)
	}

	tempName, err = s.store.SaveTemp(ctx, data, kind, originalName)
	if err != nil {
		return "", "", err
	}
	return tempName, strings.TrimPrefix(tempName, "temp_"), nil
}

// Confirm promotes a staged upload to its permanent name.
func (s *ImageService) Confirm(ctx context.Context, tempName, finalName string) error {
	return s.store.Confirm(ctx, tempName, finalName)
}

// Discard drops a staged upload, best effort.
func (s *ImageService) Discard(ctx context.Context, tempName string) {
	s.store.DeleteQuietly(ctx, tempName)
}

// Delete drops a permanent image, best effort.
func (s *ImageService) Delete(ctx context.Context, fileName string) {
	s.store.DeleteQuietly(ctx, fileName)
}

// Open reads a permanent image and reports its content type, derived from
// the file extension.
func (s *ImageService) Open(ctx context.Context, fileName string) ([]byte, string, error) {
	data, err := s.store.Open(ctx, fileName)
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filex.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
