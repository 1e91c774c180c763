package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "github.com/editorcraftapp/editorcraft-server/internal/errors"
	"github.com/editorcraftapp/editorcraft-server/internal/id"
	"github.com/editorcraftapp/editorcraft-server/internal/media/images"
)

// ObjectStore uploads blobs to object storage and returns their public URLs.
// Implemented by blob.Uploader.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadService relays validated image uploads to object storage.
type UploadService struct {
	objects     ObjectStore
	maxFileSize int64
	maxBatch    int
	logger      *slog.Logger
}

// NewUploadService creates a new upload service.
// maxFileSize is the per-file ceiling in bytes; maxBatch caps files per
// multi-upload request.
func NewUploadService(objects ObjectStore, maxFileSize int64, maxBatch int, logger *slog.Logger) *UploadService {
	return &UploadService{
		objects:     objects,
		maxFileSize: maxFileSize,
		maxBatch:    maxBatch,
		logger:      logger,
	}
}

// UploadFile is one file from a multipart upload request.
type UploadFile struct {
	Filename string
	Data     []byte
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	BlurHash string `json:"blurHash,omitempty"`
}

// UploadImage validates a single image and stores it, returning its URL.
func (s *UploadService) UploadImage(ctx context.Context, userID string, file UploadFile) (*UploadResult, error) {
	info, err := s.validateFile(file)
	if err != nil {
		return nil, err
	}
	return s.storeFile(ctx, userID, file, info)
}

// UploadImages validates and stores a batch of images. All files are
// validated before any is stored, so a bad file in the batch fails the whole
// request without leaving partial uploads behind.
func (s *UploadService) UploadImages(ctx context.Context, userID string, files []UploadFile) ([]*UploadResult, error) {
	if len(files) == 0 {
		return nil, domainerrors.Validation("no files provided")
	}
	if len(files) > s.maxBatch {
		return nil, domainerrors.Validationf("too many files: maximum %d per request", s.maxBatch)
	}

	infos := make([]*images.Info, len(files))
	for i, file := range files {
		info, err := s.validateFile(file)
		if err != nil {
			return nil, domainerrors.Validationf("file %q: %s", file.Filename, err.Error())
		}
		infos[i] = info
	}

	results := make([]*UploadResult, 0, len(files))
	for i, file := range files {
		result, err := s.storeFile(ctx, userID, file, infos[i])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteImage removes a stored image by its object key. The key must lie
// under the caller's own prefix.
func (s *UploadService) DeleteImage(ctx context.Context, userID, key string) error {
	if !strings.HasPrefix(key, "editorcraft/"+userID+"/") {
		return domainerrors.Forbidden("access denied")
	}

	if err := s.objects.Delete(ctx, key); err != nil {
		return domainerrors.Upstream("image storage unavailable").WithCause(err)
	}

	s.logger.Info("image deleted",
		"user_id", userID,
		"key", key,
	)
	return nil
}

// validateFile checks size and image integrity.
func (s *UploadService) validateFile(file UploadFile) (*images.Info, error) {
	if len(file.Data) == 0 {
		return nil, domainerrors.Validation("file is empty")
	}
	if int64(len(file.Data)) > s.maxFileSize {
		return nil, domainerrors.Validationf("file exceeds maximum size of %d bytes", s.maxFileSize)
	}

	info, err := images.Validate(file.Data)
	if err != nil {
		if errors.Is(err, images.ErrUnsupportedType) {
			return nil, domainerrors.Validation("only JPEG, PNG, GIF, and WebP images are allowed")
		}
		return nil, domainerrors.Validation("file is not a valid image").WithCause(err)
	}
	return info, nil
}

// storeFile uploads one validated file and computes its BlurHash placeholder.
func (s *UploadService) storeFile(ctx context.Context, userID string, file UploadFile, info *images.Info) (*UploadResult, error) {
	key, err := s.objectKey(userID, info.Ext)
	if err != nil {
		return nil, err
	}

	url, err := s.objects.Put(ctx, key, file.Data, info.ContentType)
	if err != nil {
		return nil, domainerrors.Upstream("image storage unavailable").WithCause(err)
	}

	// BlurHash failure is not fatal; the image is already stored.
	blurHash, err := images.ComputeBlurHash(file.Data)
	if err != nil {
		s.logger.Warn("blurhash computation failed",
			"key", key,
			"error", err,
		)
		blurHash = ""
	}

	s.logger.Info("image uploaded",
		"user_id", userID,
		"key", key,
		"size", len(file.Data),
		"type", info.ContentType,
	)

	return &UploadResult{
		URL:      url,
		Filename: file.Filename,
		Size:     int64(len(file.Data)),
		BlurHash: blurHash,
	}, nil
}

// objectKey builds the storage key: editorcraft/{user}/{timestamp}-{random}.{ext}.
func (s *UploadService) objectKey(userID, ext string) (string, error) {
	random, err := id.Token(9)
	if err != nil {
		return "", fmt.Errorf("generate key suffix: %w", err)
	}
	return fmt.Sprintf("editorcraft/%s/%d-%s.%s", userID, time.Now().UnixMilli(), random, ext), nil
}
