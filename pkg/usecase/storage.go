package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// defaultSignedURLExpiry applies when the request carries no expiresIn
const defaultSignedURLExpiry = time.Hour

// MaxUploadSize caps uploaded files at 5MB
const MaxUploadSize = 5 << 20

// uploadContentTypes lists the MIME types accepted for uploads: customer
// identity documents and bill photos, so images and PDFs only
var uploadContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// StorageUseCase stores user-owned objects and issues signed download URLs
// for them
type StorageUseCase struct {
	repo  interfaces.Repository
	store interfaces.BlobStore
}

func NewStorageUseCase(repo interfaces.Repository) *StorageUseCase {
	return &StorageUseCase{repo: repo}
}

// SignedURL returns a short-lived download URL for the object. The path
// must be prefixed with the caller's user ID; the ownership check happens
// before the blob store is touched.
func (uc *StorageUseCase) SignedURL(ctx context.Context, userID, bucket, path string, expiresIn time.Duration) (string, error) {
	if bucket == "" || path == "" {
		return "", goerr.Wrap(types.ErrValidation, "bucket and path are required")
	}
	if !strings.HasPrefix(path, userID+"/") {
		return "", goerr.Wrap(types.ErrForbidden, "path does not belong to the caller",
			goerr.V("path", path))
	}
	if uc.store == nil {
		return "", goerr.New("blob store is not configured")
	}
	if expiresIn <= 0 {
		expiresIn = defaultSignedURLExpiry
	}
	return uc.store.SignedURL(ctx, bucket, path, expiresIn)
}

// Upload stores an object under the caller's own prefix and returns a
// signed download URL for it. Like SignedURL, ownership of the path is
// checked before the blob store is touched.
func (uc *StorageUseCase) Upload(ctx context.Context, userID, bucket, path, contentType string, size int64, data io.Reader) (string, error) {
	if bucket == "" || path == "" {
		return "", goerr.Wrap(types.ErrValidation, "bucket and path are required")
	}
	if !strings.HasPrefix(path, userID+"/") {
		return "", goerr.Wrap(types.ErrForbidden, "path does not belong to the caller",
			goerr.V("path", path))
	}
	if size > MaxUploadSize {
		return "", goerr.Wrap(types.ErrValidation, "file size exceeds 5MB limit",
			goerr.V("size", size))
	}
	if !uploadContentTypes[contentType] {
		return "", goerr.Wrap(types.ErrValidation, "invalid file type, only images and PDFs are allowed",
			goerr.V("content_type", contentType))
	}
	if uc.store == nil {
		return "", goerr.New("blob store is not configured")
	}

	if err := uc.store.Upload(ctx, bucket, path, contentType, data); err != nil {
		return "", err
	}
	return uc.store.SignedURL(ctx, bucket, path, defaultSignedURLExpiry)
}
