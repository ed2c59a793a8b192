package usecase

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"

	"campustrade/internal/domain/repository"
	"campustrade/internal/infrastructure/storage"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

const (
	maxImageBytes     = 5 << 20 // 5 MB per file
	maxImagesPerBatch = 4
	thumbnailWidth    = 300
)

type UploadUseCase struct {
	storage     *storage.CloudStorageClient
	productRepo repository.ProductRepository
}

func NewUploadUseCase(storage *storage.CloudStorageClient, productRepo repository.ProductRepository) *UploadUseCase {
	return &UploadUseCase{
		storage:     storage,
		productRepo: productRepo,
	}
}

type UploadedImage struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// UploadProductImages stores each image and a 300px-wide thumbnail under the
// seller's product folder. Files that fail to decode or upload are skipped
// rather than failing the whole batch; the caller gets whatever succeeded.
func (u *UploadUseCase) UploadProductImages(ctx context.Context, userID, productID string, files []*multipart.FileHeader) ([]UploadedImage, error) {
	if len(files) == 0 {
		return nil, errors.BadRequest("No files provided", nil)
	}
	if len(files) > maxImagesPerBatch {
		return nil, errors.Validation("images", "at most 4 images per listing")
	}

	// productID may be a fresh draft ID for a listing still being created;
	// when it names an existing listing, only its seller may add images.
	product, err := u.productRepo.GetByID(ctx, productID)
	switch {
	case err == nil:
		if product.SellerID != userID {
			return nil, errors.Forbidden("You can only upload images for your own listings", nil)
		}
	case !errors.Is(err, "NOT_FOUND"):
		return nil, err
	}

	var uploaded []UploadedImage

	for _, header := range files {
		img, err := u.uploadOne(ctx, userID, productID, header)
		if err != nil {
			logger.Warn("Skipping image %s: %v", header.Filename, err)
			continue
		}
		uploaded = append(uploaded, *img)
	}

	if len(uploaded) == 0 {
		return nil, errors.BadRequest("No valid image files in upload", nil)
	}

	return uploaded, nil
}

func (u *UploadUseCase) uploadOne(ctx context.Context, userID, productID string, header *multipart.FileHeader) (*UploadedImage, error) {
	if header.Size > maxImageBytes {
		return nil, errors.Validation("images", "image exceeds the 5MB limit")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.Validation("images", "only image files are allowed")
	}

	src, err := header.Open()
	if err != nil {
		return nil, errors.Internal("Failed to open uploaded file", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Validation("images", "file is not a valid image")
	}

	// Everything is re-encoded as JPEG; the decode already normalized it.
	var full bytes.Buffer
	if err := imaging.Encode(&full, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, errors.Internal("Failed to encode image", err)
	}

	objectName := u.storage.ObjectName(userID, productID, "image/jpeg")
	url, err := u.storage.Upload(ctx, objectName, "image/jpeg", &full)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, errors.Internal("Failed to encode thumbnail", err)
	}

	thumbName := strings.TrimSuffix(objectName, ".jpg") + "_thumb.jpg"
	thumbURL, err := u.storage.Upload(ctx, thumbName, "image/jpeg", &thumbBuf)
	if err != nil {
		// The full image made it; serve it as its own thumbnail.
		logger.Warn("Thumbnail upload failed for %s: %v", objectName, err)
		thumbURL = url
	}

	return &UploadedImage{
		URL:          url,
		ThumbnailURL: thumbURL,
	}, nil
}
