package images

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned when no Cloudinary credentials are set.
var ErrNotConfigured = errors.New("image uploader not configured")

// Uploader stores product images in Cloudinary, one folder per store.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

// New returns a nil Uploader when credentials are missing; methods on a nil
// Uploader fail with ErrNotConfigured rather than panicking.
func New(cloudName, apiKey, apiSecret string) (*Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Uploader{cld: cld}, nil
}

// Upload stores one image under the store's folder and returns the delivery
// URL.
func (u *Uploader) Upload(ctx context.Context, storeSlug string, file io.Reader) (string, error) {
	if u == nil {
		return "", ErrNotConfigured
	}

	unique := true
	overwrite := false
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "stores/" + storeSlug,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload succeeded but no URL returned")
	}
	return result.SecureURL, nil
}

// Delete removes an image by its public ID.
func (u *Uploader) Delete(ctx context.Context, publicID string) error {
	if u == nil {
		return ErrNotConfigured
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
