package imagehost

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/maydel/storefront/internal/core/domain"
	"github.com/maydel/storefront/internal/core/port"
)

var _ port.ImageHost = (*Cloudinary)(nil)

// A Cloudinary uploads product images to the hosted media service and
// returns their public URLs. Image bytes are never inspected here.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds the adapter from a cloudinary:// credentials URL.
func NewCloudinary(cloudURL, folder string) (Cloudinary, error) {
	const op = "NewCloudinary"

	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return Cloudinary{}, fmt.Errorf("%s: %w", op, err)
	}
	return Cloudinary{cld: cld, folder: folder}, nil
}

func (c Cloudinary) UploadImage(
	ctx context.Context, file domain.ImageFile,
) (string, error) {
	const op = "Cloudinary.UploadImage"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.cld.Upload.Upload(ctx, file.Data, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %q: %w: %w", op, file.Name, domain.ErrUpload, err)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("%s: %q: no url returned: %w",
			op, file.Name, domain.ErrUpload)
	}
	return res.SecureURL, nil
}
