package advisor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// MaxPhotoBytes is the largest inbound photo accepted for analysis.
	MaxPhotoBytes = 5_000_000

	// maxThumbnailDim bounds both dimensions of the image sent to the
	// vision service; larger photos are downscaled preserving aspect ratio.
	maxThumbnailDim = 800
)

// ErrPhotoTooLarge is returned by PrepareImage for photos over MaxPhotoBytes.
var ErrPhotoTooLarge = fmt.Errorf("photo exceeds %d bytes", MaxPhotoBytes)

// PrepareImage decodes an inbound photo, downscales it to fit within
// 800x800, and re-encodes it as JPEG for the vision service.
func PrepareImage(data []byte) ([]byte, error) {
	if len(data) > MaxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := resize.Thumbnail(maxThumbnailDim, maxThumbnailDim, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
