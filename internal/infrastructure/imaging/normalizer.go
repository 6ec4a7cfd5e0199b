package imaging

import (
	"bytes"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"github.com/nfnt/resize"

	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// Result is one normalized output. When Normalized is false the Data is
// the untouched original and MimeType the declared one.
type Result struct {
	Data     []byte
	MimeType string
	// Normalized reports whether processing succeeded. False means the
	// fail-open path was taken.
	Normalized bool
}

// Normalizer recompresses uploads and derives thumbnails. It fails open:
// any processing error passes the original bytes through unchanged so an
// upload is never rejected over image fidelity.
type Normalizer struct {
	cfg    config.ImageConfig
	logger logger.Logger
}

// NewNormalizer creates a normalizer from the image config.
func NewNormalizer(cfg config.ImageConfig, log logger.Logger) *Normalizer {
	return &Normalizer{
		cfg:    cfg,
		logger: log,
	}
}

// Normalize produces the bounded primary image and the thumbnail. Both
// become JPEG on success; on failure both carry the original bytes with
// the original MIME type.
func (n *Normalizer) Normalize(data []byte, mimeType string) (primary, thumb Result) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		n.logger.WithFields(map[string]interface{}{
			"error":     err.Error(),
			"mime_type": mimeType,
			"size":      len(data),
		}).Warn("Failed to decode uploaded image, passing original through")
		fallback := Result{Data: data, MimeType: mimeType}
		return fallback, fallback
	}

	primary = n.encode(img, n.cfg.MaxDimension, n.cfg.Quality, data, mimeType)
	thumb = n.encode(img, n.cfg.ThumbDimension, n.cfg.ThumbQuality, data, mimeType)

	n.logger.WithFields(map[string]interface{}{
		"format":         format,
		"original_size":  len(data),
		"primary_size":   len(primary.Data),
		"thumbnail_size": len(thumb.Data),
	}).Debug("Image normalized")

	return primary, thumb
}

// encode bounds the image to maxDim on its longest side (never upscaling)
// and re-encodes as JPEG. Encoding failure falls open to the original.
func (n *Normalizer) encode(img image.Image, maxDim, quality int, original []byte, originalMime string) Result {
	bounded := img
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		// Thumbnail preserves aspect ratio and refuses to upscale.
		bounded = resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, bounded, &jpeg.Options{Quality: quality}); err != nil {
		n.logger.WithField("error", err.Error()).Warn("Failed to encode image, passing original through")
		return Result{Data: original, MimeType: originalMime}
	}

	return Result{
		Data:       buf.Bytes(),
		MimeType:   "image/jpeg",
		Normalized: true,
	}
}
