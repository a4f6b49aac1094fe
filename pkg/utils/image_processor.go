package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"

	"futur-backend/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// MaxDesignDimension bounds the longest edge of a processed back design.
const MaxDesignDimension = 2000

// ProcessImage decodes an upload, fits it inside MaxDesignDimension and
// re-encodes it as WebP, falling back to JPEG.
func ProcessImage(r io.Reader, filename string) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", filename, err)
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	bounds := img.Bounds()
	if bounds.Dx() > MaxDesignDimension || bounds.Dy() > MaxDesignDimension {
		img = imaging.Fit(img, MaxDesignDimension, MaxDesignDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer

	// Quality 85, lossy
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImage reports whether contentType is an accepted upload type.
func IsImage(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png" || contentType == "image/webp" || contentType == "image/jpg"
}

// SniffContentType detects the type from the first bytes of head.
func SniffContentType(head []byte) string {
	return http.DetectContentType(head)
}
