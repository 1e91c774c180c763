// Package images validates uploaded image data and computes BlurHash
// placeholders for it.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupportedType is returned when the data isn't a recognized image format.
var ErrUnsupportedType = errors.New("unsupported image type")

// Info describes a validated image.
type Info struct {
	ContentType string // e.g. image/png
	Ext         string // file extension without the dot, e.g. png
	Width       int
	Height      int
}

// DetectType sniffs the image MIME type from magic bytes.
// Returns an empty string for unrecognized data.
func DetectType(data []byte) string {
	if len(data) < 8 {
		return ""
	}

	// JPEG: starts with FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// PNG: starts with 89 50 4E 47 0D 0A 1A 0A
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}

	// GIF: starts with GIF87a or GIF89a
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return "image/gif"
	}

	// WebP: starts with RIFF....WEBP
	if data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		len(data) >= 12 && data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
		return "image/webp"
	}

	return ""
}

// extensions maps detected MIME types to storage key extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Validate checks that data is a decodable image of a supported type.
// Magic bytes are checked first so a renamed file can't sneak through,
// then the image is actually decoded to catch truncated or corrupt data.
func Validate(data []byte) (*Info, error) {
	contentType := DetectType(data)
	if contentType == "" {
		return nil, ErrUnsupportedType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return &Info{
		ContentType: contentType,
		Ext:         extensions[contentType],
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
