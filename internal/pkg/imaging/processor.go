package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxFileSize in bytes (5MB) — catalog images are thumbnails on a phone
// screen, large uploads are rejected before decoding.
const MaxFileSize int64 = 5 * 1024 * 1024

// ProcessedImage contains the stored variants of an uploaded image
type ProcessedImage struct {
	Original    []byte
	Thumbnail   []byte
	ContentType string
}

// Config for image processing
type Config struct {
	MaxWidth    int // max width/height for the stored original
	MaxHeight   int
	ThumbWidth  int // thumbnail dimensions (center crop)
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:    1600,
		MaxHeight:   1600,
		ThumbWidth:  400,
		ThumbHeight: 300,
		Quality:     85,
	}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an image, resizes it if oversized, and renders a thumbnail
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := img
	if img.Bounds().Dx() > p.config.MaxWidth || img.Bounds().Dy() > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	original, err := p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original: %w", err)
	}

	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)
	thumbnail, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &ProcessedImage{
		Original:    original,
		Thumbnail:   thumbnail,
		ContentType: mimeFromFormat(format),
	}, nil
}

// ValidType checks if file is a supported image type
func ValidType(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// JPEG for everything else
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	if format == "png" {
		return "image/png"
	}
	return "image/jpeg"
}

// KeyPair generates storage keys for the original and its thumbnail.
func KeyPair(prefix, id, filename string) (original, thumb string) {
	ext := filepath.Ext(filename)
	original = fmt.Sprintf("%s/%s%s", prefix, id, ext)
	thumb = fmt.Sprintf("%s/%s_thumb%s", prefix, id, ext)
	return
}
