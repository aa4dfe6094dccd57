package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage checks the size limit and that data decodes as an image.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	return format, nil
}

// NormalizePNG returns data as PNG bytes, re-encoding other formats.
func (p *ImageProcessor) NormalizePNG(data []byte) ([]byte, error) {
	format, err := p.ValidateImage(data)
	if err != nil {
		return nil, err
	}
	if format == "png" {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	b := new(bytes.Buffer)
	if err := imaging.Encode(b, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("cannot encode png: %w", err)
	}
	return b.Bytes(), nil
}

// Thumbnail fits img into a size×size box, used when previewing raw generations.
func (p *ImageProcessor) Thumbnail(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	b := new(bytes.Buffer)
	if err := imaging.Encode(b, imaging.Fit(img, size, size, imaging.Lanczos), imaging.PNG); err != nil {
		return nil, fmt.Errorf("cannot encode png: %w", err)
	}
	return b.Bytes(), nil
}
