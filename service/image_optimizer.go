package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// Page image formats embedded in exported documents
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// EncodedPage is one rendered page ready to embed
type EncodedPage struct {
	Data        []byte
	Format      string
	ContentType string
	Width       int
	Height      int
}

// EncodePage encodes a rendered page as JPEG (quality 1-100) or PNG
func EncodePage(img image.Image, format string, quality int) (*EncodedPage, error) {
	var buf bytes.Buffer
	var contentType string

	switch format {
	case FormatJPEG:
		// JPEG has no alpha; flatten on white so transparent regions do not turn black
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White)
		flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
		}
		contentType = "image/jpeg"
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode to PNG: %w", err)
		}
		contentType = "image/png"
	default:
		return nil, fmt.Errorf("unsupported page format %q", format)
	}

	b := img.Bounds()
	return &EncodedPage{
		Data:        buf.Bytes(),
		Format:      format,
		ContentType: contentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// ScaleToWidth shrinks img to maxWidth keeping its aspect ratio; smaller images are returned as-is
func ScaleToWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	newHeight := int(float64(b.Dy()) * float64(maxWidth) / float64(b.Dx()))
	return imaging.Resize(img, maxWidth, newHeight, imaging.Lanczos)
}
