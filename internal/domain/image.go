package domain

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DownloadFilename is the name offered for the generated image download
	DownloadFilename = "generated_image.png"
	// DownloadMIMEType is the content type of the generated image download
	DownloadMIMEType = "image/png"
)

var acceptedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var acceptedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

// InputImage represents an image uploaded by the user
type InputImage struct {
	Filename string
	MIMEType string
	Data     []byte
	Image    image.Image
}

// GeneratedImage represents an image returned by the generation API
type GeneratedImage struct {
	MIMEType string
	Data     []byte
	Image    image.Image
}

// AcceptsFilename reports whether the filename carries one of the accepted upload extensions
func AcceptsFilename(filename string) bool {
	_, ok := acceptedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// DecodeInputImage validates and decodes an uploaded file
func DecodeInputImage(filename string, data []byte) (*InputImage, error) {
	if !AcceptsFilename(filename) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	mime := mimetype.Detect(data).String()
	if _, ok := acceptedMIMETypes[mime]; !ok {
		return nil, fmt.Errorf("%w: %q has content type %s", ErrUnsupportedFormat, filename, mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	return &InputImage{
		Filename: filename,
		MIMEType: mime,
		Data:     data,
		Image:    img,
	}, nil
}

// DecodeGeneratedImage decodes the inline payload of a response part
func DecodeGeneratedImage(part ResponsePart) (*GeneratedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(part.InlineData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}

	return &GeneratedImage{
		MIMEType: part.MIMEType,
		Data:     part.InlineData,
		Image:    img,
	}, nil
}

// EncodePNG serializes an image to a PNG byte stream
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
