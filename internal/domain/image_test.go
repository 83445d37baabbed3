package domain

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8(x + y), A: uint8(255 - x)})
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return buf.Bytes()
}

func TestAcceptsFilename(t *testing.T) {
	tests := map[string]bool{
		"cat.png":         true,
		"cat.PNG":         true,
		"cat.jpg":         true,
		"cat.jpeg":        true,
		"cat.JPEG":        true,
		"cat.gif":         false,
		"cat.webp":        false,
		"cat":             false,
		"archive.png.zip": false,
	}
	for name, want := range tests {
		assert.Equal(t, want, AcceptsFilename(name), name)
	}
}

func TestDecodeInputImage(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		data := encode(t, gradient(64, 64), "png")
		img, err := DecodeInputImage("cat.png", data)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, "cat.png", img.Filename)
		assert.Equal(t, data, img.Data)
		assert.Equal(t, image.Rect(0, 0, 64, 64), img.Image.Bounds())
	})

	t.Run("jpeg", func(t *testing.T) {
		img, err := DecodeInputImage("cat.jpg", encode(t, gradient(32, 16), "jpeg"))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, image.Rect(0, 0, 32, 16), img.Image.Bounds())
	})

	t.Run("rejected extension", func(t *testing.T) {
		_, err := DecodeInputImage("cat.gif", encode(t, gradient(4, 4), "png"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("content does not match", func(t *testing.T) {
		_, err := DecodeInputImage("cat.png", []byte("plain text pretending to be a picture"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("truncated png", func(t *testing.T) {
		data := encode(t, gradient(16, 16), "png")
		_, err := DecodeInputImage("cat.png", data[:len(data)/2])
		assert.ErrorIs(t, err, ErrUndecodableImage)
	})
}

func TestEncodePNG_RoundTripIsPixelIdentical(t *testing.T) {
	sources := map[string]image.Image{
		"nrgba with alpha": gradient(64, 64),
		"opaque rgba":      image.NewRGBA(image.Rect(0, 0, 64, 64)),
		"gray":             image.NewGray(image.Rect(0, 0, 10, 7)),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			data, err := EncodePNG(src)
			require.NoError(t, err)

			decoded, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), decoded.Bounds())

			b := src.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					want := color.NRGBAModel.Convert(src.At(x, y))
					got := color.NRGBAModel.Convert(decoded.At(x, y))
					if want != got {
						t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDecodeGeneratedImage(t *testing.T) {
	data := encode(t, gradient(64, 64), "png")

	img, err := DecodeGeneratedImage(ResponsePart{MIMEType: "image/png", InlineData: data})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, data, img.Data)
	assert.Equal(t, 64, img.Image.Bounds().Dx())

	_, err = DecodeGeneratedImage(ResponsePart{MIMEType: "image/png", InlineData: []byte{0x1, 0x2}})
	assert.ErrorIs(t, err, ErrUndecodableImage)
}

func TestSubmissionReady(t *testing.T) {
	img := &InputImage{Filename: "cat.png"}

	assert.True(t, Submission{Image: img, Prompt: "make it a dog", GenerateRequested: true}.Ready())
	assert.False(t, Submission{Image: img, Prompt: "", GenerateRequested: true}.Ready())
	assert.False(t, Submission{Prompt: "make it a dog", GenerateRequested: true}.Ready())
	assert.False(t, Submission{Image: img, Prompt: "make it a dog"}.Ready())
}

func TestSession_DisplaySlot(t *testing.T) {
	sess := NewSession("abc")
	assert.Nil(t, sess.Generated())
	assert.Zero(t, sess.Version())

	first := &GeneratedImage{MIMEType: "image/png"}
	sess.SetGenerated(first)
	assert.Same(t, first, sess.Generated())

	sess.SetGenerated(nil)
	assert.Same(t, first, sess.Generated())
	assert.Equal(t, 1, sess.Version())

	second := &GeneratedImage{MIMEType: "image/png"}
	sess.SetGenerated(second)
	assert.Same(t, second, sess.Generated())
	assert.Equal(t, 2, sess.Version())
}

func TestSession_TakeNoticeClears(t *testing.T) {
	sess := NewSession("abc")
	sess.SetNotice("The model returned no image.")

	assert.Equal(t, "The model returned no image.", sess.TakeNotice())
	assert.Empty(t, sess.TakeNotice())
}
