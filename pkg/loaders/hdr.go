package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
)

// Resolution limits checked before any pixel buffer is allocated
const (
	maxImageSide   = 1 << 16
	maxImagePixels = 1 << 26
)

// ErrImageTooLarge is returned when a header declares more pixels than the
// loaders will allocate
var ErrImageTooLarge = errors.New("image too large")

var hdrSignature = []byte("#?")

// checkImageSize validates a resolution read from an image header
func checkImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("malformed resolution %dx%d", width, height)
	}
	// Division keeps the product check free of overflow
	if width > maxImageSide || height > maxImageSide || width > maxImagePixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, maxImagePixels)
	}
	return nil
}

// checkHDRFormat rejects headers that declare a pixel format other than RGBE
func checkHDRFormat(data []byte) error {
	end := bytes.Index(data, []byte("\n\n"))
	if end < 0 {
		end = len(data)
	}
	for _, line := range bytes.Split(data[:end], []byte("\n")) {
		format, ok := bytes.CutPrefix(bytes.TrimSpace(line), []byte("FORMAT="))
		if ok && string(format) != "32-bit_rle_rgbe" {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}
	}
	return nil
}

// DecodeHDR reads a Radiance RGBE (.hdr) image. The resolution is checked
// against the size limits before pixels are decoded.
func DecodeHDR(r io.Reader) (*ImageData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hdr: %w", err)
	}
	return decodeHDRBytes(data)
}

func decodeHDRBytes(data []byte) (*ImageData, error) {
	if !bytes.HasPrefix(data, hdrSignature) {
		return nil, fmt.Errorf("%w: missing #? signature", ErrUnsupportedFormat)
	}
	if err := checkHDRFormat(data); err != nil {
		return nil, err
	}

	config, err := rgbe.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if err := checkImageSize(config.Width, config.Height); err != nil {
		return nil, err
	}

	decoded, err := rgbe.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding hdr: %w", err)
	}
	return fromHDR(decoded)
}

// fromHDR copies the linear values of an hdr.Image, rows top-down
func fromHDR(img image.Image) (*ImageData, error) {
	himg, ok := img.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("%w: decoded %T is not an HDR image", ErrUnsupportedFormat, img)
	}

	bounds := himg.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]mgl32.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := himg.HDRAt(bounds.Min.X+x, bounds.Min.Y+y).HDRRGBA()
			pixels[y*width+x] = mgl32.Vec3{float32(r), float32(g), float32(b)}
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
