package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// ErrUnsupportedFormat is returned for image encodings the loaders cannot read
var ErrUnsupportedFormat = errors.New("unsupported image format")

// displayGamma converts 8-bit display-referred images to linear radiance
const displayGamma = 2.2

// ImageData contains loaded image data as linear RGB, rows top-down
type ImageData struct {
	Width  int
	Height int
	Pixels []mgl32.Vec3
}

// At returns the pixel at (x, y); callers keep coordinates in range
func (img *ImageData) At(x, y int) mgl32.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// LoadImage loads an environment image. Radiance .hdr files keep their
// linear values; PNG, JPEG, BMP and TIFF are decoded and linearized.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(filename), ".hdr") {
		img, err := DecodeHDR(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return img, nil
	}

	img, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return img, nil
}

// DecodeImage decodes any registered image.Image format into linear RGB.
// Radiance data is routed to DecodeHDR so it is not gamma converted.
func DecodeImage(r io.Reader) (*ImageData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if bytes.HasPrefix(data, hdrSignature) {
		return decodeHDRBytes(data)
	}

	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, err
	}
	if err := checkImageSize(config.Width, config.Height); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]mgl32.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = mgl32.Vec3{
				toLinear(float32(r) / 65535.0),
				toLinear(float32(g) / 65535.0),
				toLinear(float32(b) / 65535.0),
			}
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

func toLinear(c float32) float32 {
	return math32.Pow(c, displayGamma)
}
