package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pixel is a running radiance sum and the number of samples in it
type Pixel struct {
	Sum     mgl32.Vec3
	Samples float32
}

// Resolve returns the mean radiance of the pixel
func (p Pixel) Resolve() mgl32.Vec3 {
	return p.Sum.Mul(1 / math32.Max(p.Samples, 1))
}

// AccumulationBuffer is a double-buffered progressive image. Render workers
// add samples to the back buffer; the front buffer holds the last completed
// pass and is what gets displayed. Rows are stored top-down.
//
// The back buffer has no locking: tiles are disjoint, and the owner only
// touches it between passes.
type AccumulationBuffer struct {
	width, height int
	back          []Pixel
	front         []Pixel
}

// NewAccumulationBuffer creates a zeroed buffer
func NewAccumulationBuffer(width, height int) *AccumulationBuffer {
	return &AccumulationBuffer{
		width:  width,
		height: height,
		back:   make([]Pixel, width*height),
		front:  make([]Pixel, width*height),
	}
}

func (b *AccumulationBuffer) Width() int  { return b.width }
func (b *AccumulationBuffer) Height() int { return b.height }

// AddSample adds one radiance sample to the back buffer
func (b *AccumulationBuffer) AddSample(x, y int, radiance mgl32.Vec3) {
	p := &b.back[y*b.width+x]
	p.Sum = p.Sum.Add(radiance)
	p.Samples++
}

// Back returns the pixels being accumulated
func (b *AccumulationBuffer) Back() []Pixel {
	return b.back
}

// Front returns the pixels of the last completed pass
func (b *AccumulationBuffer) Front() []Pixel {
	return b.front
}

// Present publishes the back buffer: it is copied into the front buffer and
// the two swap roles, so accumulation continues from the same sums
func (b *AccumulationBuffer) Present() {
	copy(b.front, b.back)
	b.back, b.front = b.front, b.back
}

// ClearBack zeroes the back buffer, restarting accumulation
func (b *AccumulationBuffer) ClearBack() {
	clear(b.back)
}

// FrontImage tone maps the front buffer into an RGBA image
func (b *AccumulationBuffer) FrontImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	b.WriteFrontRGBA(img.Pix)
	return img
}

// WriteFrontRGBA tone maps the front buffer into pix, which must hold
// width*height*4 bytes in RGBA order
func (b *AccumulationBuffer) WriteFrontRGBA(pix []byte) {
	for i, p := range b.front {
		c := ToneMap(p.Resolve())
		pix[4*i+0] = c.R
		pix[4*i+1] = c.G
		pix[4*i+2] = c.B
		pix[4*i+3] = c.A
	}
}

// ToneMap converts linear radiance to an 8-bit color with gamma 2 and clamping
func ToneMap(radiance mgl32.Vec3) color.RGBA {
	r := mgl32.Clamp(math32.Sqrt(math32.Max(radiance[0], 0)), 0, 1)
	g := mgl32.Clamp(math32.Sqrt(math32.Max(radiance[1], 0)), 0, 1)
	bl := mgl32.Clamp(math32.Sqrt(math32.Max(radiance[2], 0)), 0, 1)

	return color.RGBA{
		R: uint8(255 * r),
		G: uint8(255 * g),
		B: uint8(255 * bl),
		A: 255,
	}
}
