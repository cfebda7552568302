package camera

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

// StubCamera synthesizes frames in memory so the full capture flow can be
// exercised without hardware attached.
type StubCamera struct {
	width   int
	height  int
	counter atomic.Uint64
}

// NewStubCamera creates a stub camera producing frames of the given size.
func NewStubCamera(width, height int) *StubCamera {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	return &StubCamera{width: width, height: height}
}

// Capture renders a solid-color placeholder frame. The color rotates per
// capture so consecutive photos are distinguishable.
func (c *StubCamera) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := c.counter.Add(1)
	palette := []color.NRGBA{
		{R: 0x2f, G: 0x6f, B: 0xb5, A: 0xff},
		{R: 0xb5, G: 0x4a, B: 0x2f, A: 0xff},
		{R: 0x3d, G: 0x8f, B: 0x4f, A: 0xff},
		{R: 0x8a, G: 0x4f, B: 0x9e, A: 0xff},
	}
	frame := imaging.New(c.width, c.height, palette[n%uint64(len(palette))])

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encoding stub frame: %w", err)
	}

	return buf.Bytes(), nil
}
