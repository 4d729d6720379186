package samples

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrImagingUnavailable is returned by an ImageCapability that cannot render.
var ErrImagingUnavailable = errors.New("imaging capability not available")

// Renderer draws a placeholder image with a multi-line caption.
type Renderer interface {
	Render(w io.Writer, caption []string) error
	// Ext is the file extension of the encoded output, including the dot.
	Ext() string
}

// ImageCapability reports whether placeholder images can be produced and,
// if so, hands back a Renderer.
type ImageCapability func() (Renderer, error)

// NoImages is the capability used when image generation is switched off.
func NoImages() (Renderer, error) {
	return nil, ErrImagingUnavailable
}

// PNGCapability renders width x height PNGs.
func PNGCapability(width, height int) ImageCapability {
	return func() (Renderer, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: invalid size %dx%d", ErrImagingUnavailable, width, height)
		}
		return &PNGRenderer{
			Width:      width,
			Height:     height,
			Background: color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff}, // lightblue
			Foreground: color.Black,
			Origin:     image.Pt(50, 150),
		}, nil
	}
}

// PNGRenderer paints a solid background and the caption in a fixed bitmap face.
type PNGRenderer struct {
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
	Origin     image.Point
}

func (r *PNGRenderer) Ext() string { return ".png" }

func (r *PNGRenderer) Render(w io.Writer, caption []string) error {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.Foreground),
		Face: face,
	}
	for i, line := range caption {
		d.Dot = fixed.P(r.Origin.X, r.Origin.Y+i*lineHeight)
		d.DrawString(line)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
