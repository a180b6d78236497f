// Package compose maps projected frames onto real pixel surfaces: overflow
// compositing, aspect cropping and thumbnail generation.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"filmsim-engine/internal/frame"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// FitOverflow composites src onto an opaque black canvas of the surface size.
// When the projected full frame exceeds the surface on either axis, both the
// frame and src are scaled down by the same factor so the whole frame stays
// visible instead of being cropped. Returns the canvas and the scale applied.
func FitOverflow(src *image.NRGBA, full, surface frame.Surface) (*image.NRGBA, float64) {
	scale := frame.OverflowScale(full, surface)

	canvas := image.NewNRGBA(image.Rect(0, 0, round(surface.Width), round(surface.Height)))
	fill(canvas, color.NRGBA{0, 0, 0, 255})

	sb := src.Bounds()
	w := round(float64(sb.Dx()) * scale)
	h := round(float64(sb.Dy()) * scale)
	if w <= 0 || h <= 0 {
		return canvas, scale
	}

	scaled := src
	if scale < 1 {
		scaled = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Src, nil)
	}

	// Center on the canvas
	offX := (canvas.Bounds().Dx() - w) / 2
	offY := (canvas.Bounds().Dy() - h) / 2
	draw.Draw(canvas, image.Rect(offX, offY, offX+w, offY+h), scaled, scaled.Bounds().Min, draw.Over)

	return canvas, scale
}

// CropAspect cuts the centered aspect-cropped region out of a composed canvas.
// cropped holds the unscaled target dimensions; scale is the factor returned
// by FitOverflow, so the crop tracks the composited frame.
func CropAspect(canvas *image.NRGBA, cropped frame.Surface, scale float64) *image.NRGBA {
	w := round(cropped.Width * scale)
	h := round(cropped.Height * scale)

	cb := canvas.Bounds()
	if w > cb.Dx() {
		w = cb.Dx()
	}
	if h > cb.Dy() {
		h = cb.Dy()
	}
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	x0 := cb.Min.X + (cb.Dx()-w)/2
	y0 := cb.Min.Y + (cb.Dy()-h)/2

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), canvas, image.Pt(x0, y0), draw.Src)
	return out
}

// Thumbnail downsamples img so its longer edge is at most maxEdge,
// preserving aspect ratio. Images already small enough pass through.
func Thumbnail(img *image.NRGBA, maxEdge int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	s := float64(maxEdge) / float64(w)
	if h > w {
		s = float64(maxEdge) / float64(h)
	}
	tw, th := round(float64(w)*s), round(float64(h)*s)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeWebP writes img as WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("compose: webp encode: %w", err)
	}
	return nil
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
