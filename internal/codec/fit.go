package codec

import (
	"image"

	"github.com/disintegration/imaging"
)

// Fit scales img down so it fits inside maxWidth x maxHeight, keeping the
// aspect ratio. Images that already fit are returned unchanged.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	if img == nil || maxWidth <= 0 || maxHeight <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxWidth, maxHeight)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// FitSize returns the dimensions Fit produces for a w x h image.
func FitSize(w, h, maxWidth, maxHeight int) (int, int) {
	if w <= 0 || h <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return w, h
	}
	if w <= maxWidth && h <= maxHeight {
		return w, h
	}
	srcAspect := float64(w) / float64(h)
	maxAspect := float64(maxWidth) / float64(maxHeight)
	if srcAspect > maxAspect {
		nh := int(float64(maxWidth) / srcAspect)
		if nh < 1 {
			nh = 1
		}
		return maxWidth, nh
	}
	nw := int(float64(maxHeight) * srcAspect)
	if nw < 1 {
		nw = 1
	}
	return nw, maxHeight
}
