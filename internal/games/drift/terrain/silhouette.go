package terrain

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG silhouettes
	"math"
	"os"
)

// LoadSilhouette decodes a hill bitmap from disk.
func LoadSilhouette(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: cannot open silhouette: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("terrain: cannot decode silhouette %s: %w", path, err)
	}
	return img, nil
}

// DefaultSilhouette paints the built-in hill: a bumpy descent that ends in a
// kicker rising back to the starting height, filled solid down to the bottom
// edge on a transparent background.
func DefaultSilhouette(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	ground := color.NRGBA{R: 74, G: 140, B: 60, A: 255}
	for x := 0; x < w; x++ {
		u := float64(x) / float64(max(w-1, 1))
		top := int(math.Round(hillTop(u) * float64(h-1)))
		for y := top; y < h; y++ {
			img.SetNRGBA(x, y, ground)
		}
	}
	return img
}

// hillTop returns the surface as a fraction of the image height for u in [0, 1].
func hillTop(u float64) float64 {
	const (
		start   = 0.3
		bottom  = 0.8
		kickAt  = 0.82
		bumpAmp = 0.035
	)
	if u < kickAt {
		t := u / kickAt
		descent := start + (bottom-start)*smoothstep(t)
		// Bumps fade in and out so both ends stay smooth.
		bumps := bumpAmp * math.Sin(t*math.Pi*7) * math.Sin(t*math.Pi)
		return descent + bumps
	}
	t := (u - kickAt) / (1 - kickAt)
	return bottom - (bottom-start)*smoothstep(t)
}

func smoothstep(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}
