package terrain

import "image"

// Extract scans the silhouette top to bottom in every stride-th column and
// records the first pixel whose alpha exceeds threshold, scaled by scale in
// both axes. Columns with no such pixel contribute nothing, so a blank image
// yields an empty curve.
func Extract(img image.Image, stride int, scale float64, threshold uint8) Curve {
	if stride < 1 {
		stride = 1
	}

	b := img.Bounds()
	pts := make(Curve, 0, b.Dx()/stride+1)

	for x := b.Min.X; x < b.Max.X; x += stride {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) > threshold {
				pts = append(pts, Point{
					X: float64(x-b.Min.X) * scale,
					Y: float64(y-b.Min.Y) * scale,
				})
				break
			}
		}
	}
	return pts
}
