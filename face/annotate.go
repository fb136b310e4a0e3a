package face

import (
	"image"

	"github.com/fogleman/gg"
)

// Annotate draws the detection's bounding box and label onto a copy
// of the frame.
func Annotate(frame image.Image, rect image.Rectangle, label string) image.Image {
	dc := gg.NewContextForImage(frame)

	dc.SetRGB(0, 1, 0)
	dc.SetLineWidth(2)
	dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y),
		float64(rect.Dx()), float64(rect.Dy()))
	dc.Stroke()

	dc.DrawString(label, float64(rect.Min.X), float64(rect.Min.Y)-8)

	return dc.Image()
}
