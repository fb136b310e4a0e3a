//go:build screen

// Package video renders the live camera frame and the current access
// decision to a framebuffer display.
package video

import (
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/d21d3q/framebuffer"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return true
}

// Display owns the framebuffer and renders decision updates.
type Display struct {
	dc              *gg.Context
	pixBuffer       []byte
	backBuffer      []byte
	rgbaImage       *image.RGBA
	width           int
	height          int
	lineLengthBytes int
}

// New opens /dev/fb0 and shows the splash state.
func New() (*Display, error) {
	fb, err := framebuffer.OpenFrameBuffer("/dev/fb0", os.O_RDWR)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fb.VarScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fb.FixScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get fixed screen info: %w", err)
	}

	pix, err := fb.Pixels()
	if err != nil {
		return nil, fmt.Errorf("get pixel data: %w", err)
	}

	d := &Display{
		pixBuffer:       pix,
		width:           int(varInfo.XRes),
		height:          int(varInfo.YRes),
		lineLengthBytes: int(fixedInfo.LineLength),
	}
	d.backBuffer = make([]byte, d.height*d.lineLengthBytes)
	d.rgbaImage = image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	d.dc = gg.NewContextForRGBA(d.rgbaImage)

	log.Printf("Display: framebuffer %dx%d, %d bpp, stride %d bytes",
		d.width, d.height, varInfo.BitsPerPixel, d.lineLengthBytes)

	d.Splash()
	return d, nil
}

func (d *Display) setFontSize(size int) {
	fontPath := "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	if err := d.dc.LoadFontFace(fontPath, float64(size)); err != nil {
		log.Printf("Display: failed to load font: %v", err)
	}
}

// Splash renders the startup screen.
func (d *Display) Splash() {
	d.dc.SetRGB(0, 0, 0)
	d.dc.Clear()
	d.setFontSize(32)
	d.dc.SetRGB(1, 1, 1)
	d.dc.DrawStringAnchored("SMART DOOR SYSTEM", float64(d.width)/2, float64(d.height)/2, 0.5, 0.5)
	d.flip()
}

// Show renders the live frame (when present) with the resolved name
// and decision below it.
func (d *Display) Show(name, status string, frame image.Image) {
	d.dc.SetRGB(0, 0, 0)
	d.dc.Clear()

	textTop := float64(d.height) - 48

	if frame != nil {
		// Scale the frame to fit above the text area, preserving
		// aspect ratio.
		avail := image.Rect(0, 0, d.width, int(textTop)-8)
		target := fit(frame.Bounds(), avail)
		draw.ApproxBiLinear.Scale(d.rgbaImage, target, frame, frame.Bounds(), draw.Src, nil)
	}

	d.setFontSize(20)
	d.dc.SetRGB(1, 1, 1)
	d.dc.DrawStringAnchored("Name   : "+name, float64(d.width)/2, textTop, 0.5, 0.5)
	if status == "Granted" {
		d.dc.SetRGB(0, 1, 0)
	} else {
		d.dc.SetRGB(1, 0, 0)
	}
	d.dc.DrawStringAnchored("Status : "+status, float64(d.width)/2, textTop+24, 0.5, 0.5)

	d.flip()
}

// Shutdown blanks the display.
func (d *Display) Shutdown() {
	d.dc.SetRGB(0, 0, 0)
	d.dc.Clear()
	d.flip()
}

// Release frees the rendering buffers.
func (d *Display) Release() error {
	d.pixBuffer = nil
	d.backBuffer = nil
	return nil
}

// fit centers src inside bounds at the largest scale that preserves
// aspect ratio.
func fit(src, bounds image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	bw, bh := bounds.Dx(), bounds.Dy()
	if sw == 0 || sh == 0 || bw == 0 || bh == 0 {
		return bounds
	}

	w, h := bw, sh*bw/sw
	if h > bh {
		w, h = sw*bh/sh, bh
	}
	x := bounds.Min.X + (bw-w)/2
	y := bounds.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// flip converts the RGBA back buffer to RGB565 and copies it to the
// framebuffer in one pass.
func (d *Display) flip() {
	if d.pixBuffer == nil {
		return
	}
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			r, g, b, _ := d.rgbaImage.At(x, y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (y * d.lineLengthBytes) + (x * 2)
			if fbIdx+1 < len(d.backBuffer) {
				binary.LittleEndian.PutUint16(d.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(d.pixBuffer, d.backBuffer)
}
