package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FromPremultiplied converts premultiplied RGBA bytes, as returned by
// ebiten.Image.ReadPixels or image.RGBA.Pix, to a straight-alpha image.
func FromPremultiplied(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pix), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// WritePNG encodes img to a PNG file at path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// ScreenshotPath builds a timestamped PNG path in dir for the given label.
func ScreenshotPath(dir, label string, now time.Time) string {
	name := fmt.Sprintf("%s_%s.png", now.Format("20060102_150405"), SanitizeLabel(label))
	return filepath.Join(dir, name)
}

// maxLabelLen bounds the label part of a screenshot file name.
const maxLabelLen = 48

// SanitizeLabel turns a script label into a file name fragment. Runs of
// unsafe characters become a single underscore, leading and trailing
// separators are dropped, and the result is cut to maxLabelLen. Labels with
// nothing usable become "unlabeled".
func SanitizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	gap := false
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			gap = false
			b.WriteRune(r)
		default:
			gap = true
		}
	}
	out := b.String()
	if len(out) > maxLabelLen {
		out = out[:maxLabelLen]
	}
	out = strings.Trim(out, "_.")
	if out == "" {
		return "unlabeled"
	}
	return out
}
