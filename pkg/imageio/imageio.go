// Package imageio writes rendered framebuffers to disk.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned by Save for unknown file extensions
var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

// WritePPM writes a binary P6 image, top row first. Colors are clamped to
// [0,1] and written linearly with 8 bits per channel.
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}

	row := make([]byte, 3*fb.Width)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp(0, 1)
			row[3*x] = uint8(c.X * 255)
			row[3*x+1] = uint8(c.Y * 255)
			row[3*x+2] = uint8(c.Z * 255)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePNG writes a gamma corrected 8-bit PNG
func WritePNG(w io.Writer, fb *renderer.Framebuffer, gamma float64) error {
	return png.Encode(w, fb.ToRGBA(gamma))
}

// Save writes fb to path, choosing the format from the extension (.png or .ppm).
// Missing parent directories are created.
func Save(path string, fb *renderer.Framebuffer, gamma float64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".ppm" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if ext == ".png" {
		err = WritePNG(file, fb, gamma)
	} else {
		err = WritePPM(file, fb)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
