// Package capture schedules delayed pickup of in-flight frame readbacks and
// writes the resulting images to disk off the render goroutine.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

var logger = log.New(os.Stderr, "capture: ", 0)

// SetOutput redirects package diagnostics.
func SetOutput(l *log.Logger) { logger = l }

// Transfer is an in-flight readback. Finish may block if the readback is
// not yet complete and must be called from the goroutine that owns the
// graphics context.
type Transfer interface {
	Finish() (*image.NRGBA, error)
}

// tempPrefix names the temporary siblings Save creates for path.
func tempPrefix(path string) string { return "." + filepath.Base(path) + "." }

// Save flips img vertically, converting from bottom-up framebuffer rows, and
// writes it to path in the format named by its extension. The image is
// encoded in memory, written to a temporary file beside path and renamed over
// it, so concurrent saves to one path leave the last complete image rather
// than a mix.
func Save(path string, img image.Image) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("capture: save %s: %w", path, err)
		}
	}()

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.FlipV(img), format); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), tempPrefix(path)+"*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Clean removes temporary files left beside path by saves interrupted at
// process exit.
func Clean(path string) error {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("capture: clean %s: %w", path, err)
	}
	prefix := tempPrefix(path)
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasPrefix(e.Name(), prefix) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return fmt.Errorf("capture: clean %s: %w", path, err)
			}
		}
	}
	return nil
}
