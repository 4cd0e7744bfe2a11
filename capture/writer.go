package capture

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Writer saves each image on its own goroutine. At most n saves run at
// once; extra goroutines wait their turn without blocking Write.
//
// Every save targets the same Path, so the most recently finished save wins.
type Writer struct {
	Path string

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewWriter returns a Writer for path allowing n concurrent saves; n < 1 is
// treated as 1. Temporary files left by a previous process are removed.
func NewWriter(path string, n int64) *Writer {
	if n < 1 {
		n = 1
	}
	if err := Clean(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Println(err)
	}
	return &Writer{Path: path, sem: semaphore.NewWeighted(n)}
}

func (w *Writer) Write(img *image.NRGBA) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.sem.Acquire(context.Background(), 1); err != nil {
			logger.Println(err)
			return
		}
		defer w.sem.Release(1)
		if err := Save(w.Path, img); err != nil {
			logger.Println(err)
		}
	}()
}

// Wait blocks until all pending saves return.
func (w *Writer) Wait() { w.wg.Wait() }
