//go:build !unix

package runtime

import "io"

// resizeWatcher is inert on platforms without SIGWINCH.
type resizeWatcher struct {
	ch chan struct{}
}

func watchResize(io.Writer) *resizeWatcher { return nil }

func (w *resizeWatcher) stop() {}

func sinkSize(io.Writer) (int, int, error) {
	return 0, 0, errNotTerminal
}
