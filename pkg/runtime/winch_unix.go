//go:build unix

package runtime

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// resizeWatcher forwards SIGWINCH to the render loop. Signals collapse into
// a single pending notification, same as frame requests.
type resizeWatcher struct {
	ch   chan struct{}
	sig  chan os.Signal
	done chan struct{}
}

// watchResize starts a watcher when the sink is a real terminal, nil
// otherwise.
func watchResize(sink io.Writer) *resizeWatcher {
	f, ok := sink.(*os.File)
	if !ok {
		return nil
	}
	if _, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err != nil {
		return nil
	}

	w := &resizeWatcher{
		ch:   make(chan struct{}, 1),
		sig:  make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(w.sig, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-w.sig:
				select {
				case w.ch <- struct{}{}:
				default:
				}
			case <-w.done:
				return
			}
		}
	}()
	return w
}

func (w *resizeWatcher) stop() {
	signal.Stop(w.sig)
	close(w.done)
}

// sinkSize queries the terminal window size behind the sink.
func sinkSize(sink io.Writer) (int, int, error) {
	f, ok := sink.(*os.File)
	if !ok {
		return 0, 0, errNotTerminal
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
