package console

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// NewSpinner creates an indeterminate progress indicator that clears itself when done.
func NewSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(spinnerInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Spin runs fn while a spinner animates on stderr. When enabled is false fn runs as is.
func Spin(description string, enabled bool, fn func() error) error {
	return SpinTo(os.Stderr, description, enabled, fn)
}

// SpinTo is Spin with an explicit destination.
func SpinTo(w io.Writer, description string, enabled bool, fn func() error) error {
	if !enabled {
		return fn()
	}

	bar := NewSpinner(w, description)
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	<-stopped
	_ = bar.Finish()
	return err
}
