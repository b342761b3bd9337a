// Package browser launches the operator's default web browser once the
// server is listening. Launching is best effort: a missing browser or a
// headless machine only produces a warning.
package browser

import (
	"io"

	"devserve/core/server"

	pkgbrowser "github.com/pkg/browser"
	"go.uber.org/zap"
)

// Opener opens a URL in a browser.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// Default returns the platform opener. The launched process's output is
// discarded so it does not interleave with the server's console output.
func Default() Opener {
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	return OpenerFunc(pkgbrowser.OpenURL)
}

// Hook returns a server start hook that opens url with o.
func Hook(o Opener, logger *zap.Logger) server.StartHook {
	return func(url string) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("Browser launch panicked", zap.Any("panic", r), zap.String("url", url))
			}
		}()
		if err := o.Open(url); err != nil {
			logger.Warn("Could not open browser", zap.String("url", url), zap.Error(err))
			return
		}
		logger.Debug("Opened browser", zap.String("url", url))
	}
}
