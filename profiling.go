package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"sync"
)

// startCPUProfile samples the process into path until the returned func
// runs. Calling it again is a no-op.
func startCPUProfile(path string, log *slog.Logger) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("cpu profile %s: %w", path, err)
	}
	log.Info("cpu profile started", slog.String("path", path))
	var once sync.Once
	return func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Warn("cpu profile close failed", slog.String("path", path), slog.Any("err", err))
				return
			}
			log.Info("cpu profile written", slog.String("path", path))
		})
	}, nil
}
