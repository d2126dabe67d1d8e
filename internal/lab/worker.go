package lab

import "golang.org/x/sync/errgroup"

// rowBand is a half-open range of rows handled by one goroutine.
type rowBand struct{ y0, y1 int }

// splitRows distributes the interior rows across workers.
func splitRows(height, workers int) []rowBand {
	if workers < 1 {
		workers = 1
	}
	first, last := 1, height-1
	rows := last - first
	if rows <= 0 {
		return nil
	}
	per := (rows + workers - 1) / workers
	bands := make([]rowBand, 0, workers)
	for y := first; y < last; y += per {
		bands = append(bands, rowBand{y0: y, y1: min(y+per, last)})
	}
	return bands
}

// eachBand runs fn over every band and waits for all of them.
func eachBand(bands []rowBand, fn func(y0, y1 int)) {
	if len(bands) == 1 {
		fn(bands[0].y0, bands[0].y1)
		return
	}
	var g errgroup.Group
	for _, b := range bands {
		g.Go(func() error {
			fn(b.y0, b.y1)
			return nil
		})
	}
	_ = g.Wait()
}
