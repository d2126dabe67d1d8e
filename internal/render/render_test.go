package render

import (
	"errors"
	"testing"

	"wavelab/internal/engine"
)

type countingSurface struct {
	writes int
	last   []byte
}

func (c *countingSurface) WritePixels(pix []byte) {
	c.writes++
	c.last = append(c.last[:0], pix...)
}

func TestBlitSingleWrite(t *testing.T) {
	var clock engine.Epoch
	buf := make([]byte, engine.PixelLen(3, 2))
	buf[5] = 9
	s := &countingSurface{}
	r := NewRenderer(s, 3, 2)
	if err := r.Blit(engine.NewPixels(buf, 3, 2, &clock)); err != nil {
		t.Fatal(err)
	}
	if s.writes != 1 || len(s.last) != 24 || s.last[5] != 9 {
		t.Fatalf("writes=%d len=%d", s.writes, len(s.last))
	}
}

func TestBlitRejectsStaleAndMisshaped(t *testing.T) {
	var clock engine.Epoch
	s := &countingSurface{}
	r := NewRenderer(s, 3, 2)

	stale := engine.NewPixels(make([]byte, 24), 3, 2, &clock)
	clock.Advance()
	if err := r.Blit(stale); !errors.Is(err, ErrStaleView) {
		t.Errorf("stale: got %v", err)
	}
	wrong := engine.NewPixels(make([]byte, 16), 2, 2, &clock)
	if err := r.Blit(wrong); !errors.Is(err, ErrViewSize) {
		t.Errorf("misshaped: got %v", err)
	}
	if s.writes != 0 {
		t.Errorf("rejected views reached the surface %d times", s.writes)
	}
}

func TestImageSurface(t *testing.T) {
	var clock engine.Epoch
	buf := make([]byte, engine.PixelLen(2, 2))
	for i := range buf {
		buf[i] = byte(i)
	}
	s := NewImageSurface(2, 2)
	if err := NewRenderer(s, 2, 2).Blit(engine.NewPixels(buf, 2, 2, &clock)); err != nil {
		t.Fatal(err)
	}
	c := s.RGBAAt(1, 1)
	if c.R != 12 || c.G != 13 || c.B != 14 || c.A != 15 {
		t.Errorf("pixel (1,1) = %+v", c)
	}
}

type debugSource struct {
	view engine.Pixels
	err  error
	hits int
}

func (d *debugSource) CurrentDebugImage() (engine.Pixels, error) {
	d.hits++
	return d.view, d.err
}

func TestOverlayResolvesEveryTrigger(t *testing.T) {
	var clock engine.Epoch
	src := &debugSource{view: engine.NewPixels(make([]byte, 16), 2, 2, &clock)}
	s := &countingSurface{}
	o := NewOverlay(src, NewRenderer(s, 2, 2))
	if o.Shown() {
		t.Fatal("overlay shown before trigger")
	}
	for i := 0; i < 3; i++ {
		if err := o.Trigger(); err != nil {
			t.Fatal(err)
		}
	}
	if src.hits != 3 || s.writes != 3 || !o.Shown() {
		t.Fatalf("hits=%d writes=%d", src.hits, s.writes)
	}

	src.err = errors.New("no buffer")
	if err := o.Trigger(); err == nil {
		t.Fatal("expected source error")
	}
}
