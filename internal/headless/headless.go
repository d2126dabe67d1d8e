// Package headless drives a session without a window: frames are pumped
// off a ticker instead of the display loop.
package headless

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"wavelab/internal/engine"
	"wavelab/internal/frame"
	"wavelab/internal/inspect"
	"wavelab/internal/logging"
	"wavelab/internal/pointer"
	"wavelab/internal/render"
	"wavelab/internal/session"
)

// ErrNoFrames is returned when the run ended before any frame fired.
var ErrNoFrames = errors.New("headless: no frames ran")

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Options describes one headless run.
type Options struct {
	Frames   int
	Interval time.Duration
	// Snapshot is a PNG path for the final canvas. Empty skips it.
	Snapshot string
	// Clicks are grid cells forced before the loop starts, as [x, y].
	Clicks        [][2]int
	ForceMode     engine.ForceMode
	IntensityOnly bool
	Logger        *slog.Logger
}

// Report summarizes a finished run.
type Report struct {
	Frames   uint64
	FPS      int
	Norms    []float64
	Elapsed  time.Duration
	Snapshot string
	Forced   []int
	// Hover is the hue reading at the first click, or the grid center.
	Hover inspect.HueSample
}

// recorder collects readouts a window would display.
type recorder struct {
	norm   func() float64
	fps    int
	frames uint64
	norms  []float64
	css    string
	text   string
}

func (r *recorder) SetFPS(fps int) { r.fps = fps }

func (r *recorder) SetFrameCount(n uint64) {
	r.frames = n
	if r.norm != nil {
		r.norms = append(r.norms, r.norm())
	}
}

func (r *recorder) SetBackground(css string)       { r.css = css }
func (r *recorder) SetText(text string)            { r.text = text }
func (r *recorder) SetRunLabel(string, color.RGBA) {}

// gridElement places the canvas at the origin at one client unit per
// cell, so client coordinates are grid coordinates.
type gridElement struct{ w, h int }

func (e gridElement) BoundingRect() pointer.Rect {
	return pointer.Rect{Width: float64(e.w), Height: float64(e.h)}
}

func (e gridElement) CanvasSize() (int, int) { return e.w, e.h }

// Run pumps the engine for opts.Frames frames or until ctx is done.
func Run(ctx context.Context, eng engine.Engine, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("headless: interval %v must be positive", opts.Interval)
	}

	w, h := eng.Dimensions()
	canvas := render.NewImageSurface(w, h)
	debug := render.NewImageSurface(w, h)
	rec := &recorder{}
	q := frame.NewQueue()
	s := session.New(eng, q, canvas, debug, rec, session.Options{
		ForceMode:     opts.ForceMode,
		IntensityOnly: opts.IntensityOnly,
		Logger:        log,
	})
	rec.norm = s.Norm
	if err := s.Paint(); err != nil {
		return nil, fmt.Errorf("headless: first paint: %w", err)
	}

	el := gridElement{w: w, h: h}
	report := &Report{}
	for _, c := range opts.Clicks {
		idx, ok := s.PointerDown(float64(c[0]), float64(c[1]), el)
		if !ok {
			log.Warn("click dropped", slog.Int("x", c[0]), slog.Int("y", c[1]))
			continue
		}
		report.Forced = append(report.Forced, idx)
	}

	start := time.Now()
	s.ToggleRun()
	fired := frame.Pump(ctx, q, opts.Interval, opts.Frames)
	s.Stop()
	report.Elapsed = time.Since(start)
	log.Info("headless run finished",
		slog.Int("frames", fired), slog.Duration("elapsed", report.Elapsed))

	state := s.State()
	report.Frames = state.FrameCount
	report.FPS = rec.fps
	report.Norms = rec.norms
	if report.Frames == 0 {
		return report, ErrNoFrames
	}

	hx, hy := w/2, h/2
	if len(opts.Clicks) > 0 {
		hx, hy = opts.Clicks[0][0], opts.Clicks[0][1]
	}
	if hover, ok := s.PointerMove(float64(hx), float64(hy), el, canvas); ok {
		report.Hover = hover
	}

	if opts.Snapshot != "" {
		if err := writePNG(opts.Snapshot, canvas); err != nil {
			return report, err
		}
		report.Snapshot = opts.Snapshot
	}
	return report, ctx.Err()
}

func writePNG(path string, s *render.ImageSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("headless: snapshot: %w", err)
	}
	if err := png.Encode(f, s.RGBA); err != nil {
		f.Close()
		return fmt.Errorf("headless: encode %s: %w", path, err)
	}
	return f.Close()
}

// Render writes a styled summary. With plot set, the per-frame norm
// history is drawn as an ASCII chart.
func (r *Report) Render(w io.Writer, plot bool) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render("wavelab headless run"))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("frames", fmt.Sprintf("%d", r.Frames))
	row("fps", fmt.Sprintf("%d", r.FPS))
	row("elapsed", r.Elapsed.Round(time.Millisecond).String())
	if n := len(r.Norms); n > 0 {
		row("norm", fmt.Sprintf("%.6g", r.Norms[n-1]))
	}
	row("hue", r.Hover.Label()+" "+r.Hover.CSS())
	if len(r.Forced) > 0 {
		row("forced", fmt.Sprint(r.Forced))
	}
	if r.Snapshot != "" {
		row("snapshot", r.Snapshot)
	}
	if plot && len(r.Norms) > 1 {
		chart := asciigraph.Plot(r.Norms,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("norm per frame"),
		)
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
