package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"wavelab/internal/config"
	"wavelab/internal/engine"
	"wavelab/internal/frame"
	"wavelab/internal/inspect"
	"wavelab/internal/session"
)

// panel holds the side-panel readouts. The session writes it during
// Update and Draw reads it.
type panel struct {
	fps      int
	frames   uint64
	swatch   color.NRGBA
	swatchOK bool
	hueText  string
	runLabel string
	runColor color.RGBA
	log      *slog.Logger
}

func (p *panel) SetFPS(fps int)         { p.fps = fps }
func (p *panel) SetFrameCount(n uint64) { p.frames = n }
func (p *panel) SetText(text string)    { p.hueText = text }

func (p *panel) SetRunLabel(label string, c color.RGBA) {
	p.runLabel, p.runColor = label, c
}

// SetBackground stores the swatch color. The session hands over CSS text,
// so it is parsed back here.
func (p *panel) SetBackground(css string) {
	c, err := inspect.ParseCSS(css)
	if err != nil {
		p.log.Warn("bad swatch color", slog.String("css", css), slog.Any("err", err))
		return
	}
	p.swatch, p.swatchOK = c, true
}

// Game owns the window side of a session: the frame queue it fires every
// tick, the canvases it draws, and the panel.
type Game struct {
	cfg     *config.Config
	log     *slog.Logger
	session *session.Session
	queue   *frame.Queue
	panel   *panel

	canvas *ebiten.Image
	debug  *ebiten.Image

	// Set by Layout.
	outsideW, outsideH int
	canvasRect         image.Rectangle
	buttons            []button

	showStats bool
	lastX     int
	lastY     int

	audioStream *normAudioStream
	audioPlayer *audio.Player
}

// newGame builds a stopped session over eng and paints its first image.
func newGame(cfg *config.Config, eng engine.Engine, log *slog.Logger, showStats bool) (*Game, error) {
	w, h := eng.Dimensions()
	g := &Game{
		cfg:       cfg,
		log:       log,
		queue:     frame.NewQueue(),
		panel:     &panel{log: log, hueText: "-"},
		canvas:    ebiten.NewImage(w, h),
		debug:     ebiten.NewImage(w, h),
		showStats: showStats,
		lastX:     -1,
		lastY:     -1,
	}
	g.session = session.New(eng, g.queue, g.canvas, g.debug, g.panel, session.Options{
		ForceMode:     engine.ForceMode(cfg.ForceMode),
		IntensityOnly: cfg.IntensityOnly,
		Logger:        log,
	})
	if err := g.session.Paint(); err != nil {
		return nil, fmt.Errorf("first paint: %w", err)
	}
	g.buttons = g.newButtons()

	if cfg.Audio {
		ctx := audio.NewContext(audioSampleRate)
		g.audioStream = newNormAudioStream()
		player, err := ctx.NewPlayer(g.audioStream)
		if err != nil {
			log.Warn("audio player creation failed", slog.Any("err", err))
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferLatency)
			g.audioPlayer.Play()
		}
	}
	return g, nil
}

// Update handles input, then fires whatever frame the scheduler asked for.
func (g *Game) Update() error {
	g.handleKeys()
	g.handlePointer()
	g.queue.Fire()
	if g.audioStream != nil && g.session.State().Running {
		g.audioStream.SetNorm(g.session.Norm())
	}
	return nil
}

// adjustForceMode moves the damping shift by delta within config bounds.
func (g *Game) adjustForceMode(delta int) {
	m := int(g.session.ForceMode()) + delta
	m = max(0, min(m, config.MaxForceMode))
	g.session.SetForceMode(engine.ForceMode(m))
	g.log.Debug("force mode", slog.Int("mode", m))
}
