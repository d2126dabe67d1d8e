package main

import "time"

// Window layout, panel, and audio constants. The grid size and timing come
// from the config file and flags instead.
const (
	windowTitle        = "wavelab"
	panelWidth         = 180
	panelPad           = 10
	buttonWidth        = panelWidth - 2*panelPad
	buttonHeight       = 24
	lineHeight         = 16
	swatchSize         = 32
	debugGap           = 8
	audioSampleRate    = 48000
	audioBufferLatency = 80 * time.Millisecond
	audioGain          = 8.0
	audioDCAlpha       = 0.001
	pcm16MaxValue      = 32767
)
