package main

import (
	"math"
	"sync"
)

// normAudioStream turns the per-frame engine norm into a held 16-bit
// stereo sample. It is read on the audio goroutine.
type normAudioStream struct {
	mu     sync.Mutex
	sample float32
	dc     float32
}

func newNormAudioStream() *normAudioStream {
	return &normAudioStream{}
}

// SetNorm feeds the latest norm. The slowly varying mean is removed so a
// settled field goes quiet.
func (s *normAudioStream) SetNorm(norm float64) {
	v := float32(math.Max(-1, math.Min(1, norm*audioGain)))
	s.mu.Lock()
	s.dc += audioDCAlpha * (v - s.dc)
	s.sample = v - s.dc
	s.mu.Unlock()
}

func (s *normAudioStream) Read(p []byte) (int, error) {
	// Whole stereo frames only, 4 bytes each.
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	sample := s.sample
	s.mu.Unlock()

	v := int16(sample * pcm16MaxValue)
	for i := 0; i < frameBytes; i += 4 {
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *normAudioStream) Close() error { return nil }
