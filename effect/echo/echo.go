// Package echo implements GlobalEcho, a tapped delay line: each tap reads
// the send bus some fixed delay in the past and adds it into the master bus
// at its own gain. Taps are held as a small slice of caller-specified
// parameters behind a mutex and resolved once per block.
package echo

import (
	"sync"
	"time"
)

// Tap is one delay-and-add stage of an Echo.
type Tap struct {
	Delay time.Duration
	Gain  float64
}

// Echo is a multi-tap delay line shared by every channel it was built for.
type Echo struct {
	mu         sync.Mutex
	channels   int
	sampleRate int

	line     []float32
	capacity int
	writePos int

	taps []Tap
}

// New returns an Echo with channels output channels at sampleRate, able to
// hold taps up to maxDelay in the past.
func New(channels, sampleRate int, maxDelay time.Duration) *Echo {
	capacity := int(maxDelay.Seconds()*float64(sampleRate)) + 1
	if capacity < 1 {
		capacity = 1
	}
	return &Echo{
		channels:   channels,
		sampleRate: sampleRate,
		capacity:   capacity,
		line:       make([]float32, capacity*channels),
	}
}

func (e *Echo) Channels() int { return e.channels }

// SetTaps replaces the full set of taps. Taps whose delay doesn't fit
// within the capacity New was given are silently skipped in Process.
func (e *Echo) SetTaps(taps []Tap) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.taps = append([]Tap(nil), taps...)
}

// Taps returns the current tap set.
func (e *Echo) Taps() []Tap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Tap(nil), e.taps...)
}

func (e *Echo) Process(busIn, busOut []float32, frames int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for f := 0; f < frames; f++ {
		base := f * e.channels
		lineBase := e.writePos * e.channels
		copy(e.line[lineBase:lineBase+e.channels], busIn[base:base+e.channels])

		for _, tap := range e.taps {
			delayFrames := int(tap.Delay.Seconds() * float64(e.sampleRate))
			if delayFrames <= 0 || delayFrames >= e.capacity {
				continue
			}
			readPos := e.writePos - delayFrames
			for readPos < 0 {
				readPos += e.capacity
			}
			readBase := readPos * e.channels
			gain := float32(tap.Gain)
			for c := 0; c < e.channels; c++ {
				busOut[base+c] += e.line[readBase+c] * gain
			}
		}

		e.writePos++
		if e.writePos >= e.capacity {
			e.writePos = 0
		}
	}
}
