// Package headless implements device.AudioDevice with no real audio
// output at all, grounded on IntuitionAmiga-IntuitionEngine's
// audio_backend_headless.go: the same shape as the real backend, minus
// the actual playback, so tests and CI can run a context without a sound
// card.
package headless

import "sync"

// Device discards every block it's handed, optionally keeping the most
// recent ones around for tests that want to assert on rendered output.
type Device struct {
	sampleRate int
	channels   int

	mu      sync.Mutex
	history []float32
	keep    int
}

// New returns a Device for sampleRate/channels. keep is how many of the
// most recently written blocks the device retains for LastBlock; 0
// disables history entirely.
func New(sampleRate, channels, keep int) *Device {
	return &Device{sampleRate: sampleRate, channels: channels, keep: keep}
}

func (d *Device) SampleRate() int { return d.sampleRate }
func (d *Device) Channels() int   { return d.channels }

func (d *Device) WriteBlock(block []float32) error {
	if d.keep <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = append(d.history, block...)
	max := d.keep * len(block)
	if len(d.history) > max {
		d.history = d.history[len(d.history)-max:]
	}
	return nil
}

// LastBlock returns a copy of the most recently written block, or nil if
// none has been written yet (or history is disabled).
func (d *Device) LastBlock(frames int) []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := frames * d.channels
	if n == 0 || n > len(d.history) {
		return nil
	}
	out := make([]float32, n)
	copy(out, d.history[len(d.history)-n:])
	return out
}

func (d *Device) Close() error { return nil }
