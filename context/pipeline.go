package context

import (
	"time"

	"github.com/kvaudio/syzgo/internal/handle"
)

// runLoop paces runBlock at the configured block period using a ticker,
// since device.AudioDevice.WriteBlock is expected to be push/non-blocking
// rather than something the caller can simply block on for pacing.
func (c *Context) runLoop() {
	defer close(c.doneCh)

	period := time.Duration(float64(c.opts.BlockSize) / float64(c.opts.SampleRate) * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.runBlock()
		}
	}
}

// runBlock is the one iteration of real-time mixing a context performs per
// block, run only from the audio thread (the single goroutine runLoop
// drives). Each numbered step below is load-bearing order, not an
// implementation detail:
//
//  1. advance the deferred-deletion iteration counter
//  2. drain up to MaxInvokablesPerBlock queued invokables
//  3. flush every queued property write onto its target's shadow copy
//  4. snapshot the listener transform for this block
//  5. mix every live source into master and into any bound effect sends
//  6. run every registered effect, adding its output into master
//  7. ramp master gain and hand the block to the device
//  8. release dead sources and run due deferred destructors
func (c *Context) runBlock() {
	c.deleter.Advance()
	c.invokables.Drain(c.opts.MaxInvokablesPerBlock)
	c.propRing.Flush(c.applyWrite)

	listener := c.listener

	c.mu.Lock()
	for i := range c.master {
		c.master[i] = 0
	}
	for _, eff := range c.effects {
		eff.zero()
	}

	frames := c.opts.BlockSize
	outputChannels := c.opts.OutputChannels

	var dead []handle.Handle
	for _, h := range c.sourceOrder {
		entry, ok := c.sources[h]
		if !ok {
			continue
		}
		if c.registry.IsPermanentlyDead(h) {
			dead = append(dead, h)
			continue
		}
		sends := entry.resolvedSends(c.effects)
		entry.writeBlock(c.master, outputChannels, frames, listener, sends)
	}

	for _, eff := range c.effects {
		eff.impl.Process(eff.inputBus, c.master, frames)
	}

	start, step := c.masterGain.ApplyBlockScalar(frames)
	for f := 0; f < frames; f++ {
		g := float32(start + step*float64(f+1))
		base := f * outputChannels
		for ch := 0; ch < outputChannels; ch++ {
			c.master[base+ch] *= g
		}
	}
	c.mu.Unlock()

	if err := c.device.WriteBlock(c.master); err != nil {
		c.logf("context: device write failed: %v", err)
	}

	if len(dead) > 0 {
		c.mu.Lock()
		for _, h := range dead {
			delete(c.sources, h)
		}
		c.sourceOrder = pruneDead(c.sourceOrder, c.sources)
		c.mu.Unlock()
	}
	c.deleter.RunDue()
}

func pruneDead(order []handle.Handle, live map[handle.Handle]*sourceEntry) []handle.Handle {
	kept := order[:0]
	for _, h := range order {
		if _, ok := live[h]; ok {
			kept = append(kept, h)
		}
	}
	return kept
}
