package context

import (
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/source"
)

// maxEffectSlots bounds how many effect sends a single source can drive at
// once; sourceSetEffect addresses a slot in [0, maxEffectSlots).
const maxEffectSlots = 4

// effectSlot is one of a source's effect-send routes: which effect handle
// the send targets, and at what gain.
type effectSlot struct {
	target handle.Handle
	gain   float64
	active bool
}

// sourceEntry is a source's audio-thread-owned bookkeeping: which concrete
// kind backs it and its effect-send routing. Only the block loop ever
// reads or writes this; sourceAddGenerator/removeGenerator bypass it
// entirely since generatorSet already guards its own generator list.
type sourceEntry struct {
	handle  handle.Handle
	kind    handle.Type
	direct  *source.DirectSource
	panned  *source.PannedSource
	spatial *source.Source3D
	sends   [maxEffectSlots]effectSlot
}

// resolvedSends builds this block's []source.EffectSend from whatever
// slots are active, skipping any whose target effect isn't (or is no
// longer) part of the running effect set.
func (e *sourceEntry) resolvedSends(effects map[handle.Handle]*effectEntry) []source.EffectSend {
	var out []source.EffectSend
	for _, slot := range e.sends {
		if !slot.active {
			continue
		}
		eff, ok := effects[slot.target]
		if !ok {
			continue
		}
		out = append(out, source.EffectSend{Bus: eff.inputBus, Channels: eff.channels, Gain: slot.gain})
	}
	return out
}

// writeBlock dispatches to whichever concrete WriteBlock this entry's kind
// backs.
func (e *sourceEntry) writeBlock(master []float32, outputChannels, frames int, listener source.Listener, sends []source.EffectSend) {
	switch e.kind {
	case handle.TypeDirectSource:
		e.direct.WriteBlock(master, frames, sends)
	case handle.TypePannedSource:
		e.panned.WriteBlock(master, outputChannels, frames, sends)
	case handle.TypeSource3D:
		e.spatial.WriteBlock(master, outputChannels, frames, listener, sends)
	}
}
