package context

import (
	"github.com/kvaudio/syzgo/effect"
	"github.com/kvaudio/syzgo/internal/handle"
)

// effectEntry is a registered global effect: its input send bus, owned and
// zeroed by the context once per block, and the Effect implementation that
// reads it and adds into master.
type effectEntry struct {
	handle   handle.Handle
	channels int
	inputBus []float32
	impl     effect.Effect
}

func (e *effectEntry) zero() {
	for i := range e.inputBus {
		e.inputBus[i] = 0
	}
}
