// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/decode/formats/aiff"
	"github.com/kvaudio/syzgo/decode/formats/mp3"
	"github.com/kvaudio/syzgo/decode/formats/opus"
	"github.com/kvaudio/syzgo/decode/formats/vorbis"
	"github.com/kvaudio/syzgo/decode/formats/wav"
)

// defaultDecoders builds a decode.Registry carrying every format this
// package knows how to decode out of the box. Built fresh per call rather
// than shared, since decode.Registry guards its map with its own mutex and
// there's no reason to contend across unrelated decodes.
func defaultDecoders() *decode.Registry {
	r := decode.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("vorbis", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("opus", opus.Decoder{})
	return r
}
