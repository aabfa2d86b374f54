// Package opus decodes Ogg-encapsulated Opus streams into decode.Source.
package opus

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kvaudio/syzgo/decode"
	"github.com/thesyncim/gopus"
)

const outputSampleRate = 48000

type source struct {
	reader   *gopus.Reader
	channels int
	tmp      []byte
}

func (s *source) SampleRate() int { return outputSampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	bytesNeeded := len(dst) * 4
	if cap(s.tmp) < bytesNeeded {
		s.tmp = make([]byte, bytesNeeded)
	}
	s.tmp = s.tmp[:bytesNeeded]

	n, err := io.ReadFull(s.reader, s.tmp)
	if n == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.EOF
		}
		return 0, err
	}

	samples := n / 4
	for i := 0; i < samples; i++ {
		bits := binary.LittleEndian.Uint32(s.tmp[i*4 : i*4+4])
		dst[i] = math.Float32frombits(bits)
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samples, err
}

// Decoder decodes an Ogg Opus stream.
type Decoder struct{}

// Decode parses r's Ogg container, locates the OpusHead header to recover
// the stream's channel count, and wires the remaining packets through
// gopus's streaming Reader.
func (Decoder) Decode(r io.Reader) (decode.Source, error) {
	demux := newOggDemuxer(r)

	head, err := demux.NextPacket()
	if err != nil {
		return nil, fmt.Errorf("reading OpusHead: %w", err)
	}
	channels, err := parseOpusHead(head)
	if err != nil {
		return nil, err
	}

	// Second packet is OpusTags (comment header); skip it.
	if _, err := demux.NextPacket(); err != nil {
		return nil, fmt.Errorf("reading OpusTags: %w", err)
	}

	reader, err := gopus.NewReader(outputSampleRate, channels, demux, gopus.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("creating opus reader: %w", err)
	}

	return &source{reader: reader, channels: channels}, nil
}

func parseOpusHead(packet []byte) (channels int, err error) {
	if len(packet) < 19 || string(packet[:8]) != "OpusHead" {
		return 0, ErrNotOggOpus
	}
	channels = int(packet[9])
	if channels < 1 {
		return 0, ErrNotOggOpus
	}
	return channels, nil
}
