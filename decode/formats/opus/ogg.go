package opus

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrNotOggOpus is returned when the input isn't a recognizable Ogg/Opus
// stream.
var ErrNotOggOpus = errors.New("not an Ogg Opus stream")

// oggDemuxer reads Ogg pages from r and reassembles the Opus packets of the
// first logical bitstream it sees, discarding any other multiplexed
// streams. Minimal by design: no seeking, no multi-stream Opus
// (channel mapping families 1+), no page checksum verification.
type oggDemuxer struct {
	r          io.Reader
	serial     uint32
	haveSerial bool
	pending    [][]byte // packets extracted from the most recently read page
	idx        int
	eof        bool
}

func newOggDemuxer(r io.Reader) *oggDemuxer {
	return &oggDemuxer{r: r}
}

// NextPacket implements gopus.PacketSource.
func (d *oggDemuxer) NextPacket() ([]byte, error) {
	for {
		if d.idx < len(d.pending) {
			p := d.pending[d.idx]
			d.idx++
			return p, nil
		}
		if d.eof {
			return nil, io.EOF
		}
		if err := d.readPage(); err != nil {
			return nil, err
		}
	}
}

func (d *oggDemuxer) readPage() error {
	var magic [4]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			d.eof = true
			return io.EOF
		}
		return err
	}
	if string(magic[:]) != "OggS" {
		return ErrNotOggOpus
	}

	var rest [23]byte // version, header_type, granule(8), serial(4), seq(4), checksum(4), segments(1) minus the 1 already implied
	if _, err := io.ReadFull(d.r, rest[:]); err != nil {
		return io.ErrUnexpectedEOF
	}

	headerType := rest[1]
	serial := binary.LittleEndian.Uint32(rest[10:14])
	numSegments := int(rest[22])

	laceTable := make([]byte, numSegments)
	if _, err := io.ReadFull(d.r, laceTable); err != nil {
		return io.ErrUnexpectedEOF
	}

	segments := make([][]byte, 0, numSegments)
	for _, lace := range laceTable {
		buf := make([]byte, lace)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return io.ErrUnexpectedEOF
		}
		segments = append(segments, buf)
	}

	// bos: beginning of a logical stream. We lock onto the first one seen
	// and ignore pages from any other serial number (e.g. chained/parallel
	// streams we don't support demuxing).
	if headerType&0x02 != 0 && !d.haveSerial {
		d.serial = serial
		d.haveSerial = true
	}
	if !d.haveSerial || serial != d.serial {
		d.pending = nil
		d.idx = 0
		return nil
	}

	if headerType&0x04 != 0 {
		d.eof = true
	}

	// Reassemble packets: a lacing value of 255 means the packet continues
	// into the next segment; anything less terminates it. Packets are only
	// reassembled within one page: the continuation flag (header_type &
	// 0x01) is ignored, and a packet still unterminated at the end of the
	// page is emitted as a packet of its own rather than joined with the
	// next page's leading segments.
	var packets [][]byte
	var cur []byte
	for i, seg := range segments {
		cur = append(cur, seg...)
		if laceTable[i] < 255 {
			packets = append(packets, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		packets = append(packets, cur)
	}

	d.pending = packets
	d.idx = 0
	return nil
}
