package opus

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func buildOggPage(serial uint32, headerType byte, granule uint64, segments [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("OggS")
	buf.WriteByte(0) // version
	buf.WriteByte(headerType)

	var granuleBuf [8]byte
	binary.LittleEndian.PutUint64(granuleBuf[:], granule)
	buf.Write(granuleBuf[:])

	var serialBuf [4]byte
	binary.LittleEndian.PutUint32(serialBuf[:], serial)
	buf.Write(serialBuf[:])

	buf.Write([]byte{0, 0, 0, 0}) // sequence number
	buf.Write([]byte{0, 0, 0, 0}) // checksum (unused by the demuxer)

	lacing := make([]byte, 0, len(segments))
	var payload bytes.Buffer
	for _, seg := range segments {
		lacing = append(lacing, byte(len(seg)))
		payload.Write(seg)
	}
	buf.WriteByte(byte(len(segments)))
	buf.Write(lacing)
	buf.Write(payload.Bytes())

	return buf.Bytes()
}

func TestOggDemuxerReassemblesPackets(t *testing.T) {
	p1 := []byte("OpusHead-fake-header-data")
	p2 := []byte("OpusTags-fake")
	p3 := []byte("frame-one")

	page1 := buildOggPage(42, 0x02, 0, [][]byte{p1, p2})
	page2 := buildOggPage(42, 0x04, 100, [][]byte{p3})

	r := bytes.NewReader(append(page1, page2...))
	d := newOggDemuxer(r)

	got1, err := d.NextPacket()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got1, p1) {
		t.Fatalf("packet 1 mismatch: got %q want %q", got1, p1)
	}

	got2, err := d.NextPacket()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got2, p2) {
		t.Fatalf("packet 2 mismatch: got %q want %q", got2, p2)
	}

	got3, err := d.NextPacket()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got3, p3) {
		t.Fatalf("packet 3 mismatch: got %q want %q", got3, p3)
	}

	if _, err := d.NextPacket(); err != io.EOF {
		t.Fatalf("expected io.EOF after last packet, got %v", err)
	}
}

func TestOggDemuxerIgnoresForeignSerial(t *testing.T) {
	ours := buildOggPage(1, 0x02, 0, [][]byte{[]byte("mine")})
	theirs := buildOggPage(2, 0x00, 0, [][]byte{[]byte("not mine")})
	more := buildOggPage(1, 0x04, 0, [][]byte{[]byte("mine-again")})

	r := bytes.NewReader(append(append(ours, theirs...), more...))
	d := newOggDemuxer(r)

	p1, err := d.NextPacket()
	if err != nil || string(p1) != "mine" {
		t.Fatalf("expected first packet from our stream, got %q err=%v", p1, err)
	}
	p2, err := d.NextPacket()
	if err != nil || string(p2) != "mine-again" {
		t.Fatalf("expected second packet to skip the foreign stream's page, got %q err=%v", p2, err)
	}
}

func TestParseOpusHeadReadsChannelCount(t *testing.T) {
	head := make([]byte, 19)
	copy(head, "OpusHead")
	head[8] = 1 // version
	head[9] = 2 // channels

	channels, err := parseOpusHead(head)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channels != 2 {
		t.Fatalf("expected 2 channels, got %d", channels)
	}
}

func TestParseOpusHeadRejectsBadMagic(t *testing.T) {
	if _, err := parseOpusHead([]byte("not-opus-head-at-all")); err != ErrNotOggOpus {
		t.Fatalf("expected ErrNotOggOpus, got %v", err)
	}
}
