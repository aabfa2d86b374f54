package generator

import (
	"errors"
	"io"
	"log"
	"math"
	"sync/atomic"
	"time"

	resampler "github.com/tphakala/go-audio-resampler"

	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/decode/streamresample"
	"github.com/kvaudio/syzgo/event"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/internal/lockfree"
)

var errNoOpener = errors.New("generator: streaming generator has no open function, cannot (re)open or seek its stream")

// OpenFunc (re)opens a StreamingGenerator's underlying stream from the
// beginning, e.g. re-requesting a file or re-dialing a network source. It is
// also how the worker implements seeking: seeking means reopening and
// discarding frames up to the target position, since the decode.Source
// interface itself has no seek method.
type OpenFunc func() (decode.Source, error)

// StreamingGenerator decodes (and, if needed, resamples) audio in a
// background worker, handing decoded blocks to the audio thread through a
// pair of bounded SPSC rings.
type StreamingGenerator struct {
	channels          int
	contextSampleRate int
	blockSize         int
	open              OpenFunc
	logger            *log.Logger

	free   *lockfree.SPSC[*command]
	filled *lockfree.SPSC[*command]

	stopCh     chan struct{}
	workerDone chan struct{}

	loopingRequested atomic.Bool
	seekPending      atomic.Bool
	seekSeconds      atomic.Uint64
	gain             atomic.Uint64
	positionFrames   atomic.Uint64

	registry *handle.Registry
	sender   *event.Sender
	self     handle.Handle
	ctx      handle.Handle
	bound    atomic.Bool

	// worker-local state; never touched by the audio thread.
	src               decode.Source
	resample          *streamresample.Resampler
	leftover          []float32
	rawBuf            []float32
	framesDecodedTotal uint64
	finishedReported  bool
}

// NewStreamingGenerator returns a StreamingGenerator fixed to channels,
// decoding at contextSampleRate in blocks of blockSize frames, with a
// B = ceil(0.1*SR/blockSize) slot lookahead. It starts its background
// worker immediately; call Stop when done.
func NewStreamingGenerator(channels, contextSampleRate, blockSize int, open OpenFunc) *StreamingGenerator {
	slots := int(math.Ceil(0.1 * float64(contextSampleRate) / float64(blockSize)))
	if slots < 1 {
		slots = 1
	}

	g := &StreamingGenerator{
		channels:          channels,
		contextSampleRate: contextSampleRate,
		blockSize:         blockSize,
		open:              open,
		free:              lockfree.NewSPSC[*command](slots),
		filled:            lockfree.NewSPSC[*command](slots),
		stopCh:            make(chan struct{}),
		workerDone:        make(chan struct{}),
		rawBuf:            make([]float32, channels*blockSize*4),
	}
	g.gain.Store(math.Float64bits(1.0))

	for i := 0; i < slots; i++ {
		g.free.Push(&command{data: make([]float32, channels*blockSize)})
	}

	go g.runWorker()
	return g
}

// Bind attaches the registry/sender/handles needed to emit events.
func (g *StreamingGenerator) Bind(registry *handle.Registry, sender *event.Sender, self, ctx handle.Handle) {
	g.registry = registry
	g.sender = sender
	g.self = self
	g.ctx = ctx
	g.bound.Store(true)
}

// SetLogger attaches a logger the worker writes swallowed decode errors to.
// A nil logger (the default) silently drops them.
func (g *StreamingGenerator) SetLogger(l *log.Logger) { g.logger = l }

func (g *StreamingGenerator) Channels() int { return g.channels }

func (g *StreamingGenerator) SetGain(v float64) { g.gain.Store(math.Float64bits(clampGain(v))) }
func (g *StreamingGenerator) Gain() float64     { return math.Float64frombits(g.gain.Load()) }

func (g *StreamingGenerator) SetLooping(v bool) { g.loopingRequested.Store(v) }
func (g *StreamingGenerator) Looping() bool     { return g.loopingRequested.Load() }

// SeekSeconds requests the worker seek to seconds on its next decode cycle.
// A successful seek re-arms the Finished latch regardless of where it lands.
func (g *StreamingGenerator) SeekSeconds(seconds float64) {
	g.seekSeconds.Store(math.Float64bits(seconds))
	g.seekPending.Store(true)
}

// PositionFrames returns the most recently exposed decode position, updated
// once per block by the audio thread from the command it just consumed.
func (g *StreamingGenerator) PositionFrames() uint64 {
	return g.positionFrames.Load()
}

// Stop halts the worker and releases its open source. Safe to call once,
// after which the generator must not be used again.
func (g *StreamingGenerator) Stop() {
	close(g.stopCh)
	<-g.workerDone
	if g.src != nil {
		g.src.Close()
	}
}

// Generate pops one decoded command from the filled ring (or outputs
// silence on underrun), mixes it into block at the generator's gain,
// dispatches any Looped/Finished events it carries, and returns the slot to
// the worker via the free ring.
func (g *StreamingGenerator) Generate(block []float32) {
	cmd, ok := g.filled.Pop()
	if !ok {
		for i := range block {
			block[i] = 0
		}
		return
	}

	gain := float32(g.Gain())
	valid := cmd.framesValid * g.channels
	if valid > len(block) {
		valid = len(block)
	}
	copy(block, cmd.data[:valid])
	for i := valid; i < len(block); i++ {
		block[i] = 0
	}
	if gain != 1 {
		for i := 0; i < valid; i++ {
			block[i] *= gain
		}
	}

	for i := 0; i < cmd.loopedCount; i++ {
		g.dispatchLooped()
	}
	for i := 0; i < cmd.finishedCount; i++ {
		g.dispatchFinished()
	}

	g.positionFrames.Store(cmd.finalPositionFrames)

	cmd.loopedCount = 0
	cmd.finishedCount = 0
	g.free.Push(cmd)
}

func (g *StreamingGenerator) dispatchLooped() {
	if !g.bound.Load() {
		return
	}
	event.SendLooped(g.sender, g.registry, g.ctx, g.self)
}

func (g *StreamingGenerator) dispatchFinished() {
	if !g.bound.Load() {
		return
	}
	event.SendFinished(g.sender, g.registry, g.ctx, g.self)
}

func (g *StreamingGenerator) runWorker() {
	defer close(g.workerDone)
	for {
		select {
		case <-g.stopCh:
			return
		default:
		}

		cmd, ok := g.free.Pop()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}

		g.decodeInto(cmd)

		for !g.filled.Push(cmd) {
			select {
			case <-g.stopCh:
				return
			default:
				time.Sleep(time.Millisecond)
			}
		}
	}
}

func (g *StreamingGenerator) decodeInto(cmd *command) {
	cmd.underrun = false

	if g.seekPending.Swap(false) {
		sec := math.Float64frombits(g.seekSeconds.Load())
		if err := g.seekTo(sec); err != nil {
			g.logf("generator: seek to %.3fs failed: %v", sec, err)
		}
	}

	if g.src == nil {
		if err := g.openSource(); err != nil {
			g.logf("generator: open failed: %v", err)
			zeroFloat32(cmd.data)
			cmd.framesValid = 0
			cmd.loopedCount = 0
			cmd.finishedCount = 0
			cmd.underrun = true
			cmd.finalPositionFrames = g.framesDecodedTotal
			return
		}
	}

	framesWanted := len(cmd.data) / g.channels
	filled, looped, finished := g.fillFrames(cmd.data, framesWanted)
	if filled < len(cmd.data) {
		zeroFloat32(cmd.data[filled:])
	}
	cmd.framesValid = filled / g.channels
	cmd.loopedCount = looped
	cmd.finishedCount = finished
	g.framesDecodedTotal += uint64(cmd.framesValid)
	cmd.finalPositionFrames = g.framesDecodedTotal
}

// fillFrames pulls samples (resampled if needed) into dst until framesWanted
// frames are filled or the stream is exhausted, looping once per call if
// requested and possible.
func (g *StreamingGenerator) fillFrames(dst []float32, framesWanted int) (filled, looped, finished int) {
	needed := framesWanted * g.channels
	justLooped := false

	for filled < needed {
		n, err := g.pullSamples(dst[filled:])
		filled += n

		switch {
		case err == nil:
			continue
		case err == io.EOF:
			if n > 0 {
				// Delivered the tail of the stream; the next pull will see
				// n==0 and decide whether to loop or finish.
				continue
			}
			if g.loopingRequested.Load() && g.canSeek() && !justLooped {
				if seekErr := g.seekTo(0); seekErr == nil {
					justLooped = true
					looped++
					continue
				}
			}
			if !g.finishedReported {
				finished++
				g.finishedReported = true
			}
			return filled, looped, finished
		default:
			g.logf("generator: decode error: %v", err)
			return filled, looped, finished
		}
	}
	return filled, looped, finished
}

func (g *StreamingGenerator) pullSamples(dst []float32) (int, error) {
	if len(g.leftover) > 0 {
		n := copy(dst, g.leftover)
		g.leftover = g.leftover[n:]
		return n, nil
	}
	if g.src == nil {
		return 0, io.EOF
	}

	n, err := g.src.ReadSamples(g.rawBuf)
	if n == 0 {
		return 0, err
	}
	chunk := g.rawBuf[:n]
	if g.resample != nil {
		out, rerr := g.resample.Process(chunk)
		if rerr != nil {
			return 0, rerr
		}
		chunk = out
	}

	copied := copy(dst, chunk)
	if copied < len(chunk) {
		g.leftover = append(g.leftover[:0], chunk[copied:]...)
	}
	return copied, err
}

func (g *StreamingGenerator) canSeek() bool { return g.open != nil }

func (g *StreamingGenerator) openSource() error {
	if g.open == nil {
		return errNoOpener
	}
	src, err := g.open()
	if err != nil {
		return err
	}
	g.src = src
	g.resample = nil
	if src.SampleRate() != g.contextSampleRate {
		r, rerr := streamresample.New(float64(src.SampleRate()), float64(g.contextSampleRate), g.channels, resampler.QualityMedium)
		if rerr != nil {
			return rerr
		}
		g.resample = r
	}
	g.leftover = nil
	return nil
}

// seekTo reopens the stream and discards frames until reaching seconds,
// since decode.Source has no native seek; this is what "supports_seek"
// means in this implementation, gated on an OpenFunc being
// available at all.
func (g *StreamingGenerator) seekTo(seconds float64) error {
	if !g.canSeek() {
		return errNoOpener
	}
	if g.src != nil {
		g.src.Close()
		g.src = nil
	}
	if err := g.openSource(); err != nil {
		return err
	}
	g.finishedReported = false
	g.framesDecodedTotal = uint64(seconds * float64(g.contextSampleRate))
	if seconds <= 0 {
		return nil
	}

	target := g.framesDecodedTotal
	discard := make([]float32, g.channels*2048)
	var decoded uint64
	for decoded < target {
		n, err := g.pullSamples(discard)
		if n > 0 {
			decoded += uint64(n / g.channels)
		}
		if err != nil && err != io.EOF {
			return err
		}
		if n == 0 {
			break
		}
	}
	return nil
}

func (g *StreamingGenerator) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

func zeroFloat32(s []float32) {
	for i := range s {
		s[i] = 0
	}
}
