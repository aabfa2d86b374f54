package context

import (
	"testing"
	"time"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/device/headless"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/property"
)

func newTestContext(t *testing.T) (*Context, *headless.Device) {
	t.Helper()
	dev := headless.New(44100, 2, 8)
	c, err := New(Options{OutputChannels: 2, SampleRate: 44100, BlockSize: 256}, dev)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { c.Shutdown() })
	return c, dev
}

func waitBlocks(n int, blockSize, sampleRate int) {
	period := time.Duration(float64(blockSize)/float64(sampleRate)*float64(time.Second)) * time.Duration(n)
	time.Sleep(period + 20*time.Millisecond)
}

func TestDirectSourceProducesOutput(t *testing.T) {
	c, dev := newTestContext(t)

	src := c.CreateDirectSource()
	gen := c.CreateNoiseGenerator(2, 0)
	if err := c.SourceAddGenerator(src, gen); err != nil {
		t.Fatalf("SourceAddGenerator: %v", err)
	}

	waitBlocks(4, 256, 44100)

	block := dev.LastBlock(256)
	if block == nil {
		t.Fatal("expected a rendered block, got none")
	}
	var nonZero bool
	for _, s := range block {
		if s != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("expected non-silent output from a noise generator through a direct source")
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	c, _ := newTestContext(t)

	src := c.CreateDirectSource()
	waitBlocks(1, 256, 44100)

	if err := c.SetProperty(src, property.Gain, property.DoubleValue(0.5)); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	waitBlocks(2, 256, 44100)

	v, err := c.GetProperty(src, property.Gain)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	d, err := v.Double()
	if err != nil {
		t.Fatalf("Double: %v", err)
	}
	if d != 0.5 {
		t.Errorf("got gain %v, want 0.5", d)
	}
}

func TestSetPropertyRejectsWrongKind(t *testing.T) {
	c, _ := newTestContext(t)

	src := c.CreateDirectSource()
	if err := c.SetProperty(src, property.Gain, property.IntValue(1)); err != ErrWrongPropertyType {
		t.Errorf("got %v, want ErrWrongPropertyType", err)
	}
}

func TestSetPropertyRejectsInvalidHandle(t *testing.T) {
	c, _ := newTestContext(t)

	if err := c.SetProperty(handle.Handle(999999), property.Gain, property.DoubleValue(1)); err != handle.ErrInvalidHandle {
		t.Errorf("got %v, want ErrInvalidHandle", err)
	}
}

func TestBufferGeneratorPlaysAttachedBuffer(t *testing.T) {
	c, dev := newTestContext(t)

	samples := make([]float32, 2*4096)
	for i := range samples {
		samples[i] = 1
	}
	buf := buffer.FromInterleaved(44100, 2, samples)
	bufHandle := c.registry.Register(handle.TypeBuffer, buf)

	gen := c.CreateBufferGenerator()
	if err := c.SetProperty(gen, property.Looping, property.IntValue(1)); err != nil {
		t.Fatalf("SetProperty Looping: %v", err)
	}
	if err := c.SetProperty(gen, property.Buffer, property.ObjectValue(bufHandle)); err != nil {
		t.Fatalf("SetProperty Buffer: %v", err)
	}

	src := c.CreateDirectSource()
	if err := c.SourceAddGenerator(src, gen); err != nil {
		t.Fatalf("SourceAddGenerator: %v", err)
	}

	waitBlocks(4, 256, 44100)

	block := dev.LastBlock(256)
	if block == nil || block[0] == 0 {
		t.Errorf("expected non-silent output from the buffer generator, got %v", block)
	}
}

func TestSource3DPositionRoundTrip(t *testing.T) {
	c, _ := newTestContext(t)

	src := c.CreateSource3D()
	gen := c.CreateNoiseGenerator(1, 0)
	if err := c.SourceAddGenerator(src, gen); err != nil {
		t.Fatalf("SourceAddGenerator: %v", err)
	}
	if err := c.SetProperty(src, property.DistanceModel, property.IntValue(3)); err != nil {
		t.Fatalf("SetProperty DistanceModel: %v", err)
	}
	if err := c.SetProperty(src, property.Position, property.Double3Value([3]float64{4, 0, 0})); err != nil {
		t.Fatalf("SetProperty Position: %v", err)
	}

	waitBlocks(2, 256, 44100)

	v, err := c.GetProperty(src, property.Position)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	pos, err := v.Double3()
	if err != nil {
		t.Fatalf("Double3: %v", err)
	}
	if pos != [3]float64{4, 0, 0} {
		t.Errorf("got position %v, want (4,0,0)", pos)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	dev := headless.New(44100, 2, 1)
	c, err := New(Options{OutputChannels: 2, SampleRate: 44100, BlockSize: 256}, dev)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitBlocks(1, 256, 44100)

	if err := c.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := c.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestFreeDropsHandle(t *testing.T) {
	c, _ := newTestContext(t)

	gen := c.CreateNoiseGenerator(2, 0)
	if _, _, ok := c.registry.Resolve(gen); !ok {
		t.Fatal("expected handle to resolve before Free")
	}
	if err := c.Free(gen); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if !c.registry.IsPermanentlyDead(gen) {
		t.Error("expected handle to be permanently dead after Free")
	}
}
