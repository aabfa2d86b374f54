// SPDX-License-Identifier: EPL-2.0

package syzgo_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/kvaudio/syzgo"
	"github.com/kvaudio/syzgo/decode/formats/wav"
	"github.com/kvaudio/syzgo/device/headless"
	"github.com/kvaudio/syzgo/property"
)

func newTestContext(t *testing.T) (*syzgo.Context, *headless.Device) {
	t.Helper()
	dev := headless.New(44100, 2, 8)
	ctx, err := syzgo.CreateContext(syzgo.Options{
		OutputChannels: 2,
		SampleRate:     44100,
		BlockSize:      256,
	}, dev)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx, dev
}

func TestInitializeShutdownLifecycle(t *testing.T) {
	if err := syzgo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := syzgo.Initialize(); syzgo.CodeOf(err) != syzgo.CodeAlreadyInitialized {
		t.Fatalf("second Initialize: want CodeAlreadyInitialized, got %v", err)
	}
	if err := syzgo.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := syzgo.Shutdown(); syzgo.CodeOf(err) != syzgo.CodeNotInitialized {
		t.Fatalf("second Shutdown: want CodeNotInitialized, got %v", err)
	}
	syzgo.Initialize()
	t.Cleanup(func() { syzgo.Shutdown() })
}

func TestHandleLifecycleOnInvalidHandle(t *testing.T) {
	ctx, _ := newTestContext(t)

	bogus := syzgo.Handle(123456789)
	if _, err := ctx.GetObjectType(bogus); syzgo.CodeOf(err) != syzgo.CodeInvalidHandle {
		t.Errorf("GetObjectType(bogus): want CodeInvalidHandle, got %v", err)
	}
	if err := ctx.HandleIncRef(bogus); syzgo.CodeOf(err) != syzgo.CodeInvalidHandle {
		t.Errorf("HandleIncRef(bogus): want CodeInvalidHandle, got %v", err)
	}
}

func TestDirectSourceWithNoiseGenerator(t *testing.T) {
	ctx, dev := newTestContext(t)

	src := ctx.CreateDirectSource()
	gen := ctx.CreateNoiseGenerator(2, syzgo.NoiseUniform)
	if err := ctx.SourceAddGenerator(src, gen); err != nil {
		t.Fatalf("SourceAddGenerator: %v", err)
	}

	typ, err := ctx.GetObjectType(src)
	if err != nil {
		t.Fatalf("GetObjectType: %v", err)
	}
	if typ != syzgo.ObjectTypeDirectSource {
		t.Errorf("GetObjectType(src) = %v, want ObjectTypeDirectSource", typ)
	}

	waitBlocks(4, 256, 44100)
	if dev.LastBlock(256) == nil {
		t.Fatal("expected a rendered block, got none")
	}
}

func TestSourceAddGeneratorWrongObjectType(t *testing.T) {
	ctx, _ := newTestContext(t)

	gen := ctx.CreateNoiseGenerator(2, syzgo.NoiseUniform)
	err := ctx.SourceAddGenerator(gen, gen)
	if syzgo.CodeOf(err) != syzgo.CodeWrongObjectType {
		t.Errorf("SourceAddGenerator on a non-source: want CodeWrongObjectType, got %v", err)
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	ctx, _ := newTestContext(t)

	src := ctx.CreateSource3D()

	if err := ctx.SetD3(src, property.Position, [3]float64{1, 2, 3}); err != nil {
		t.Fatalf("SetD3: %v", err)
	}
	pos, err := ctx.GetD3(src, property.Position)
	if err != nil {
		t.Fatalf("GetD3: %v", err)
	}
	if pos != [3]float64{1, 2, 3} {
		t.Errorf("GetD3(Position) = %v, want [1 2 3]", pos)
	}

	if err := ctx.SetD(src, property.Gain, 0.5); err != nil {
		t.Fatalf("SetD: %v", err)
	}
	gain, err := ctx.GetD(src, property.Gain)
	if err != nil {
		t.Fatalf("GetD: %v", err)
	}
	if gain != 0.5 {
		t.Errorf("GetD(Gain) = %v, want 0.5", gain)
	}
}

func TestPropertyWrongKind(t *testing.T) {
	ctx, _ := newTestContext(t)

	src := ctx.CreateSource3D()
	_, err := ctx.GetI(src, property.Gain)
	if syzgo.CodeOf(err) != syzgo.CodeWrongPropertyType {
		t.Errorf("GetI on a double property: want CodeWrongPropertyType, got %v", err)
	}
}

func TestEchoCreateAndSetTaps(t *testing.T) {
	ctx, _ := newTestContext(t)

	echo := ctx.CreateGlobalEcho(time.Second)
	src := ctx.CreateDirectSource()

	if err := ctx.EchoSetTaps(echo, []syzgo.Tap{
		{Delay: 50 * time.Millisecond, Gain: 0.5},
		{Delay: 100 * time.Millisecond, Gain: 0.25},
	}); err != nil {
		t.Fatalf("EchoSetTaps: %v", err)
	}
	if err := ctx.SourceSetEffect(src, 0, echo, 1.0); err != nil {
		t.Fatalf("SourceSetEffect: %v", err)
	}
}

func TestCreateBufferFromEncodedData(t *testing.T) {
	ctx, _ := newTestContext(t)

	samples := []int16{100, -100, 200, -200}
	var wavData bytes.Buffer
	if err := wav.WriteWAV16(&wavData, 44100, samples); err != nil {
		t.Fatalf("WriteWAV16: %v", err)
	}

	buf, err := ctx.CreateBufferFromEncodedData(wavData.Bytes(), "wav")
	if err != nil {
		t.Fatalf("CreateBufferFromEncodedData: %v", err)
	}

	typ, err := ctx.GetObjectType(buf)
	if err != nil {
		t.Fatalf("GetObjectType: %v", err)
	}
	if typ != syzgo.ObjectTypeBuffer {
		t.Errorf("GetObjectType(buf) = %v, want ObjectTypeBuffer", typ)
	}
}

func TestEventDelivery(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.EnableEvents()

	if _, ok := ctx.GetNextEvent(); ok {
		t.Error("expected no events before anything finishes")
	}
}

func waitBlocks(n int, blockSize, sampleRate int) {
	period := time.Duration(float64(blockSize)/float64(sampleRate)*float64(time.Second)) * time.Duration(n)
	time.Sleep(period + 20*time.Millisecond)
}
