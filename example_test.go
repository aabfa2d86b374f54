// SPDX-License-Identifier: EPL-2.0

package syzgo_test

import (
	"fmt"

	"github.com/kvaudio/syzgo"
	"github.com/kvaudio/syzgo/device/headless"
	"github.com/kvaudio/syzgo/property"
)

// Example_basicUsage walks through the library-level lifecycle, a
// Context, a noise generator routed into a Source3D, and a property
// write, the shape most callers start from.
func Example_basicUsage() {
	if err := syzgo.Initialize(); err != nil {
		fmt.Println("initialize error:", err)
		return
	}
	defer syzgo.Shutdown()

	dev := headless.New(44100, 2, 0)
	ctx, err := syzgo.CreateContext(syzgo.Options{
		OutputChannels: 2,
		SampleRate:     44100,
		BlockSize:      256,
	}, dev)
	if err != nil {
		fmt.Println("create context error:", err)
		return
	}
	defer ctx.Close()

	gen := ctx.CreateNoiseGenerator(2, syzgo.NoiseUniform)
	src := ctx.CreateSource3D()

	if err := ctx.SourceAddGenerator(src, gen); err != nil {
		fmt.Println("add generator error:", err)
		return
	}
	if err := ctx.SetD3(src, property.Position, [3]float64{1, 0, 0}); err != nil {
		fmt.Println("set position error:", err)
		return
	}

	pos, err := ctx.GetD3(src, property.Position)
	if err != nil {
		fmt.Println("get position error:", err)
		return
	}
	fmt.Println(pos)
	// Output: [1 0 0]
}

// Example_errorCode demonstrates recovering the numeric Code from a
// failed call, the shape a C-style caller would branch on.
func Example_errorCode() {
	if err := syzgo.Initialize(); err != nil {
		fmt.Println("initialize error:", err)
		return
	}
	defer syzgo.Shutdown()

	dev := headless.New(44100, 2, 0)
	ctx, err := syzgo.CreateContext(syzgo.Options{
		OutputChannels: 2,
		SampleRate:     44100,
		BlockSize:      256,
	}, dev)
	if err != nil {
		fmt.Println("create context error:", err)
		return
	}
	defer ctx.Close()

	_, err = ctx.GetObjectType(syzgo.Handle(999999))
	fmt.Println(syzgo.CodeOf(err))
	// Output: invalid_handle
}
