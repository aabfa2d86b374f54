// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"time"

	"github.com/kvaudio/syzgo/effect/echo"
)

// Tap is one delay-and-add stage of a GlobalEcho, a public mirror of
// echo.Tap.
type Tap struct {
	Delay time.Duration
	Gain  float64
}

// EchoSetTaps replaces h's tap list.
func (c *Context) EchoSetTaps(h Handle, taps []Tap) error {
	internalTaps := make([]echo.Tap, len(taps))
	for i, t := range taps {
		internalTaps[i] = echo.Tap{Delay: t.Delay, Gain: t.Gain}
	}
	return setLast(translateErr(c.inner.EchoSetTaps(toInternalHandle(h), internalTaps), CodeWrongObjectType))
}
