// Package device defines AudioDevice, the output sink a context writes its
// rendered master bus into once per block, plus two concrete backends: oto
// (real system audio, package device/oto) and headless (a no-op sink for
// tests and CI, package device/headless), grounded on IntuitionAmiga's
// IntuitionEngine build-tag split between audio_backend_oto.go and
// audio_backend_headless.go.
package device
