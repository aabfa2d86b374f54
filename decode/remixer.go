package decode

import "fmt"

// Remixer adapts src's channel count to a target count. Downmixing (target
// < source channels) averages the source channels down; upmixing (target >
// source channels) broadcasts each source channel across the extra output
// channels it maps to.
type Remixer struct {
	src    Source
	target int
	tmp    []float32
}

// NewRemixer wraps src, presenting target channels instead of src's own.
func NewRemixer(src Source, target int) *Remixer {
	return &Remixer{
		src:    src,
		target: target,
		tmp:    make([]float32, 4096),
	}
}

// NewMonoMixer is a convenience constructor for the common downmix-to-mono
// case.
func NewMonoMixer(src Source) *Remixer {
	return NewRemixer(src, 1)
}

func (m *Remixer) SampleRate() int { return m.src.SampleRate() }
func (m *Remixer) Channels() int   { return m.target }
func (m *Remixer) BufSize() int    { return m.src.BufSize() }
func (m *Remixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *Remixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	srcChannels := m.src.Channels()
	if srcChannels == m.target {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.target
	samplesNeeded := frames * srcChannels

	if cap(m.tmp) < samplesNeeded {
		newCap := samplesNeeded
		if newCap < 8192 {
			newCap = 8192
		}
		m.tmp = make([]float32, newCap)
	} else if len(m.tmp) < samplesNeeded {
		m.tmp = m.tmp[:samplesNeeded]
	}

	n, err := m.src.ReadSamples(m.tmp[:samplesNeeded])
	if n == 0 {
		return 0, err
	}
	readFrames := n / srcChannels

	if srcChannels > m.target {
		downmix(m.tmp, dst, readFrames, srcChannels, m.target)
	} else {
		upmix(m.tmp, dst, readFrames, srcChannels, m.target)
	}

	return readFrames * m.target, err
}

// downmix averages groups of source channels down to target channels.
// Source channels [0, target) keep their own average group size so that a
// stereo->mono downmix (the common case) gets the fast unrolled path.
func downmix(src, dst []float32, frames, srcChannels, target int) {
	if target == 1 {
		invChannels := float32(1.0) / float32(srcChannels)
		switch srcChannels {
		case 2:
			for f := range frames {
				idx := f << 1
				dst[f] = (src[idx] + src[idx+1]) * 0.5
			}
		case 4:
			for f := range frames {
				idx := f << 2
				sum := src[idx] + src[idx+1] + src[idx+2] + src[idx+3]
				dst[f] = sum * 0.25
			}
		default:
			for f := range frames {
				sum := float32(0)
				base := f * srcChannels
				for c := range srcChannels {
					sum += src[base+c]
				}
				dst[f] = sum * invChannels
			}
		}
		return
	}

	// General case: each output channel averages the source channels that
	// fall in its group, distributing remainder groups across the first
	// output channels.
	base := srcChannels / target
	rem := srcChannels % target

	for f := range frames {
		srcBase := f * srcChannels
		dstBase := f * target
		srcIdx := 0
		for c := range target {
			groupSize := base
			if c < rem {
				groupSize++
			}
			var sum float32
			for k := 0; k < groupSize; k++ {
				sum += src[srcBase+srcIdx+k]
			}
			if groupSize > 0 {
				dst[dstBase+c] = sum / float32(groupSize)
			}
			srcIdx += groupSize
		}
	}
}

// upmix broadcasts each source channel to the output channels that map to
// it, cycling through source channels when target isn't an exact multiple.
func upmix(src, dst []float32, frames, srcChannels, target int) {
	if srcChannels == 1 {
		for f := range frames {
			v := src[f]
			dstBase := f * target
			for c := range target {
				dst[dstBase+c] = v
			}
		}
		return
	}

	for f := range frames {
		srcBase := f * srcChannels
		dstBase := f * target
		for c := range target {
			dst[dstBase+c] = src[srcBase+c%srcChannels]
		}
	}
}
