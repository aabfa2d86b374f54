package filter

import "math"

const defaultQ = 0.7071067811865476 // 1/sqrt(2), gives a Butterworth response.

// omegaEpsilon keeps a clamped omega strictly inside (0, 0.5): exactly 0 or
// 0.5 makes cos(2*pi*omega) land on ±1, degenerating the cookbook biquads'
// alpha term to zero.
const omegaEpsilon = 1e-6

// clampOmega folds a malformed cutoff (<=0 or >=0.5) into the open interval
// (0, 0.5) instead of letting it produce degenerate or aliased coefficients.
func clampOmega(omega float64) float64 {
	if omega <= 0 {
		return omegaEpsilon
	}
	if omega >= 0.5 {
		return 0.5 - omegaEpsilon
	}
	return omega
}

// OneZero designs a single-zero filter with the zero placed at the given
// x-axis position.
func OneZero(zero float64) Filter {
	return Filter{
		Num:  []float64{1.0, -zero},
		Den:  nil,
		Gain: 1.0,
	}
}

// OnePole designs a single-pole filter with the pole placed at the given
// x-axis position.
func OnePole(pole float64) Filter {
	return Filter{
		Num:  []float64{1 - math.Abs(pole)},
		Den:  []float64{-pole},
		Gain: 1.0,
	}
}

// DCBlocker designs a filter that removes DC offset while passing the rest
// of the spectrum essentially unaffected. r closer to 1 narrows the notch
// around DC; 0.995 is a reasonable default.
func DCBlocker(r float64) Filter {
	return Filter{
		Num:  []float64{1.0, -1.0},
		Den:  []float64{-r},
		Gain: 1.0,
	}
}

// biquad builds a Filter from the audio EQ cookbook's raw b/a coefficients,
// normalizing so a0 = 1.
func biquad(b0, b1, b2, a0, a1, a2 float64) Filter {
	return Filter{
		Num:  []float64{b0 / a0, b1 / a0, b2 / a0},
		Den:  []float64{a1 / a0, a2 / a0},
		Gain: 1.0,
	}
}

// AudioEqLowpass designs a 2-pole 2-zero lowpass. omega is frequency/sample
// rate, not frequency in Hz; the default q gives a Butterworth response.
func AudioEqLowpass(omega float64, q float64) Filter {
	omega = clampOmega(omega)
	w0, cw, sw, alpha := cookbookAngles(omega, q)
	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha
	_ = w0
	_ = sw
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqHighpass designs a 2-pole 2-zero highpass.
func AudioEqHighpass(omega float64, q float64) Filter {
	omega = clampOmega(omega)
	_, cw, _, alpha := cookbookAngles(omega, q)
	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqBandpass designs a constant-0dB-peak-gain bandpass, specified by
// bandwidth in octaves rather than Q.
func AudioEqBandpass(omega float64, bw float64) Filter {
	omega = clampOmega(omega)
	_, cw, sw, alpha := cookbookAnglesBW(omega, bw)
	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha
	_ = sw
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqNotch designs a band-reject filter, specified by bandwidth in
// octaves.
func AudioEqNotch(omega float64, bw float64) Filter {
	omega = clampOmega(omega)
	_, cw, _, alpha := cookbookAnglesBW(omega, bw)
	b0 := 1.0
	b1 := -2 * cw
	b2 := 1.0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqAllpass designs an allpass filter.
func AudioEqAllpass(omega float64, q float64) Filter {
	omega = clampOmega(omega)
	_, cw, _, alpha := cookbookAngles(omega, q)
	b0 := 1 - alpha
	b1 := -2 * cw
	b2 := 1 + alpha
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqPeaking designs a peaking EQ bump/dip of dbGain decibels centered
// at omega, with bandwidth bw octaves.
func AudioEqPeaking(omega float64, bw float64, dbGain float64) Filter {
	omega = clampOmega(omega)
	_, cw, _, alpha := cookbookAnglesBW(omega, bw)
	a := math.Pow(10, dbGain/40)
	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqLowshelf designs a low-frequency shelving filter, boosting or
// cutting by dbGain decibels below omega. s controls shelf slope (1 is the
// cookbook default).
func AudioEqLowshelf(omega float64, s float64, dbGain float64) Filter {
	omega = clampOmega(omega)
	w0, cw, sw, _ := cookbookAngles(omega, defaultQ)
	a := math.Pow(10, dbGain/40)
	alpha := sw / 2 * math.Sqrt((a+1/a)*(1/s-1)+2)
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) - (a-1)*cw + 2*sqrtA*alpha)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - 2*sqrtA*alpha)
	a0 := (a + 1) + (a-1)*cw + 2*sqrtA*alpha
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - 2*sqrtA*alpha
	_ = w0
	return biquad(b0, b1, b2, a0, a1, a2)
}

// AudioEqHighshelf designs a high-frequency shelving filter.
func AudioEqHighshelf(omega float64, s float64, dbGain float64) Filter {
	omega = clampOmega(omega)
	w0, cw, sw, _ := cookbookAngles(omega, defaultQ)
	a := math.Pow(10, dbGain/40)
	alpha := sw / 2 * math.Sqrt((a+1/a)*(1/s-1)+2)
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) + (a-1)*cw + 2*sqrtA*alpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - 2*sqrtA*alpha)
	a0 := (a + 1) - (a-1)*cw + 2*sqrtA*alpha
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - 2*sqrtA*alpha
	_ = w0
	return biquad(b0, b1, b2, a0, a1, a2)
}

func cookbookAngles(omega, q float64) (w0, cw, sw, alpha float64) {
	w0 = 2 * math.Pi * omega
	cw = math.Cos(w0)
	sw = math.Sin(w0)
	alpha = sw / (2 * q)
	return
}

func cookbookAnglesBW(omega, bw float64) (w0, cw, sw, alpha float64) {
	w0 = 2 * math.Pi * omega
	cw = math.Cos(w0)
	sw = math.Sin(w0)
	alpha = sw * math.Sinh(math.Ln2/2*bw*w0/sw)
	return
}

// SincLowpass designs an N-tap windowed-sinc lowpass FIR filter with cutoff
// omega (frequency/sample rate), windowed with a Blackman-Harris window.
// Used for resampling anti-aliasing. N must be odd.
func SincLowpass(n int, omega float64) Filter {
	omega = clampOmega(omega)
	coefs := make([]float64, n)
	center := float64(n-1) / 2.0

	for i := 0; i < n; i++ {
		x := math.Pi * (float64(i) - center)
		x *= omega * 2

		y := float64(i) / float64(n-1)
		y *= 2 * math.Pi
		window := 0.35875 - 0.48829*math.Cos(y) + 0.14128*math.Cos(2*y) - 0.01168*math.Cos(3*y)

		if float64(i) == center {
			coefs[i] = 1.0
		} else {
			coefs[i] = (math.Sin(x) / x) * window
		}
	}

	gain := 0.0
	for _, c := range coefs {
		gain += c
	}
	gain = 1.0 / (gain + 0.01)

	return Filter{Num: coefs, Den: nil, Gain: gain}
}

// Combine produces the filter equivalent to running f1 then f2 in series,
// by convolving their numerator and denominator coefficient sets.
func Combine(f1, f2 Filter) Filter {
	num1, num2 := f1.Num, f2.Num
	den1, den2 := append([]float64{1.0}, f1.Den...), append([]float64{1.0}, f2.Den...)

	newGain := f1.Gain * f2.Gain
	workingNum := make([]float64, len(num1)+len(num2)-1)
	workingDen := make([]float64, len(den1)+len(den2)-1)

	for i := range num1 {
		n1 := num1[i]
		for j := range num2 {
			workingNum[i+j] += n1 * num2[j]
		}
	}

	for i := range den1 {
		d1 := den1[i]
		for j := range den2 {
			workingDen[i+j] += d1 * den2[j]
		}
	}

	return Filter{
		Num:  workingNum,
		Den:  workingDen[1:],
		Gain: newGain,
	}
}
