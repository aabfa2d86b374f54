package filter

// Filter holds the coefficients of a normalized IIR filter: Num is b0..bn,
// Den is a1..an (a0 is always 1 and is not stored), and Gain is the scalar
// applied to the numerator, following the usual normalize-to-a0=1
// convention.
type Filter struct {
	Num  []float64
	Den  []float64
	Gain float64
}

// Identity returns the filter that passes its input through unchanged.
func Identity() Filter {
	return Filter{Num: []float64{1.0}, Gain: 1.0}
}

// State is a running instance of a Filter: the coefficients plus the delay
// line needed to process a stream of samples one at a time. Using direct
// form I, which trades a little extra memory for numerical stability when
// coefficients are swapped out between blocks.
type State struct {
	f     Filter
	xHist []float64
	yHist []float64
}

// NewState creates a State bound to f with a zeroed delay line.
func NewState(f Filter) *State {
	return &State{
		f:     f,
		xHist: make([]float64, len(f.Num)-1),
		yHist: make([]float64, len(f.Den)),
	}
}

// SetFilter swaps in a new filter definition, resizing the delay line. Used
// when a caller changes a property-backed filter between blocks; the old
// history is kept as far as it still fits, matching what the new filter's
// order will actually read.
func (s *State) SetFilter(f Filter) {
	s.f = f
	s.xHist = resize(s.xHist, len(f.Num)-1)
	s.yHist = resize(s.yHist, len(f.Den))
}

func resize(old []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	nv := make([]float64, n)
	copy(nv, old)
	return nv
}

// Reset zeroes the delay line without changing the filter definition.
func (s *State) Reset() {
	for i := range s.xHist {
		s.xHist[i] = 0
	}
	for i := range s.yHist {
		s.yHist[i] = 0
	}
}

// Process runs one sample through the filter and returns the output.
func (s *State) Process(x float64) float64 {
	num := s.f.Num
	den := s.f.Den

	ff := num[0] * x
	for i := 1; i < len(num); i++ {
		ff += num[i] * s.xHist[i-1]
	}
	y := s.f.Gain * ff
	for i := 0; i < len(den); i++ {
		y -= den[i] * s.yHist[i]
	}

	for i := len(s.xHist) - 1; i > 0; i-- {
		s.xHist[i] = s.xHist[i-1]
	}
	if len(s.xHist) > 0 {
		s.xHist[0] = x
	}
	for i := len(s.yHist) - 1; i > 0; i-- {
		s.yHist[i] = s.yHist[i-1]
	}
	if len(s.yHist) > 0 {
		s.yHist[0] = y
	}

	return y
}

// ProcessBlock runs Process over every sample of buf in place.
func (s *State) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.Process(x)
	}
}
