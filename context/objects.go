package context

import (
	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/distance"
	"github.com/kvaudio/syzgo/effect/echo"
	"github.com/kvaudio/syzgo/effect/fdnreverb"
	"github.com/kvaudio/syzgo/generator"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/panner"
	"github.com/kvaudio/syzgo/property"
	"github.com/kvaudio/syzgo/source"
)

// PropertyObject is implemented by every per-handle-type wrapper this
// package builds at creation time. GetProperty/SetProperty run only on the
// audio thread (either directly during block processing, when applying a
// ring write, or from inside a waitable invokable for reads), so neither
// method needs its own locking beyond what the wrapped object already
// does for its own fields.
type PropertyObject interface {
	GetProperty(id property.ID) (property.Value, error)
	SetProperty(id property.ID, v property.Value) error
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// listenerProps exposes the context's own master gain, listener transform,
// and distance-model/panner-strategy defaults as the TypeContext object's
// properties.
type listenerProps struct {
	ctx   *Context
	store *property.Store
}

func (p *listenerProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Position:
		l := p.ctx.listener
		return property.Double3Value([3]float64(l.Position)), nil
	case property.Orientation:
		l := p.ctx.listener
		return property.Double6Value([6]float64{l.At[0], l.At[1], l.At[2], l.Up[0], l.Up[1], l.Up[2]}), nil
	default:
		return p.store.Get(id)
	}
}

func (p *listenerProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Position:
		vec, err := v.Double3()
		if err != nil {
			return err
		}
		p.ctx.listener.Position = vec
		return nil
	case property.Orientation:
		vec, err := v.Double6()
		if err != nil {
			return err
		}
		p.ctx.listener.At = [3]float64{vec[0], vec[1], vec[2]}
		p.ctx.listener.Up = [3]float64{vec[3], vec[4], vec[5]}
		return nil
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.ctx.masterGain.SetTarget(d)
		return p.store.Set(id, v)
	case property.DefaultPannerStrategy:
		i, err := v.Int()
		if err != nil {
			return err
		}
		p.ctx.bank.SetStrategy(panningStrategyOf(i))
		return p.store.Set(id, v)
	default:
		return p.store.Set(id, v)
	}
}

type bufferGeneratorProps struct {
	ctx   *Context
	g     *generator.BufferGenerator
	store *property.Store
}

func (p *bufferGeneratorProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.g.Gain()), nil
	case property.Looping:
		return property.IntValue(boolToInt(p.g.Looping())), nil
	case property.PitchBend:
		return property.DoubleValue(p.g.PitchBend()), nil
	case property.PlaybackPosition:
		sr := p.g.SampleRate()
		if sr == 0 {
			return property.DoubleValue(0), nil
		}
		return property.DoubleValue(p.g.Position() / float64(sr)), nil
	default:
		return p.store.Get(id)
	}
}

func (p *bufferGeneratorProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.g.SetGain(d)
	case property.Looping:
		i, err := v.Int()
		if err != nil {
			return err
		}
		p.g.SetLooping(i != 0)
	case property.PitchBend:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.g.SetPitchBend(d)
	case property.PlaybackPosition:
		d, err := v.Double()
		if err != nil {
			return err
		}
		if sr := p.g.SampleRate(); sr > 0 {
			p.g.SetPosition(d * float64(sr))
		}
	case property.Buffer:
		h, err := v.Object()
		if err != nil {
			return err
		}
		obj, err := p.ctx.registry.ResolveTyped(h, handle.TypeBuffer)
		if err != nil {
			return err
		}
		if err := p.g.SetBuffer(obj.(*buffer.Buffer)); err != nil {
			return err
		}
	}
	return p.store.Set(id, v)
}

type noiseGeneratorProps struct {
	g     *generator.NoiseGenerator
	store *property.Store
}

func (p *noiseGeneratorProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.g.Gain()), nil
	case property.NoiseType:
		return property.IntValue(int64(p.g.NoiseType())), nil
	default:
		return p.store.Get(id)
	}
}

func (p *noiseGeneratorProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.g.SetGain(d)
	case property.NoiseType:
		i, err := v.Int()
		if err != nil {
			return err
		}
		p.g.SetNoiseType(generator.NoiseType(i))
	}
	return p.store.Set(id, v)
}

type streamingGeneratorProps struct {
	g          *generator.StreamingGenerator
	sampleRate int
	store      *property.Store
}

func (p *streamingGeneratorProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.g.Gain()), nil
	case property.Looping:
		return property.IntValue(boolToInt(p.g.Looping())), nil
	case property.PlaybackPosition:
		return property.DoubleValue(float64(p.g.PositionFrames()) / float64(p.sampleRate)), nil
	default:
		return p.store.Get(id)
	}
}

func (p *streamingGeneratorProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.g.SetGain(d)
	case property.Looping:
		i, err := v.Int()
		if err != nil {
			return err
		}
		p.g.SetLooping(i != 0)
	case property.PlaybackPosition:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.g.SeekSeconds(d)
	}
	return p.store.Set(id, v)
}

type directSourceProps struct {
	s     *source.DirectSource
	store *property.Store
}

func (p *directSourceProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.s.Gain()), nil
	default:
		return p.store.Get(id)
	}
}

func (p *directSourceProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.SetGain(d)
	case property.FilterInput:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetInputFilter(f)
	case property.FilterDirect:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetDirectFilter(f)
	case property.FilterEffects:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetEffectsFilter(f)
	}
	return p.store.Set(id, v)
}

type pannedSourceProps struct {
	s     *source.PannedSource
	store *property.Store
}

func (p *pannedSourceProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.s.Gain()), nil
	case property.Azimuth:
		return property.DoubleValue(p.s.Lane().Azimuth()), nil
	case property.Elevation:
		return property.DoubleValue(p.s.Lane().Elevation()), nil
	case property.PanningScalar:
		return property.DoubleValue(p.s.Lane().Scalar()), nil
	default:
		return p.store.Get(id)
	}
}

func (p *pannedSourceProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.SetGain(d)
	case property.Azimuth:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.Lane().SetAzimuthElevation(d, p.s.Lane().Elevation())
	case property.Elevation:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.Lane().SetAzimuthElevation(p.s.Lane().Azimuth(), d)
	case property.PanningScalar:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.Lane().SetScalar(d)
	case property.FilterInput:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetInputFilter(f)
	case property.FilterDirect:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetDirectFilter(f)
	case property.FilterEffects:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetEffectsFilter(f)
	}
	return p.store.Set(id, v)
}

type source3DProps struct {
	s     *source.Source3D
	store *property.Store
}

func (p *source3DProps) GetProperty(id property.ID) (property.Value, error) {
	switch id {
	case property.Gain:
		return property.DoubleValue(p.s.Gain()), nil
	case property.Position:
		x, y, z := p.s.Position()
		return property.Double3Value([3]float64{x, y, z}), nil
	default:
		return p.store.Get(id)
	}
}

func (p *source3DProps) SetProperty(id property.ID, v property.Value) error {
	switch id {
	case property.Gain:
		d, err := v.Double()
		if err != nil {
			return err
		}
		p.s.SetGain(d)
	case property.Position:
		vec, err := v.Double3()
		if err != nil {
			return err
		}
		p.s.SetPosition(vec[0], vec[1], vec[2])
	case property.DistanceModel, property.DistanceRef, property.DistanceMax, property.Rolloff:
		if err := p.store.Set(id, v); err != nil {
			return err
		}
		p.applyDistanceParams()
		return nil
	case property.ClosenessBoost, property.ClosenessBoostDistance:
		if err := p.store.Set(id, v); err != nil {
			return err
		}
		p.applyClosenessBoost()
		return nil
	case property.FilterInput:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetInputFilter(f)
	case property.FilterDirect:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetDirectFilter(f)
	case property.FilterEffects:
		f, err := v.Filter()
		if err != nil {
			return err
		}
		p.s.SetEffectsFilter(f)
	}
	return p.store.Set(id, v)
}

func (p *source3DProps) applyDistanceParams() {
	model, _ := p.store.Get(property.DistanceModel)
	ref, _ := p.store.GetDouble(property.DistanceRef)
	max, _ := p.store.GetDouble(property.DistanceMax)
	rolloff, _ := p.store.GetDouble(property.Rolloff)
	m, _ := model.Int()
	p.s.SetDistanceParams(distance.Params{Model: distance.Model(m), Ref: ref, Max: max, Rolloff: rolloff})
}

func (p *source3DProps) applyClosenessBoost() {
	boost, _ := p.store.GetDouble(property.ClosenessBoost)
	dist, _ := p.store.GetDouble(property.ClosenessBoostDistance)
	p.s.SetClosenessBoost(boost, dist)
}

type echoProps struct {
	e     *echo.Echo
	store *property.Store
}

func (p *echoProps) GetProperty(id property.ID) (property.Value, error) { return p.store.Get(id) }
func (p *echoProps) SetProperty(id property.ID, v property.Value) error { return p.store.Set(id, v) }

type reverbProps struct {
	r     *fdnreverb.Reverb
	store *property.Store
}

func (p *reverbProps) GetProperty(id property.ID) (property.Value, error) {
	return p.store.Get(id)
}

func (p *reverbProps) SetProperty(id property.ID, v property.Value) error {
	if err := p.store.Set(id, v); err != nil {
		return err
	}
	p.r.SetParams(p.params())
	return nil
}

func (p *reverbProps) params() fdnreverb.Params {
	get := func(id property.ID) float64 { d, _ := p.store.GetDouble(id); return d }
	enabled, _ := p.store.Get(property.InputFilterEnabled)
	enabledInt, _ := enabled.Int()
	return fdnreverb.Params{
		MeanFreePath:         get(property.MeanFreePath),
		T60:                  get(property.T60),
		LFRolloff:            get(property.LateReflectionsLFRolloff),
		LFReference:          get(property.LateReflectionsLFReference),
		HFRolloff:            get(property.LateReflectionsHFRolloff),
		HFReference:          get(property.LateReflectionsHFReference),
		Diffusion:            get(property.LateReflectionsDiffusion),
		ModulationDepth:      get(property.LateReflectionsModulationDepth),
		ModulationFrequency:  get(property.LateReflectionsModulationFrequency),
		LateReflectionsDelay: get(property.LateReflectionsDelay),
		InputFilterEnabled:   enabledInt != 0,
		InputFilterCutoff:    get(property.InputFilterCutoff),
	}
}

// panningStrategyOf maps the generic int encoding of property.PannerStrategy
// (0=HRTF, 1=Stereo) onto panner.Strategy.
func panningStrategyOf(i int64) panner.Strategy {
	if i == 0 {
		return panner.StrategyHRTF
	}
	return panner.StrategyStereo
}
