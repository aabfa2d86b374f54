package context

import (
	"github.com/kvaudio/syzgo/filter"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/property"
)

func rng(min, max float64) property.Range { return property.Range{Min: min, Max: max, HasRange: true} }

var filterSlots = map[property.ID]property.Descriptor{
	property.FilterInput:   {Default: property.FilterValue(filter.Identity())},
	property.FilterDirect:  {Default: property.FilterValue(filter.Identity())},
	property.FilterEffects: {Default: property.FilterValue(filter.Identity())},
}

func withFilterSlots(m map[property.ID]property.Descriptor) map[property.ID]property.Descriptor {
	for id, d := range filterSlots {
		m[id] = d
	}
	return m
}

var contextSchema = property.NewSchema(map[property.ID]property.Descriptor{
	property.Gain:                         {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.Position:                     {Default: property.Double3Value([3]float64{0, 0, 0})},
	property.Orientation:                  {Default: property.Double6Value([6]float64{0, 1, 0, 0, 0, 1})},
	property.DefaultPannerStrategy:        {Default: property.IntValue(0)},
	property.DefaultDistanceModel:         {Default: property.IntValue(0)},
	property.DefaultDistanceRef:           {Default: property.DoubleValue(1), Range: rng(0, 1e6)},
	property.DefaultDistanceMax:           {Default: property.DoubleValue(50), Range: rng(0, 1e6)},
	property.DefaultRolloff:               {Default: property.DoubleValue(1), Range: rng(0, 1e6)},
	property.DefaultClosenessBoost:        {Default: property.DoubleValue(0)},
	property.DefaultClosenessBoostDistance: {Default: property.DoubleValue(0), Range: rng(0, 1e6)},
})

var bufferGeneratorSchema = property.NewSchema(withFilterSlots(map[property.ID]property.Descriptor{
	property.Gain:             {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.Looping:          {Default: property.IntValue(0)},
	property.PitchBend:        {Default: property.DoubleValue(1.0), Range: rng(0.001, 100)},
	property.Buffer:           {Default: property.ObjectValue(0)},
	property.PlaybackPosition: {Default: property.DoubleValue(0)},
}))

var noiseGeneratorSchema = property.NewSchema(map[property.ID]property.Descriptor{
	property.Gain:      {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.NoiseType: {Default: property.IntValue(0)},
})

var streamingGeneratorSchema = property.NewSchema(map[property.ID]property.Descriptor{
	property.Gain:             {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.Looping:          {Default: property.IntValue(0)},
	property.PlaybackPosition: {Default: property.DoubleValue(0)},
})

var directSourceSchema = property.NewSchema(withFilterSlots(map[property.ID]property.Descriptor{
	property.Gain: {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
}))

var pannedSourceSchema = property.NewSchema(withFilterSlots(map[property.ID]property.Descriptor{
	property.Gain:           {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.Azimuth:        {Default: property.DoubleValue(0), Range: rng(-180, 180)},
	property.Elevation:      {Default: property.DoubleValue(0), Range: rng(-90, 90)},
	property.PanningScalar:  {Default: property.DoubleValue(0), Range: rng(-1, 1)},
	property.PannerStrategy: {Default: property.IntValue(1)},
}))

var source3DSchema = property.NewSchema(withFilterSlots(map[property.ID]property.Descriptor{
	property.Gain:                   {Default: property.DoubleValue(1.0), Range: rng(0, 1e6)},
	property.Position:               {Default: property.Double3Value([3]float64{0, 0, 0})},
	property.DistanceModel:          {Default: property.IntValue(0)},
	property.DistanceRef:            {Default: property.DoubleValue(1), Range: rng(0, 1e6)},
	property.DistanceMax:            {Default: property.DoubleValue(50), Range: rng(0, 1e6)},
	property.Rolloff:                {Default: property.DoubleValue(1), Range: rng(0, 1e6)},
	property.ClosenessBoost:         {Default: property.DoubleValue(0)},
	property.ClosenessBoostDistance: {Default: property.DoubleValue(0), Range: rng(0, 1e6)},
	property.PannerStrategy:         {Default: property.IntValue(1)},
}))

var echoSchema = property.NewSchema(map[property.ID]property.Descriptor{})

var reverbSchema = property.NewSchema(map[property.ID]property.Descriptor{
	property.InputFilterEnabled:                 {Default: property.IntValue(0)},
	property.InputFilterCutoff:                  {Default: property.DoubleValue(22050), Range: rng(1, 22050)},
	property.MeanFreePath:                       {Default: property.DoubleValue(0.01), Range: rng(0, 1)},
	property.T60:                                {Default: property.DoubleValue(1.0), Range: rng(0.001, 100)},
	property.LateReflectionsLFRolloff:           {Default: property.DoubleValue(1.0), Range: rng(0.1, 2)},
	property.LateReflectionsLFReference:         {Default: property.DoubleValue(200), Range: rng(1, 22000)},
	property.LateReflectionsHFRolloff:           {Default: property.DoubleValue(0.5), Range: rng(0.1, 2)},
	property.LateReflectionsHFReference:         {Default: property.DoubleValue(4000), Range: rng(1, 22000)},
	property.LateReflectionsDiffusion:           {Default: property.DoubleValue(1.0), Range: rng(0, 1)},
	property.LateReflectionsModulationDepth:     {Default: property.DoubleValue(0.01), Range: rng(0, 1)},
	property.LateReflectionsModulationFrequency: {Default: property.DoubleValue(0.5), Range: rng(0.01, 100)},
	property.LateReflectionsDelay:               {Default: property.DoubleValue(0.003), Range: rng(0, 1)},
})

// schemaFor returns the property schema recognized by objects of t, or
// ok=false for handle types that carry no caller-settable properties
// (Buffer, StreamHandle).
func schemaFor(t handle.Type) (property.Schema, bool) {
	switch t {
	case handle.TypeContext:
		return contextSchema, true
	case handle.TypeBufferGenerator:
		return bufferGeneratorSchema, true
	case handle.TypeNoiseGenerator:
		return noiseGeneratorSchema, true
	case handle.TypeStreamingGenerator:
		return streamingGeneratorSchema, true
	case handle.TypeDirectSource:
		return directSourceSchema, true
	case handle.TypePannedSource:
		return pannedSourceSchema, true
	case handle.TypeSource3D:
		return source3DSchema, true
	case handle.TypeGlobalEcho:
		return echoSchema, true
	case handle.TypeGlobalFdnReverb:
		return reverbSchema, true
	default:
		return nil, false
	}
}
