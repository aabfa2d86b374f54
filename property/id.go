package property

// ID is the closed set of property identifiers an object may expose. Not
// every object type recognizes every id; Schema narrows that down per
// object type.
type ID int

const (
	Azimuth ID = iota
	Buffer
	Elevation
	Gain
	PannerStrategy
	DefaultPannerStrategy
	PanningScalar
	Position
	Orientation

	ClosenessBoost
	ClosenessBoostDistance
	DistanceMax
	DistanceModel
	DistanceRef
	Rolloff

	DefaultClosenessBoost
	DefaultClosenessBoostDistance
	DefaultDistanceMax
	DefaultDistanceModel
	DefaultDistanceRef
	DefaultRolloff

	Looping

	NoiseType

	PitchBend

	// PlaybackPosition is a generator's own read/write position, in
	// seconds, for the buffer/stream generator kinds.
	PlaybackPosition

	InputFilterEnabled
	InputFilterCutoff
	MeanFreePath
	T60
	LateReflectionsLFRolloff
	LateReflectionsLFReference
	LateReflectionsHFRolloff
	LateReflectionsHFReference
	LateReflectionsDiffusion
	LateReflectionsModulationDepth
	LateReflectionsModulationFrequency
	LateReflectionsDelay

	Filter
	FilterDirect
	FilterEffects
	FilterInput

	idCount
)

var names = map[ID]string{
	Azimuth:                             "azimuth",
	Buffer:                              "buffer",
	Elevation:                           "elevation",
	Gain:                                "gain",
	PannerStrategy:                      "panner_strategy",
	DefaultPannerStrategy:                "default_panner_strategy",
	PanningScalar:                       "panning_scalar",
	Position:                            "position",
	Orientation:                         "orientation",
	ClosenessBoost:                      "closeness_boost",
	ClosenessBoostDistance:              "closeness_boost_distance",
	DistanceMax:                         "distance_max",
	DistanceModel:                       "distance_model",
	DistanceRef:                         "distance_ref",
	Rolloff:                             "rolloff",
	DefaultClosenessBoost:               "default_closeness_boost",
	DefaultClosenessBoostDistance:       "default_closeness_boost_distance",
	DefaultDistanceMax:                  "default_distance_max",
	DefaultDistanceModel:                "default_distance_model",
	DefaultDistanceRef:                  "default_distance_ref",
	DefaultRolloff:                      "default_rolloff",
	Looping:                             "looping",
	NoiseType:                           "noise_type",
	PitchBend:                           "pitch_bend",
	PlaybackPosition:                    "playback_position",
	InputFilterEnabled:                  "input_filter_enabled",
	InputFilterCutoff:                   "input_filter_cutoff",
	MeanFreePath:                        "mean_free_path",
	T60:                                 "t60",
	LateReflectionsLFRolloff:            "late_reflections_lf_rolloff",
	LateReflectionsLFReference:          "late_reflections_lf_reference",
	LateReflectionsHFRolloff:            "late_reflections_hf_rolloff",
	LateReflectionsHFReference:          "late_reflections_hf_reference",
	LateReflectionsDiffusion:            "late_reflections_diffusion",
	LateReflectionsModulationDepth:      "late_reflections_modulation_depth",
	LateReflectionsModulationFrequency:  "late_reflections_modulation_frequency",
	LateReflectionsDelay:                "late_reflections_delay",
	Filter:                              "filter",
	FilterDirect:                        "filter_direct",
	FilterEffects:                       "filter_effects",
	FilterInput:                         "filter_input",
}

func (id ID) String() string {
	if s, ok := names[id]; ok {
		return s
	}
	return "unknown_property"
}

// Valid reports whether id is within the known range.
func (id ID) Valid() bool {
	return id >= 0 && id < idCount
}
