package generator

// command is one block-sized slot exchanged between a StreamingGenerator's
// worker and the audio thread through the free/filled rings.
type command struct {
	data []float32 // channels*blockSize samples; only data[:framesValid*channels] is real audio

	framesValid   int
	loopedCount   int
	finishedCount int
	underrun      bool

	finalPositionFrames uint64
}
