// Package generator implements the leaf producers of the audio graph:
// BufferGenerator (random-access playback of an immutable buffer.Buffer),
// NoiseGenerator (uniform/Voss-McCartney/filtered-brown noise), and
// StreamingGenerator (background decode + resample, handed to the audio
// thread through a pair of lock-free rings). All three satisfy Generator,
// which a source sums into its staging buffer once per block.
package generator
