// Package property implements the typed property model objects expose
// across the ABI: a closed set of property ids, a typed Value able to hold
// an int, a double, a handle, a double3/double6 vector, or a filter, and a bounded
// Ring that buffers writes from any caller thread for the audio thread to
// apply once per block.
package property
