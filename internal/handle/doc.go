// Package handle implements the opaque-handle registry: a thread-safe map
// from a 64-bit integer identity to a
// reference-counted live object, with a "permanently dead" latch and a
// generation counter that lets weak references detect staleness even
// though handle ids themselves are never reused while a weak reference is
// outstanding.
//
// Grounded on obinnaokechukwu-ffgo's handles package (mutex + map, bare
// monotonic id) extended with refcounting, a type discriminator, and
// generations.
package handle
