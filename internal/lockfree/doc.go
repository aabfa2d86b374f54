// Package lockfree provides bounded ring buffers used to move data between
// the audio thread and everything else without taking a lock on the hot
// path.
//
// Two shapes are provided:
//
//   - SPSC: one producer goroutine, one consumer goroutine. Two atomic
//     cursors and a power-of-2 mask, no compare-and-swap.
//   - MPSC: many producer goroutines, one consumer goroutine. Producers
//     reserve a slot with a compare-and-swap on the enqueue cursor and
//     stamp a per-slot sequence number; the single consumer polls slots in order and only accepts a
//     slot once its sequence matches, so a producer that reserved a slot
//     but hasn't finished writing it yet simply isn't visible until it is.
//
// Both are deliberately not MPMC: this package only ever needs a single
// consumer (the audio thread, or a single background worker), and dropping
// the MPMC case avoids the accurate-length and fairness problems that come
// with multiple consumers racing for the same slot.
package lockfree
