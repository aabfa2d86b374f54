// Package event implements outbound event delivery: Looped and Finished
// notifications queued from the audio thread and drained
// by a caller polling syz_contextGetNextEvent. Every event carries weak
// references to the handles it mentions; if any of those handles has gone
// permanently dead between enqueue and drain, the event is suppressed
// rather than delivered with a dangling handle.
package event
