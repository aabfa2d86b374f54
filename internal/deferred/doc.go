// Package deferred implements the iteration-tagged deletion queue that lets
// the audio thread publish an object for destruction without blocking on
// whatever cleanup that object needs. Each queued record is
// tagged with the block iteration it was queued on; the deleter only runs a
// record's destructor once the audio thread has completed at least one full
// block past that iteration, guaranteeing no in-flight reference to the
// object survives on the audio thread when the destructor runs.
package deferred
