// Package effect defines the Effect interface shared by the two built-in
// global effects, GlobalEcho (package echo) and GlobalFdnReverb (package
// fdnreverb). A context runs each registered effect once per block, after
// every source has written into that effect's send bus, and adds the
// effect's output straight into the master bus.
package effect
