package stream

import (
	"path/filepath"
	"strings"
)

// extensionFormats maps a lowercased file extension (without the dot) to
// the decode.Registry format key the five built-in decoders are expected
// to be registered under.
var extensionFormats = map[string]string{
	"wav":  "wav",
	"mp3":  "mp3",
	"ogg":  "vorbis",
	"oga":  "vorbis",
	"aif":  "aiff",
	"aiff": "aiff",
	"opus": "opus",
}

// GuessFormat maps path's extension to a decoder format key, or ok=false
// if the extension isn't one of the five built-in formats. A caller whose
// path carries no reliable extension (e.g. an opaque blob behind a custom
// protocol) should pass the format explicitly instead of relying on this.
func GuessFormat(path string) (format string, ok bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	format, ok = extensionFormats[ext]
	return format, ok
}
