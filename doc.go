// Package segments tracks which contiguous ranges of an ordered axis
// (typically time) are already cached, so a consumer can fetch only the gaps
// of a new request and record fetched ranges back without overlap.
//
// The core is pure: GetMissingSegments and RecordSegment take a SegmentMap
// value and never modify it. Tracker and HistoryLog wrap the core for
// concurrent use and on-disk persistence.
//
// The library is organised into several files for clarity:
//
//	bound.go        – optional range endpoints & infinity-aware comparisons
//	range.go        – Range type, validation & sentinel errors
//	segmentmap.go   – SegmentMap aggregate
//	sort.go         – canonical descending order
//	missing.go      – gap computation
//	record.go       – segment recording & history replay
//	time.go         – time.Time helpers for the Unix-nanosecond axis
//	tracker.go      – snapshot holder for concurrent readers & one writer
//	stats.go        – tracker stats accessors
//	options.go      – configuration structs & defaults
//	history_log.go  – file-backed append-only history log
//	codec.go        – fixed-width value codecs for the log
//	io.go           – record encoding, append & replay with CRC integrity
//	config.go       – persisted log layout
//	meta.go         – committed record counter
//	buffer.go       – pooled record buffers
//	flush_close.go  – flush & close helpers
package segments
