package domain

// EventKind discriminates progress events within a run's stream.
type EventKind string

// Event kinds.
const (
	// EventExtract is emitted after each file during the extract phase.
	EventExtract EventKind = "extract"

	// EventEmbed is emitted after each batch during the embed phase.
	EventEmbed EventKind = "embed"

	// EventChunk is emitted after each chunk during an exhaustive sweep.
	EventChunk EventKind = "chunk"

	// EventComplete terminates a successful run.
	EventComplete EventKind = "complete"

	// EventCancelled terminates a cancelled run. Never reported as an error.
	EventCancelled EventKind = "cancelled"

	// EventError terminates a failed run.
	EventError EventKind = "error"
)

// PreprocessEvent is a progress event for one preprocessing run.
// Events of a run are delivered in increasing progress order; exactly one
// terminal event (complete, cancelled or error) closes the stream.
type PreprocessEvent struct {
	// Kind is the event discriminator.
	Kind EventKind

	// RunID identifies the run that produced the event.
	RunID string

	// Current and Total carry phase progress: files during extract,
	// cumulative chunks during embed.
	Current int
	Total   int

	// Path is the file just processed (extract events only).
	Path string

	// Documents and Chunks summarise a completed run (complete events only).
	Documents int
	Chunks    int

	// Message carries the human-readable failure (error events only).
	Message string
}

// SweepEvent is a progress event for one exhaustive sweep.
type SweepEvent struct {
	// Kind is the event discriminator.
	Kind EventKind

	// RunID identifies the sweep that produced the event.
	RunID string

	// Mode is the sweep slot.
	Mode SweepMode

	// Current and Total carry cumulative chunk progress.
	Current int
	Total   int

	// Path is the document currently being swept.
	Path string

	// Result is the verdict just produced (chunk events only).
	Result *ClassificationResult

	// Relevant, NonRelevant and Uncertain are the bucket totals
	// (complete and cancelled events).
	Relevant    int
	NonRelevant int
	Uncertain   int

	// Message carries the human-readable failure (error events only).
	Message string
}

// WatchEvent reports that an included file changed on disk after a completed
// preprocessing run, making the volatile index stale.
type WatchEvent struct {
	// Path is the changed file.
	Path string
}
