package domain

// Verdict is the discrete outcome of classifying one chunk against a query.
type Verdict string

// Available verdicts.
const (
	// VerdictRelevant marks the chunk as answering the query.
	VerdictRelevant Verdict = "relevant"

	// VerdictNonRelevant marks the chunk as unrelated to the query.
	VerdictNonRelevant Verdict = "non_relevant"

	// VerdictUncertain marks the chunk for manual review, with an optional
	// reason. Provider failures land here so a sweep always completes.
	VerdictUncertain Verdict = "uncertain"
)

// IsValid returns true if the verdict is recognised.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictRelevant, VerdictNonRelevant, VerdictUncertain:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Verdict) String() string {
	return string(v)
}

// ClassificationResult is the outcome for one chunk during an exhaustive
// sweep. Results are derived; the core only produces the initial verdict.
type ClassificationResult struct {
	// DocumentPath identifies the owning document.
	DocumentPath string

	// ChunkID is the classified chunk's ordinal.
	ChunkID int

	// Page is the 1-based source page of the chunk.
	Page int

	// Text is the chunk text.
	Text string

	// Verdict is the classification outcome.
	Verdict Verdict

	// Reason explains an uncertain verdict. Empty otherwise.
	Reason string
}

// SweepMode names an independent exhaustive-sweep slot. The all-documents
// sweep and the single-document sweep run concurrently without interfering.
type SweepMode string

// Available sweep modes.
const (
	// SweepAllDocuments sweeps every document in the workspace.
	SweepAllDocuments SweepMode = "all"

	// SweepSingleDocument sweeps one selected document.
	SweepSingleDocument SweepMode = "single"
)

// IsValid returns true if the mode is recognised.
func (m SweepMode) IsValid() bool {
	switch m {
	case SweepAllDocuments, SweepSingleDocument:
		return true
	default:
		return false
	}
}
