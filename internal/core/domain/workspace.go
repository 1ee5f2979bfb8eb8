package domain

// Workspace is the folder of documents the pipeline operates on.
// Exactly one workspace is live per session.
type Workspace struct {
	// Root is the selected folder path.
	Root string

	// Included is the ordered list of file paths to preprocess.
	// Order is preserved through extraction and embedding.
	Included []string
}

// IsConfigured returns true if a root and a non-empty include list are set.
func (w Workspace) IsConfigured() bool {
	return w.Root != "" && len(w.Included) > 0
}
