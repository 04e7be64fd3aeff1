package analyzer

import "errors"

// ErrNotDirectory indicates the configured root path exists but is not a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// ErrDuplicateVisitor indicates two registered visitors share the same name.
var ErrDuplicateVisitor = errors.New("duplicate visitor name")

// EntryError records a single recovered traversal failure: an entry whose
// listing or metadata could not be read. The walk continues past it.
type EntryError struct {
	// Path is the entry that failed.
	Path string `json:"path"`
	// Reason describes why the entry was skipped.
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e EntryError) Error() string {
	return e.Path + ": " + e.Reason
}
