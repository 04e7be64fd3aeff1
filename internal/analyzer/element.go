package analyzer

import "os"

// categoryUnknown is reported when no classification service is configured.
const categoryUnknown = "unknown"

// Categorizer maps a file path to a category label.
type Categorizer interface {
	Categorize(path string) string
}

// Element is one file-system entry produced by a traversal. Accept calls
// exactly one of the visitor's methods, matching the element's kind, so
// visitors never branch on the concrete type.
type Element interface {
	// Path returns the entry's path. Unique within one traversal.
	Path() string
	// Mode returns the entry's file mode bits.
	Mode() os.FileMode
	// Accept dispatches the element to the visitor.
	Accept(v Visitor)
}

// File is a regular file.
type File struct {
	path       string
	size       int64
	mode       os.FileMode
	categorize Categorizer
	category   string
	classified bool
}

// NewFile creates a file element. The categorizer may be nil, in which
// case Category reports "unknown".
func NewFile(path string, size int64, mode os.FileMode, c Categorizer) *File {
	return &File{path: path, size: size, mode: mode, categorize: c}
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Size returns the file's size in bytes.
func (f *File) Size() int64 { return f.size }

// Mode returns the file's mode bits.
func (f *File) Mode() os.FileMode { return f.mode }

// Category returns the file's inferred category label. It is resolved on
// first use and memoized; elements are only ever touched by the single
// goroutine driving the walk.
func (f *File) Category() string {
	if !f.classified {
		if f.categorize != nil {
			f.category = f.categorize.Categorize(f.path)
		} else {
			f.category = categoryUnknown
		}
		f.classified = true
	}

	return f.category
}

// Accept dispatches the file to the visitor.
func (f *File) Accept(v Visitor) { v.VisitFile(f) }

// Directory is a directory entry. Its children are not stored on the
// node: they are emitted by the traversal after it, keeping peak memory
// proportional to tree depth times fan-out rather than tree size.
type Directory struct {
	path string
	mode os.FileMode
}

// NewDirectory creates a directory element.
func NewDirectory(path string, mode os.FileMode) *Directory {
	return &Directory{path: path, mode: mode}
}

// Path returns the directory's path.
func (d *Directory) Path() string { return d.path }

// Mode returns the directory's mode bits.
func (d *Directory) Mode() os.FileMode { return d.mode }

// Accept dispatches the directory to the visitor.
func (d *Directory) Accept(v Visitor) { v.VisitDirectory(d) }
