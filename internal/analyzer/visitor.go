package analyzer

// Visitor is one independent analysis applied to every element of a walk.
// A visitor accumulates private state between construction and the end of
// one walk; construct a fresh instance per walk.
type Visitor interface {
	// Name identifies the visitor in the report. Must be unique among the
	// visitors registered with one Analyzer.
	Name() string
	// VisitFile processes a file element.
	VisitFile(f *File)
	// VisitDirectory processes a directory element.
	VisitDirectory(d *Directory)
	// Result returns the finalized accumulator. Only meaningful after the
	// walk completes.
	Result() any
}
