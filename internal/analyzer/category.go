package analyzer

// CategoryResult is the finalized accumulator of a FileCategoryVisitor.
type CategoryResult struct {
	// Counts maps category label to number of files.
	Counts map[string]int64 `json:"counts"`
}

// FileCategoryVisitor counts files per inferred category. Classification
// never fails: files the classification service cannot resolve land in the
// "unknown" category.
type FileCategoryVisitor struct {
	counts map[string]int64
}

// NewFileCategoryVisitor creates a category visitor.
func NewFileCategoryVisitor() *FileCategoryVisitor {
	return &FileCategoryVisitor{counts: make(map[string]int64)}
}

// Name implements Visitor.
func (v *FileCategoryVisitor) Name() string { return "categories" }

// VisitFile increments the count of the file's category.
func (v *FileCategoryVisitor) VisitFile(f *File) {
	v.counts[f.Category()]++
}

// VisitDirectory implements Visitor. Directories are not categorized.
func (v *FileCategoryVisitor) VisitDirectory(*Directory) {}

// Result implements Visitor.
func (v *FileCategoryVisitor) Result() any { return v.Report() }

// Report returns the typed finalized accumulator.
func (v *FileCategoryVisitor) Report() CategoryResult {
	return CategoryResult{Counts: v.counts}
}
