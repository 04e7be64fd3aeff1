package analyzer

// FileStat represents a single file path and size.
type FileStat struct {
	// Path is the file path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// SizeResult is the finalized accumulator of a FileSizeVisitor.
type SizeResult struct {
	// ThresholdBytes is the configured size threshold.
	ThresholdBytes int64 `json:"threshold_bytes"`
	// FilesScanned is the number of files inspected.
	FilesScanned int64 `json:"files_scanned"`
	// TotalBytes is the cumulative size of all inspected files.
	TotalBytes int64 `json:"total_bytes"`
	// Oversized lists files strictly larger than the threshold, in
	// visitation order.
	Oversized []FileStat `json:"oversized"`
}

// FileSizeVisitor records files whose size strictly exceeds a threshold,
// along with the total count and byte sum of everything it scanned.
type FileSizeVisitor struct {
	result SizeResult
}

// NewFileSizeVisitor creates a size visitor with the given threshold in bytes.
func NewFileSizeVisitor(thresholdBytes int64) *FileSizeVisitor {
	return &FileSizeVisitor{result: SizeResult{ThresholdBytes: thresholdBytes}}
}

// Name implements Visitor.
func (v *FileSizeVisitor) Name() string { return "size" }

// VisitFile counts the file and records it when oversized.
func (v *FileSizeVisitor) VisitFile(f *File) {
	v.result.FilesScanned++
	v.result.TotalBytes += f.Size()

	if f.Size() > v.result.ThresholdBytes {
		v.result.Oversized = append(v.result.Oversized, FileStat{Path: f.Path(), Size: f.Size()})
	}
}

// VisitDirectory implements Visitor. Directories have no size behavior.
func (v *FileSizeVisitor) VisitDirectory(*Directory) {}

// Result implements Visitor.
func (v *FileSizeVisitor) Result() any { return v.Report() }

// Report returns the typed finalized accumulator.
func (v *FileSizeVisitor) Report() SizeResult { return v.result }
