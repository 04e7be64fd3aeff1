package analyzer

import "os"

// writeBits covers owner, group and other write permission.
const writeBits = os.FileMode(0o222)

// PermissionResult is the finalized accumulator of a PermissionVisitor.
type PermissionResult struct {
	// Writable lists paths with any write bit set, in visitation order.
	Writable []string `json:"writable"`
}

// PermissionVisitor records every path whose mode has a write bit set for
// owner, group or other. Directories are checked too: a writable directory
// is as much of a signal as a writable file.
type PermissionVisitor struct {
	result PermissionResult
}

// NewPermissionVisitor creates a permission visitor.
func NewPermissionVisitor() *PermissionVisitor {
	return &PermissionVisitor{}
}

// Name implements Visitor.
func (v *PermissionVisitor) Name() string { return "permissions" }

// VisitFile records the file when any write bit is set.
func (v *PermissionVisitor) VisitFile(f *File) {
	v.check(f.Path(), f.Mode())
}

// VisitDirectory records the directory when any write bit is set.
func (v *PermissionVisitor) VisitDirectory(d *Directory) {
	v.check(d.Path(), d.Mode())
}

func (v *PermissionVisitor) check(path string, mode os.FileMode) {
	if mode.Perm()&writeBits != 0 {
		v.result.Writable = append(v.result.Writable, path)
	}
}

// Result implements Visitor.
func (v *PermissionVisitor) Result() any { return v.Report() }

// Report returns the typed finalized accumulator.
func (v *PermissionVisitor) Report() PermissionResult { return v.result }
