// Package analyzer walks a directory tree once and dispatches every
// element to a set of independent visitors.
//
// Traversal is lazy and pull-based: elements are produced one at a time
// from an explicit pending work-list, directories before their children,
// and unreadable entries are recorded in an error log instead of
// aborting the walk.
package analyzer
