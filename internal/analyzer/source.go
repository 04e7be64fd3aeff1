package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	krfs "github.com/kr/fs"
)

// FileSystem is the traversal's view of the file system. It extends the
// walker's interface with Stat so dangling symbolic links can be told
// apart from resolvable ones. Injectable for tests.
type FileSystem interface {
	krfs.FileSystem

	// Stat follows symbolic links.
	Stat(name string) (os.FileInfo, error)
}

// osFS is the real file system.
type osFS struct{}

func (osFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	f, err := os.Open(dirname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdir(0)
}

func (osFS) Lstat(name string) (os.FileInfo, error) { return os.Lstat(name) }

func (osFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (osFS) Join(elem ...string) string { return filepath.Join(elem...) }

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// matchExclude checks if path matches any exclusion regex.
func matchExclude(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// SourceConfig configures a traversal source.
type SourceConfig struct {
	// FS is the file system to walk. Defaults to the OS file system.
	FS FileSystem
	// Categorizer resolves file categories. May be nil.
	Categorizer Categorizer
	// Excludes skips matching paths; a matching directory's subtree is
	// skipped without being listed.
	Excludes []*regexp.Regexp
	// MaxDepth limits traversal depth (0 = unlimited).
	MaxDepth int
	// Debug enables debug output.
	Debug bool
}

// Source produces a depth-first, pre-order stream of elements rooted at a
// path. Each Step pulls at most one directory listing; the pending
// work-list holds one listing per open level, so peak memory is bounded by
// tree depth times fan-out.
//
// A fresh Source re-reads the file system: there is no snapshot isolation,
// and a Source is not restartable.
type Source struct {
	root     string
	fsys     FileSystem
	walker   *krfs.Walker
	conf     SourceConfig
	log      logger
	cur      Element
	entryErr *EntryError
}

// NewSource creates a source rooted at root. The root itself is the first
// element produced.
func NewSource(root string, conf SourceConfig) *Source {
	if conf.FS == nil {
		conf.FS = osFS{}
	}

	return &Source{
		root:   root,
		fsys:   conf.FS,
		walker: krfs.WalkFS(root, conf.FS),
		conf:   conf,
		log:    logger{enabled: conf.Debug},
	}
}

// Step advances to the next entry. After a true return exactly one of
// Element and Err is non-nil. A false return means the subtree is
// exhausted; ceasing to call Step is the cancellation contract, no
// teardown is required.
func (s *Source) Step() bool {
	s.cur, s.entryErr = nil, nil

	for s.walker.Step() {
		path := s.walker.Path()

		if err := s.walker.Err(); err != nil {
			s.log.printf("[debug]: error accessing path %s: %v\n", path, err)
			s.entryErr = &EntryError{Path: path, Reason: err.Error()}

			return true
		}

		info := s.walker.Stat()

		if s.conf.MaxDepth > 0 && calculateDepth(path, s.root) > s.conf.MaxDepth {
			if info.IsDir() {
				s.log.printf("[debug]: skipping directory (beyond depth %d): %s\n", s.conf.MaxDepth, path)
				s.walker.SkipDir()
			}

			continue
		}

		if re := matchExclude(path, s.conf.Excludes); re != nil {
			s.log.printf("[debug]: excluding path: %s (matched %s)\n", filepath.ToSlash(path), re.String())

			if info.IsDir() {
				s.walker.SkipDir()
			}

			continue
		}

		mode := info.Mode()

		switch {
		case mode.IsDir():
			s.cur = NewDirectory(path, mode)

			return true
		case mode.IsRegular():
			s.cur = NewFile(path, info.Size(), mode, s.conf.Categorizer)

			return true
		case mode&os.ModeSymlink != 0:
			// Links are never followed (no cycle tracking needed), but a
			// dangling one is worth surfacing.
			if _, err := s.fsys.Stat(path); err != nil {
				s.entryErr = &EntryError{Path: path, Reason: "dangling symbolic link: " + err.Error()}

				return true
			}

			s.log.printf("[debug]: skipping symbolic link: %s\n", path)
		default:
			// Sockets, devices, pipes.
			s.log.printf("[debug]: skipping irregular entry: %s\n", path)
		}
	}

	return false
}

// Element returns the element produced by the last Step, or nil if that
// step produced an error.
func (s *Source) Element() Element { return s.cur }

// Err returns the recovered error produced by the last Step, or nil if
// that step produced an element.
func (s *Source) Err() *EntryError { return s.entryErr }
