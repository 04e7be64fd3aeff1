package analyzer

import (
	"os"
	"path"
	"sort"
	"time"
)

// fakeInfo implements os.FileInfo for the in-memory file system.
type fakeInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (fi fakeInfo) Name() string       { return fi.name }
func (fi fakeInfo) Size() int64        { return fi.size }
func (fi fakeInfo) Mode() os.FileMode  { return fi.mode }
func (fi fakeInfo) ModTime() time.Time { return time.Time{} }
func (fi fakeInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi fakeInfo) Sys() any           { return nil }

// fakeFS is an in-memory FileSystem. It records every ReadDir call and can
// be told to fail listings or symlink resolution for specific paths, which
// makes the unreadable-entry paths testable without depending on process
// privileges (mode bits are ignored when running as root).
type fakeFS struct {
	infos        map[string]fakeInfo
	failList     map[string]error
	failStat     map[string]error
	readDirCalls []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		infos:    make(map[string]fakeInfo),
		failList: make(map[string]error),
		failStat: make(map[string]error),
	}
}

func (f *fakeFS) addDir(p string, mode os.FileMode) {
	f.infos[p] = fakeInfo{name: path.Base(p), mode: mode | os.ModeDir}
}

func (f *fakeFS) addFile(p string, size int64, mode os.FileMode) {
	f.infos[p] = fakeInfo{name: path.Base(p), size: size, mode: mode}
}

func (f *fakeFS) addSymlink(p string, dangling bool) {
	f.infos[p] = fakeInfo{name: path.Base(p), mode: os.ModeSymlink | 0o777}
	if dangling {
		f.failStat[p] = os.ErrNotExist
	}
}

func (f *fakeFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	f.readDirCalls = append(f.readDirCalls, dirname)

	if err := f.failList[dirname]; err != nil {
		return nil, err
	}

	var out []os.FileInfo

	for p, info := range f.infos {
		if path.Dir(p) == dirname && p != dirname {
			out = append(out, info)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	return out, nil
}

func (f *fakeFS) Lstat(name string) (os.FileInfo, error) {
	info, ok := f.infos[name]
	if !ok {
		return nil, os.ErrNotExist
	}

	return info, nil
}

func (f *fakeFS) Stat(name string) (os.FileInfo, error) {
	if err := f.failStat[name]; err != nil {
		return nil, err
	}

	return f.Lstat(name)
}

func (f *fakeFS) Join(elem ...string) string { return path.Join(elem...) }
