package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Entry is one child of a listed directory. Metadata that follows symbolic
// links is read on first use and cached.
type Entry struct {
	Path string // Directory path joined with Name.
	Name string // Base name.

	dirEntry fs.DirEntry
	info     fs.FileInfo
	statErr  error
	statted  bool
}

func newEntry(directory string, dirEntry fs.DirEntry) *Entry {
	return &Entry{
		Path:     filepath.Join(directory, dirEntry.Name()),
		Name:     dirEntry.Name(),
		dirEntry: dirEntry,
	}
}

// Info returns the entry's metadata with symbolic links resolved.
// ok is false when the stat call failed.
func (e *Entry) Info() (info fs.FileInfo, ok bool) {
	if !e.statted {
		e.info, e.statErr = os.Stat(e.Path)
		e.statted = true
	}
	return e.info, e.statErr == nil
}

// IsSymlink reports whether the entry itself is a symbolic link.
func (e *Entry) IsSymlink() bool {
	return e.dirEntry.Type()&fs.ModeSymlink != 0
}

// IsDir reports whether the entry is a directory or a link to one.
func (e *Entry) IsDir() bool {
	if !e.IsSymlink() {
		return e.dirEntry.IsDir()
	}
	info, ok := e.Info()
	return ok && info.IsDir()
}

// IsFile reports whether the entry is a regular file or a link to one.
func (e *Entry) IsFile() bool {
	if !e.IsSymlink() {
		return e.dirEntry.Type().IsRegular()
	}
	info, ok := e.Info()
	return ok && info.Mode().IsRegular()
}

// Size returns the size in bytes reported by stat.
func (e *Entry) Size() (int64, bool) {
	info, ok := e.Info()
	if !ok {
		return 0, false
	}
	return info.Size(), true
}

// ModTime returns the last modification time reported by stat.
func (e *Entry) ModTime() (time.Time, bool) {
	info, ok := e.Info()
	if !ok {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Permissions returns the permission bits reported by stat.
func (e *Entry) Permissions() (fs.FileMode, bool) {
	info, ok := e.Info()
	if !ok {
		return 0, false
	}
	return info.Mode().Perm(), true
}
