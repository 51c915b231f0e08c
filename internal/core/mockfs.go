package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Files are
// registered with SetFile; parent directories are synthesized so Stat
// and ReadDir work on every intermediate path. ReadErr and WriteErr,
// when set, are returned by every read or write call.
type MockFileSystem struct {
	ReadErr  error
	WriteErr error
	StatErr  error

	files map[string][]byte
	dirs  map[string]bool
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true, ".": true},
	}
}

// SetFile registers a file and synthesizes its parent directories.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	clean := normalizeMockPath(p)
	m.files[clean] = data
	m.registerParents(path.Dir(clean))
}

// SetDir registers a directory (and its parents) without any files.
func (m *MockFileSystem) SetDir(p string) {
	m.registerParents(normalizeMockPath(p))
}

// GetFile returns the current contents of a registered file.
func (m *MockFileSystem) GetFile(p string) ([]byte, bool) {
	data, ok := m.files[normalizeMockPath(p)]
	return data, ok
}

func (m *MockFileSystem) registerParents(dir string) {
	for {
		m.dirs[dir] = true
		if dir == "/" || dir == "." {
			return
		}
		dir = path.Dir(dir)
	}
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[normalizeMockPath(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, p string, data []byte, _ os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.SetFile(p, data)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	clean := normalizeMockPath(p)
	if data, ok := m.files[clean]; ok {
		return &mockFileInfo{name: path.Base(clean), size: int64(len(data))}, nil
	}
	if m.dirs[clean] {
		return &mockFileInfo{name: path.Base(clean), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	clean := normalizeMockPath(p)
	if !m.dirs[clean] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	for f, data := range m.files {
		if path.Dir(f) != clean {
			continue
		}
		base := path.Base(f)
		if !seen[base] {
			seen[base] = true
			entries = append(entries, &mockDirEntry{info: &mockFileInfo{name: base, size: int64(len(data))}})
		}
	}
	for d := range m.dirs {
		if d == clean || path.Dir(d) != clean {
			continue
		}
		base := path.Base(d)
		if !seen[base] {
			seen[base] = true
			entries = append(entries, &mockDirEntry{info: &mockFileInfo{name: base, dir: true}})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func normalizeMockPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi *mockFileInfo) Name() string { return fi.name }
func (fi *mockFileInfo) Size() int64  { return fi.size }
func (fi *mockFileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | PermOwnerRWX
	}
	return PermOwnerRW
}
func (fi *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *mockFileInfo) IsDir() bool        { return fi.dir }
func (fi *mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	info *mockFileInfo
}

func (de *mockDirEntry) Name() string               { return de.info.name }
func (de *mockDirEntry) IsDir() bool                { return de.info.dir }
func (de *mockDirEntry) Type() fs.FileMode          { return de.info.Mode().Type() }
func (de *mockDirEntry) Info() (fs.FileInfo, error) { return de.info, nil }
