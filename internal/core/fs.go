package core

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem abstracts file operations so services can run against the
// real OS or an in-memory mock. Every method checks context cancellation
// before touching the disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
}

// osFileSystem is the production FileSystem backed by the os package.
type osFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the real filesystem.
func NewOSFileSystem() FileSystem {
	return &osFileSystem{}
}

func (o *osFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (o *osFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (o *osFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (o *osFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(path)
}
