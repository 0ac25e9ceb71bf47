package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the read-only interface the comparator needs from a
// filesystem. Implementations include the local filesystem; a network
// share backend would satisfy the same contract.
type Backend interface {
	// Stat returns metadata for the given path
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// ReadDir returns the immediate children of a directory, one level
	// only - never a recursive walk
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)

	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
