package digest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/hashdiff/pkg/storage"
)

// NotReadableError indicates a file could not be opened or a read
// failed partway through hashing
type NotReadableError struct {
	Path string
	Err  error
}

func (e *NotReadableError) Error() string {
	return fmt.Sprintf("file not readable: %s: %v", e.Path, e.Err)
}

func (e *NotReadableError) Unwrap() error {
	return e.Err
}

// ReaderWrapper wraps a reader, e.g. for rate limiting
type ReaderWrapper func(io.Reader) io.Reader

// Digester computes the byte size and content digest of a single file.
// The comparator depends on this contract rather than the concrete
// engine so callers can instrument or replace it.
type Digester interface {
	// Sum streams the file at path and returns its byte size and hex digest
	Sum(ctx context.Context, path string) (int64, string, error)

	// Algorithm returns the name of the hash function in use
	Algorithm() string
}

// Engine is the streaming digest engine. Files are read through pooled
// fixed-size buffers, so memory use is independent of file size.
type Engine struct {
	backend       storage.Backend
	algorithm     Algorithm
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewEngine creates a digest engine for the given backend and algorithm
func NewEngine(backend storage.Backend, algorithm Algorithm, bufferSize int) *Engine {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Engine{
		backend:    backend,
		algorithm:  algorithm,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (e *Engine) SetReaderWrapper(wrapper ReaderWrapper) {
	e.readerWrapper = wrapper
}

// Algorithm returns the name of the hash function in use
func (e *Engine) Algorithm() string {
	return string(e.algorithm)
}

// Sum streams the file at path through the configured hash function and
// returns its byte size and hex digest. Any open or read failure is
// reported as a NotReadableError.
func (e *Engine) Sum(ctx context.Context, path string) (int64, string, error) {
	reader, err := e.backend.Open(ctx, path)
	if err != nil {
		return 0, "", &NotReadableError{Path: path, Err: err}
	}
	defer reader.Close()

	var r io.Reader = reader
	if e.readerWrapper != nil {
		r = e.readerWrapper(reader)
	}

	hasher := e.algorithm.New()

	bufPtr := e.bufferPool.Get().(*[]byte)
	defer e.bufferPool.Put(bufPtr)
	buf := *bufPtr

	var size int64
	for {
		select {
		case <-ctx.Done():
			return 0, "", ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
			size += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, "", &NotReadableError{Path: path, Err: err}
		}
	}

	return size, fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
