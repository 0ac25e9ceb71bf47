package digest

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/hashdiff/pkg/storage"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"md5", MD5, false},
		{"sha1", SHA1, false},
		{"sha256", SHA256, false},
		{"", SHA256, false},
		{"crc32", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngineSumKnownDigests(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		want      string
	}{
		{MD5, "5d41402abc4b2a76b9719d911017c592"},
		{SHA1, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{SHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	path := writeTempFile(t, []byte("hello"))
	backend := storage.NewLocal()

	for _, tt := range tests {
		t.Run(string(tt.algorithm), func(t *testing.T) {
			engine := NewEngine(backend, tt.algorithm, 4096)

			size, sum, err := engine.Sum(context.Background(), path)
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if size != 5 {
				t.Errorf("size = %d, want 5", size)
			}
			if sum != tt.want {
				t.Errorf("digest = %s, want %s", sum, tt.want)
			}
		})
	}
}

func TestEngineSumStreamsInChunks(t *testing.T) {
	// Content several times the buffer size exercises the chunked loop
	content := make([]byte, 3*4096+123)
	if _, err := rand.Read(content); err != nil {
		t.Fatalf("rand: %v", err)
	}

	path := writeTempFile(t, content)
	engine := NewEngine(storage.NewLocal(), SHA256, 4096)

	size, sum, err := engine.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	if want := fmt.Sprintf("%x", sha256.Sum256(content)); sum != want {
		t.Errorf("digest = %s, want %s", sum, want)
	}
}

func TestEngineSumDeterministic(t *testing.T) {
	path := writeTempFile(t, []byte("byte-identical content"))
	engine := NewEngine(storage.NewLocal(), SHA256, 4096)

	_, first, err := engine.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	_, second, err := engine.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if first != second {
		t.Errorf("digests differ across calls: %s vs %s", first, second)
	}
}

func TestEngineSumNotReadable(t *testing.T) {
	engine := NewEngine(storage.NewLocal(), SHA256, 4096)

	_, _, err := engine.Sum(context.Background(), filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatal("Sum() error = nil for missing file")
	}

	var notReadable *NotReadableError
	if !errors.As(err, &notReadable) {
		t.Errorf("error = %v, want *NotReadableError", err)
	}
}

func TestEngineMinimumBufferSize(t *testing.T) {
	engine := NewEngine(storage.NewLocal(), SHA256, 16)
	if engine.bufferSize < 4096 {
		t.Errorf("bufferSize = %d, want at least 4096", engine.bufferSize)
	}
}

func TestEngineReaderWrapper(t *testing.T) {
	path := writeTempFile(t, []byte("wrapped"))
	engine := NewEngine(storage.NewLocal(), SHA256, 4096)

	var wrapped bool
	engine.SetReaderWrapper(func(r io.Reader) io.Reader {
		wrapped = true
		return r
	})

	_, sum, err := engine.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if !wrapped {
		t.Error("reader wrapper was not applied")
	}
	if want := fmt.Sprintf("%x", sha256.Sum256([]byte("wrapped"))); sum != want {
		t.Errorf("digest = %s, want %s", sum, want)
	}
}

func TestEngineContextCancellation(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 64*1024)
	path := writeTempFile(t, content)
	engine := NewEngine(storage.NewLocal(), SHA256, 4096)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := engine.Sum(ctx, path)
	if err == nil {
		t.Error("Sum() should fail on a cancelled context")
	}
}
