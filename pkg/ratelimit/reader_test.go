package ratelimit

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		if NewLimiter(0) != nil {
			t.Error("NewLimiter(0) should return nil (no limiting)")
		}
		if NewLimiter(-1) != nil {
			t.Error("NewLimiter(-1) should return nil (no limiting)")
		}
	})

	t.Run("BucketFloor", func(t *testing.T) {
		limiter := NewLimiter(1000)
		if limiter.bucketSize < 64*1024 {
			t.Errorf("bucketSize = %d, want at least 64KB", limiter.bucketSize)
		}
	})

	t.Run("BucketIsOneSecond", func(t *testing.T) {
		limiter := NewLimiter(10 * 1024 * 1024)
		if limiter.bucketSize != 10*1024*1024 {
			t.Errorf("bucketSize = %d, want %d", limiter.bucketSize, 10*1024*1024)
		}
	})
}

func TestNewReaderNilLimiter(t *testing.T) {
	base := strings.NewReader("content")
	if got := NewReader(base, nil); got != base {
		t.Error("NewReader with nil limiter should return the original reader")
	}
}

func TestReaderPreservesContent(t *testing.T) {
	content := []byte("0123456789abcdef0123456789abcdef")
	reader := NewReader(bytes.NewReader(content), NewLimiter(10*1024*1024))

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestLimiterThrottles(t *testing.T) {
	// The bucket starts full at 64KB; reading twice that at 64KB/s
	// must wait roughly a second for the refill.
	limiter := NewLimiter(64 * 1024)
	content := make([]byte, 128*1024)
	reader := NewReader(bytes.NewReader(content), limiter)

	start := time.Now()
	if _, err := io.ReadAll(reader); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Errorf("read completed in %v, expected throttling to around 1s", elapsed)
	}
}

func TestTakeClampsToBucket(t *testing.T) {
	limiter := NewLimiter(1024 * 1024)

	done := make(chan struct{})
	go func() {
		// Larger than the bucket; must not deadlock
		limiter.take(limiter.bucketSize * 4)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("take() blocked on a request larger than the bucket")
	}
}
