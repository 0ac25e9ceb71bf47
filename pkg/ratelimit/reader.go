package ratelimit

import (
	"io"
	"sync"
	"time"
)

// Limiter is a token bucket shared by all readers hashing under the same
// run, so the cap applies to aggregate throughput rather than per file.
type Limiter struct {
	bytesPerSecond int64

	mu         sync.Mutex
	tokens     int64
	bucketSize int64
	lastRefill time.Time
}

// NewLimiter creates a limiter capped at the given bytes per second.
// A zero or negative limit returns nil, meaning no limiting.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// Allow bursts of one second worth of data, with a 64KB floor so
	// small limits still read in sensible chunks
	bucketSize := bytesPerSecond
	if bucketSize < 64*1024 {
		bucketSize = 64 * 1024
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		bucketSize:     bucketSize,
		lastRefill:     time.Now(),
	}
}

// take blocks until n tokens are available, then consumes them
func (l *Limiter) take(n int64) {
	if n > l.bucketSize {
		n = l.bucketSize
	}
	for {
		l.mu.Lock()
		now := time.Now()
		refill := int64(now.Sub(l.lastRefill).Seconds() * float64(l.bytesPerSecond))
		if refill > 0 {
			l.tokens += refill
			if l.tokens > l.bucketSize {
				l.tokens = l.bucketSize
			}
			l.lastRefill = now
		}

		if l.tokens >= n {
			l.tokens -= n
			l.mu.Unlock()
			return
		}

		wait := time.Duration(float64(n-l.tokens) / float64(l.bytesPerSecond) * float64(time.Second))
		l.mu.Unlock()

		if wait < time.Millisecond {
			wait = time.Millisecond
		}
		time.Sleep(wait)
	}
}

// reader wraps an io.Reader with bandwidth limiting
type reader struct {
	r       io.Reader
	limiter *Limiter
}

// NewReader wraps r so reads are throttled by the limiter.
// A nil limiter returns r unchanged.
func NewReader(r io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return r
	}
	return &reader{r: r, limiter: limiter}
}

// Read implements io.Reader, consuming tokens before each underlying read
func (rr *reader) Read(p []byte) (int, error) {
	want := int64(len(p))
	if want > rr.limiter.bucketSize {
		want = rr.limiter.bucketSize
	}
	rr.limiter.take(want)

	return rr.r.Read(p[:want])
}
