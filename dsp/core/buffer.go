package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// It only allocates when cap(buf) < n, so callers pre-size buffers outside
// the audio callback and call EnsureLen inside it.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}
