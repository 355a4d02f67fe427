package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave splits interleaved stereo frames into left and right.
// It processes min(len(left), len(right), len(src)/2) frames and returns
// that count.
func Deinterleave(left, right, src []float64) int {
	n := min(len(left), len(right), len(src)/2)
	for i := 0; i < n; i++ {
		left[i] = src[2*i]
		right[i] = src[2*i+1]
	}
	return n
}

// Interleave merges left and right into interleaved stereo frames in dst
// and returns the number of frames written.
func Interleave(dst, left, right []float64) int {
	n := min(len(left), len(right), len(dst)/2)
	for i := 0; i < n; i++ {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
	return n
}
