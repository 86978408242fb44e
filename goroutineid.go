package rtlocal

import "runtime"

// getGoroutineID returns the current goroutine's id by parsing it out of
// a runtime.Stack dump. Lifted directly from the teacher's own
// isLoopThread/getGoroutineID pair (loop.go): Go exposes no public
// goroutine-local storage, so this is the idiomatic way this author's
// code enforces single-goroutine affinity, and it is the same technique
// this package needs to stand in for original_source's thread_local!.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
