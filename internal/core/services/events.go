package services

// Event delivery is fire-and-forget: the core never blocks on a slow or
// absent consumer. Events use a drop-oldest policy so the freshest progress
// counter and the terminal event always land in a buffered channel; there is
// no replay for consumers that start listening late.

// sendEvent delivers ev to ch without blocking. When the buffer is full, the
// oldest queued event is discarded to make room. Returns false only when the
// event could not be queued at all (unbuffered channel with no listener).
func sendEvent[T any](ch chan T, ev T) bool {
	select {
	case ch <- ev:
		return true
	default:
	}

	// Buffer full: drop the oldest event and retry once.
	select {
	case <-ch:
	default:
	}

	select {
	case ch <- ev:
		return true
	default:
		return false
	}
}
