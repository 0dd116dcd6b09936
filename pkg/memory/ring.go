package memory

import "github.com/pathwise-dev/pathwise/pkg/model"

// turnRing is a fixed-capacity ring buffer of conversation turns. When full,
// appending evicts the oldest turn first. Not safe for concurrent use; the
// owning session log serializes access.
type turnRing struct {
	buf   []model.Turn
	head  int // index of the oldest turn
	count int
}

func newTurnRing(capacity int) *turnRing {
	if capacity < 1 {
		capacity = 1
	}
	return &turnRing{buf: make([]model.Turn, capacity)}
}

func (r *turnRing) append(turn model.Turn) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = turn
		r.count++
		return
	}
	// Full: overwrite the oldest slot and advance
	r.buf[r.head] = turn
	r.head = (r.head + 1) % len(r.buf)
}

func (r *turnRing) len() int {
	return r.count
}

// snapshot returns the retained turns oldest first as a fresh slice.
func (r *turnRing) snapshot() []model.Turn {
	out := make([]model.Turn, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}
