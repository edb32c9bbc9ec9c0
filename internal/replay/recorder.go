package replay

import (
	"sort"

	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// Default recorder sizes.
const (
	DefaultReplayCapacity = 600  // ~10 s at 60 Hz
	DefaultGhostCapacity  = 4500 // ~5 min at 60 Hz, sampled every 4 ticks
	DefaultGhostSample    = 4
)

// Recorder captures the last N full frames for replay and a longer,
// sampled track of light frames for the ghost. Once finalized, Record is
// a no-op until Reset.
type Recorder struct {
	frames      *Ring[FullFrame]
	ghost       *Ring[LightFrame]
	sampleEvery int
	ticks       uint64
	finalized   bool
}

// NewRecorder creates a recorder. Non-positive arguments select defaults.
func NewRecorder(capacity, ghostCapacity, sampleEvery int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultReplayCapacity
	}
	if ghostCapacity <= 0 {
		ghostCapacity = DefaultGhostCapacity
	}
	if sampleEvery <= 0 {
		sampleEvery = DefaultGhostSample
	}
	return &Recorder{
		frames:      NewRing[FullFrame](capacity),
		ghost:       NewRing[LightFrame](ghostCapacity),
		sampleEvery: sampleEvery,
	}
}

// Record stores a full frame and, every sampleEvery calls, a ghost frame.
// It reports whether anything was recorded.
func (r *Recorder) Record(light LightFrame, hazards []entity.Hazard) bool {
	if r.finalized {
		return false
	}
	r.frames.Push(NewFullFrame(light, hazards))
	if r.ticks%uint64(r.sampleEvery) == 0 {
		r.ghost.Push(light)
	}
	r.ticks++
	return true
}

// Finalize latches the recorder closed. It reports whether this call did
// the latching.
func (r *Recorder) Finalize() bool {
	if r.finalized {
		return false
	}
	r.finalized = true
	return true
}

// Finalized reports whether the recorder is latched.
func (r *Recorder) Finalized() bool {
	return r.finalized
}

// Reset clears both buffers and reopens the latch.
func (r *Recorder) Reset() {
	r.frames.Clear()
	r.ghost.Clear()
	r.ticks = 0
	r.finalized = false
}

// Len returns the number of full frames held.
func (r *Recorder) Len() int {
	return r.frames.Len()
}

// Frame returns the i-th full frame, 0 being the oldest.
func (r *Recorder) Frame(i int) FullFrame {
	return r.frames.At(i)
}

// Frames returns a copy of the full frames, oldest first.
func (r *Recorder) Frames() []FullFrame {
	return r.frames.Slice()
}

// Ghost returns a copy of the ghost track, oldest first.
func (r *Recorder) Ghost() []LightFrame {
	return r.ghost.Slice()
}

// Span returns the timestamps of the first and last full frames.
func (r *Recorder) Span() (start, end float64, ok bool) {
	n := r.frames.Len()
	if n == 0 {
		return 0, 0, false
	}
	return r.frames.At(0).T, r.frames.At(n - 1).T, true
}

// Seek returns the index of the first full frame with T >= t. ok is false
// when t lies past the last frame or nothing is recorded.
func (r *Recorder) Seek(t float64) (int, bool) {
	n := r.frames.Len()
	i := sort.Search(n, func(i int) bool { return r.frames.At(i).T >= t })
	return i, i < n
}
