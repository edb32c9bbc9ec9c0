package replay

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// GhostVersion is the serialized ghost format version.
const GhostVersion = 1

type ghostEnvelope struct {
	Version int          `json:"version"`
	Frames  []LightFrame `json:"frames"`
}

// EncodeGhost serializes a ghost track.
func EncodeGhost(frames []LightFrame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("replay: empty ghost")
	}
	data, err := json.Marshal(ghostEnvelope{Version: GhostVersion, Frames: frames})
	if err != nil {
		return nil, fmt.Errorf("replay: encode ghost: %w", err)
	}
	return data, nil
}

// DecodeGhost parses a serialized ghost. Malformed, empty or foreign-version
// data yields nil, meaning "no ghost".
func DecodeGhost(data []byte) []LightFrame {
	if len(data) == 0 {
		return nil
	}
	var env ghostEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if env.Version != GhostVersion || len(env.Frames) == 0 {
		return nil
	}
	prev := math.Inf(-1)
	for _, f := range env.Frames {
		if !finite(f.T) || !finite(f.X) || !finite(f.Y) || f.T < prev {
			return nil
		}
		prev = f.T
	}
	return env.Frames
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GhostTrack plays back a stored run alongside a live one.
type GhostTrack struct {
	frames []LightFrame
}

// NewGhostTrack wraps decoded frames; nil when there are none.
func NewGhostTrack(frames []LightFrame) *GhostTrack {
	if len(frames) == 0 {
		return nil
	}
	return &GhostTrack{frames: frames}
}

// At returns the first ghost frame with T >= t. ok is false once the ghost
// has run out.
func (g *GhostTrack) At(t float64) (LightFrame, bool) {
	if g == nil {
		return LightFrame{}, false
	}
	i := sort.Search(len(g.frames), func(i int) bool { return g.frames[i].T >= t })
	if i == len(g.frames) {
		return LightFrame{}, false
	}
	return g.frames[i], true
}

// Duration returns the timestamp of the last ghost frame.
func (g *GhostTrack) Duration() float64 {
	if g == nil {
		return 0
	}
	return g.frames[len(g.frames)-1].T
}

// Len returns the number of ghost frames.
func (g *GhostTrack) Len() int {
	if g == nil {
		return 0
	}
	return len(g.frames)
}
