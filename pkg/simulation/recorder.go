package simulation

import (
	"encoding/json"
	"io"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Frame is a snapshot of particle positions
type Frame struct {
	Index     int         `json:"index"`
	Positions []core.Vec3 `json:"positions"`
}

// Recorder is a PositionSink that keeps every Every-th update
type Recorder struct {
	Every int // Keep one update in Every; 0 or 1 keeps all

	frames  []Frame
	updates int
}

// NewRecorder creates a recorder keeping one update in every
func NewRecorder(every int) *Recorder {
	return &Recorder{Every: every}
}

// UpdatePositions implements PositionSink
func (r *Recorder) UpdatePositions(positions []core.Vec3) {
	index := r.updates
	r.updates++
	if r.Every > 1 && index%r.Every != 0 {
		return
	}
	r.frames = append(r.frames, Frame{
		Index:     index,
		Positions: append([]core.Vec3(nil), positions...),
	})
}

// Frames returns the recorded frames
func (r *Recorder) Frames() []Frame {
	return r.frames
}

// WriteJSON writes the recorded frames as a JSON array
func (r *Recorder) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.frames)
}
