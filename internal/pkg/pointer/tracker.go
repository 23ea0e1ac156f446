package pointer

import (
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

// CameraSpace is the coordinate space of the IR camera.
var CameraSpace = NewFRect(0, 0, 1024, 768)

// Tracker derives a pointer position from the camera's beacon slots. With
// both sensor-bar beacons in sight the pointer sits at their midpoint, a
// single beacon is used as is. The camera sees a mirror image, X is flipped
// so the pointer follows the hand.
type Tracker struct {
	chain Chain
}

func NewTracker(chain Chain) *Tracker {
	return &Tracker{chain: chain}
}

func (t *Tracker) Track(ev *wiimote.IREvent) Frame {
	var seen []FVec2
	for _, slot := range ev.Slots {
		if !slot.Valid() {
			continue
		}
		seen = append(seen, FVec2{X: float64(slot.X), Y: float64(slot.Y)})
	}

	var frame Frame
	switch len(seen) {
	case 0:
	case 1:
		frame = Frame{Position: seen[0], Valid: true}
	default:
		frame = Frame{Position: seen[0].Add(seen[1]).Scale(0.5), Valid: true}
	}

	if frame.Valid {
		frame.Position.X = CameraSpace.Max.X - frame.Position.X
	}
	return t.chain.Process(frame)
}
