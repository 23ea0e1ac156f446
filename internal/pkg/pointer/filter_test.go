package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

func valid(x, y float64) Frame {
	return Frame{Position: FVec2{X: x, Y: y}, Valid: true}
}

func TestErrorFilterBridgesShortDropouts(t *testing.T) {
	f := NewErrorFilter(2)

	assert.Equal(t, valid(10, 10), f.Process(valid(10, 10)))
	assert.Equal(t, valid(10, 10), f.Process(Frame{}))
	assert.Equal(t, valid(10, 10), f.Process(Frame{}))
	// third invalid frame in a row exceeds the budget
	assert.Equal(t, Frame{}, f.Process(Frame{}))
	// and the stale position must not come back
	assert.Equal(t, Frame{}, f.Process(Frame{}))
}

func TestGlitchFilterRejectsSingleFrameJumps(t *testing.T) {
	f := NewGlitchFilter(100)

	assert.Equal(t, valid(10, 10), f.Process(valid(10, 10)))
	assert.Equal(t, valid(12, 10), f.Process(valid(12, 10)))
	// sudden jump held back once
	assert.Equal(t, valid(12, 10), f.Process(valid(500, 500)))
	// repeated jump is real movement
	assert.Equal(t, valid(500, 500), f.Process(valid(500, 500)))
}

func TestGlitchFilterResetsOnDropout(t *testing.T) {
	f := NewGlitchFilter(100)

	assert.Equal(t, valid(10, 10), f.Process(valid(10, 10)))
	assert.Equal(t, Frame{}, f.Process(Frame{}))
	// no previous position to compare against after a dropout
	assert.Equal(t, valid(500, 500), f.Process(valid(500, 500)))
}

func TestSmoothingFilterSwallowsTremor(t *testing.T) {
	f := NewSmoothingFilter(5)

	assert.Equal(t, valid(100, 100), f.Process(valid(100, 100)))
	assert.Equal(t, valid(100, 100), f.Process(valid(102, 101)))
	assert.Equal(t, valid(100, 100), f.Process(valid(98, 103)))

	// large movement passes, anchor trails at radius distance
	out := f.Process(valid(200, 100))
	assert.InDelta(t, 195, out.Position.X, 0.001)
	assert.InDelta(t, 100, out.Position.Y, 0.001)
}

func TestTranslateFilterMapsAndClamps(t *testing.T) {
	f := NewTranslateFilter(CameraSpace, NewFRect(0, 0, 1920, 1080))

	out := f.Process(valid(512, 384))
	assert.InDelta(t, 960, out.Position.X, 0.001)
	assert.InDelta(t, 540, out.Position.Y, 0.001)

	out = f.Process(valid(-50, 800))
	assert.Equal(t, FVec2{X: 0, Y: 1080}, out.Position)

	assert.Equal(t, Frame{}, f.Process(Frame{}))
}

func TestChainAppliesInOrder(t *testing.T) {
	chain := Chain{
		NewErrorFilter(1),
		NewTranslateFilter(CameraSpace, NewFRect(0, 0, 100, 100)),
	}

	out := chain.Process(valid(512, 384))
	assert.InDelta(t, 50, out.Position.X, 0.001)

	// dropout bridged before translation
	out = chain.Process(Frame{})
	assert.True(t, out.Valid)
	assert.InDelta(t, 50, out.Position.X, 0.001)
}

func irEvent(slots ...wiimote.IRSlot) *wiimote.IREvent {
	ev := &wiimote.IREvent{}
	for i, s := range slots {
		ev.Slots[i] = s
	}
	for i := len(slots); i < 4; i++ {
		ev.Slots[i] = wiimote.IRSlot{X: 1023, Y: 1023}
	}
	return ev
}

func TestTrackerMidpointOfTwoBeacons(t *testing.T) {
	tr := NewTracker(nil)

	out := tr.Track(irEvent(
		wiimote.IRSlot{X: 400, Y: 300},
		wiimote.IRSlot{X: 600, Y: 340},
	))

	assert.True(t, out.Valid)
	// midpoint (500, 320), X mirrored against the camera width
	assert.Equal(t, FVec2{X: 524, Y: 320}, out.Position)
}

func TestTrackerSingleBeacon(t *testing.T) {
	tr := NewTracker(nil)

	out := tr.Track(irEvent(wiimote.IRSlot{X: 24, Y: 300}))
	assert.True(t, out.Valid)
	assert.Equal(t, FVec2{X: 1000, Y: 300}, out.Position)
}

func TestTrackerNoBeacons(t *testing.T) {
	tr := NewTracker(nil)

	assert.False(t, tr.Track(irEvent()).Valid)
}
