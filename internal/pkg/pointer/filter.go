package pointer

// Frame is one pointer sample. Invalid frames mean the camera lost sight of
// the beacons, filters decide how to ride them out.
type Frame struct {
	Position FVec2
	Valid    bool
}

// Filter transforms a stream of pointer frames, one sample in, one sample
// out. Filters keep internal state across calls.
type Filter interface {
	Process(Frame) Frame
}

// Chain applies filters in order.
type Chain []Filter

func (c Chain) Process(f Frame) Frame {
	for _, filter := range c {
		f = filter.Process(f)
	}
	return f
}

// ErrorFilter bridges short dropouts by repeating the last good position for
// up to keep frames.
type ErrorFilter struct {
	keep int

	last    Frame
	invalid int
}

func NewErrorFilter(keep int) *ErrorFilter {
	return &ErrorFilter{keep: keep}
}

func (f *ErrorFilter) Process(in Frame) Frame {
	if in.Valid {
		f.last = in
		f.invalid = 0
		return in
	}

	f.invalid++
	if f.last.Valid && f.invalid <= f.keep {
		return f.last
	}
	f.last = Frame{}
	return in
}

// GlitchFilter rejects single-frame jumps larger than the distance
// threshold. A jump that persists on the next frame is accepted as real
// movement.
type GlitchFilter struct {
	dist float64

	last      Frame
	suspected bool
}

func NewGlitchFilter(dist float64) *GlitchFilter {
	return &GlitchFilter{dist: dist}
}

func (f *GlitchFilter) Process(in Frame) Frame {
	if !in.Valid {
		f.last = Frame{}
		f.suspected = false
		return in
	}

	if !f.last.Valid {
		f.last = in
		return in
	}

	if in.Position.Dist(f.last.Position) > f.dist && !f.suspected {
		// hold position once, accept on repetition
		f.suspected = true
		return f.last
	}

	f.suspected = false
	f.last = in
	return in
}

// SmoothingFilter averages movement inside the radius away, larger motions
// pass through with the accumulated drift applied. Cheap tremor reduction
// without visible lag on fast swings.
type SmoothingFilter struct {
	radius float64

	anchor Frame
}

func NewSmoothingFilter(radius float64) *SmoothingFilter {
	return &SmoothingFilter{radius: radius}
}

func (f *SmoothingFilter) Process(in Frame) Frame {
	if !in.Valid {
		f.anchor = Frame{}
		return in
	}

	if !f.anchor.Valid {
		f.anchor = in
		return in
	}

	d := in.Position.Dist(f.anchor.Position)
	if d <= f.radius {
		return f.anchor
	}

	// drag the anchor along, keeping it at radius distance
	delta := in.Position.Sub(f.anchor.Position).Scale((d - f.radius) / d)
	f.anchor.Position = f.anchor.Position.Add(delta)
	return f.anchor
}

// TranslateFilter maps positions from the source space into the viewport,
// clamping to its edges.
type TranslateFilter struct {
	src FRect
	dst FRect
}

func NewTranslateFilter(src, dst FRect) *TranslateFilter {
	return &TranslateFilter{src: src, dst: dst}
}

func (f *TranslateFilter) Process(in Frame) Frame {
	if !in.Valid {
		return in
	}
	in.Position = f.dst.Clamp(f.src.MapTo(in.Position, f.dst))
	return in
}
