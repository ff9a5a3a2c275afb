package state

// TrackCapacity bounds the number of strokes kept per color track.
const TrackCapacity = 1024

// ColorTrack is the drawing history of one ink color: an ordered list of
// strokes and the index of the stroke currently receiving points.
//
// A track always holds at least one stroke and current always indexes it.
type ColorTrack struct {
	strokes []*Stroke
	current int
}

// NewColorTrack returns a track holding a single empty stroke.
func NewColorTrack() *ColorTrack {
	t := &ColorTrack{}
	t.Clear()
	return t
}

// NewStroke appends an empty stroke and makes it current. When the track
// exceeds TrackCapacity the oldest stroke is dropped.
func (t *ColorTrack) NewStroke() {
	t.strokes = append(t.strokes, NewStroke())
	if len(t.strokes) > TrackCapacity {
		copy(t.strokes, t.strokes[1:])
		t.strokes[len(t.strokes)-1] = nil
		t.strokes = t.strokes[:len(t.strokes)-1]
	}
	t.current = len(t.strokes) - 1
}

// AppendPoint inserts p at the head of the current stroke.
func (t *ColorTrack) AppendPoint(p Point) {
	t.strokes[t.current].Push(p)
}

// Clear resets the track to exactly one empty stroke.
func (t *ColorTrack) Clear() {
	for i := range t.strokes {
		t.strokes[i] = nil
	}
	t.strokes = append(t.strokes[:0], NewStroke())
	t.current = 0
}

// Len returns the number of strokes in the track.
func (t *ColorTrack) Len() int {
	return len(t.strokes)
}

// Current returns the index of the stroke receiving new points.
func (t *ColorTrack) Current() int {
	return t.current
}

// Stroke returns the i-th stroke, oldest first.
func (t *ColorTrack) Stroke(i int) *Stroke {
	return t.strokes[i]
}

// CurrentStroke returns the stroke receiving new points.
func (t *ColorTrack) CurrentStroke() *Stroke {
	return t.strokes[t.current]
}

// Tracks holds one ColorTrack per ink color.
type Tracks [NumColors]*ColorTrack

// NewTracks returns four tracks, each holding one empty stroke.
func NewTracks() Tracks {
	var ts Tracks
	for i := range ts {
		ts[i] = NewColorTrack()
	}
	return ts
}

// Track returns the track for c.
func (ts *Tracks) Track(c Color) *ColorTrack {
	return ts[c]
}

// StartStroke begins a new stroke on every track, whichever color is active.
func (ts *Tracks) StartStroke() {
	for _, t := range ts {
		t.NewStroke()
	}
}

// Clear resets every track to a single empty stroke.
func (ts *Tracks) Clear() {
	for _, t := range ts {
		t.Clear()
	}
}
