package gesture

import (
	"errors"
	"testing"

	"GestureBoard/internal/layout"
	"GestureBoard/internal/state"
)

// hand builds a full sample with the given thumb and fingertip positions.
func hand(thumb, tip state.Point) Sample {
	s := make(Sample, NumLandmarks)
	for i := range s {
		s[i] = state.Point{X: 320, Y: 400}
	}
	s[ThumbTip] = thumb
	s[IndexTip] = tip
	return s
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Sample
		want Action
	}{
		{"empty", nil, Action{Kind: NoHand}},
		{"pinch", hand(state.Point{X: 100, Y: 220}, state.Point{X: 100, Y: 200}), Action{Kind: LiftPen}},
		{"thumb above tip", hand(state.Point{X: 100, Y: 100}, state.Point{X: 100, Y: 200}), Action{Kind: LiftPen}},
		{"gap 29", hand(state.Point{X: 100, Y: 229}, state.Point{X: 100, Y: 200}), Action{Kind: LiftPen}},
		{"gap 30 draws", hand(state.Point{X: 100, Y: 230}, state.Point{X: 100, Y: 200}),
			Action{Kind: Draw, Point: state.Point{X: 100, Y: 200}}},
		{"button row", hand(state.Point{X: 50, Y: 200}, state.Point{X: 50, Y: 10}),
			Action{Kind: ButtonZone, Point: state.Point{X: 50, Y: 10}}},
		{"row edge 65", hand(state.Point{X: 50, Y: 200}, state.Point{X: 50, Y: 65}),
			Action{Kind: ButtonZone, Point: state.Point{X: 50, Y: 65}}},
		{"just below row", hand(state.Point{X: 50, Y: 200}, state.Point{X: 50, Y: 66}),
			Action{Kind: Draw, Point: state.Point{X: 50, Y: 66}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveZone(t *testing.T) {
	tests := []struct {
		x    int
		want layout.Zone
		ok   bool
	}{
		{39, 0, false},
		{40, layout.ZoneClear, true},
		{140, layout.ZoneClear, true},
		{150, 0, false},
		{160, layout.ZoneBlue, true},
		{255, layout.ZoneBlue, true},
		{300, layout.ZoneGreen, true},
		{400, layout.ZoneRed, true},
		{600, layout.ZoneYellow, true},
		{601, 0, false},
	}
	for _, tt := range tests {
		got, ok := ResolveZone(tt.x)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ResolveZone(%d) = %v, %v; want %v, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

func TestZonesExclusive(t *testing.T) {
	gaps := [][2]int{{141, 159}, {256, 274}, {371, 389}, {486, 504}}
	inGap := func(x int) bool {
		for _, g := range gaps {
			if x >= g[0] && x <= g[1] {
				return true
			}
		}
		return false
	}
	for x := 40; x <= 600; x++ {
		matches := 0
		for _, b := range layout.Buttons {
			if b.Bounds.ContainsX(x) {
				matches++
			}
		}
		if matches > 1 {
			t.Fatalf("x=%d matches %d zones", x, matches)
		}
		_, ok := ResolveZone(x)
		if ok == inGap(x) {
			t.Errorf("x=%d: resolved=%v, in gap=%v", x, ok, inGap(x))
		}
	}
}

func TestSampleValidate(t *testing.T) {
	if err := Sample(nil).Validate(); err != nil {
		t.Errorf("empty sample: %v", err)
	}
	if err := hand(state.Point{}, state.Point{}).Validate(); err != nil {
		t.Errorf("full sample: %v", err)
	}
	err := make(Sample, 5).Validate()
	if !errors.Is(err, ErrMalformedSample) {
		t.Errorf("short sample: got %v, want ErrMalformedSample", err)
	}
}

func TestClassifyShortSample(t *testing.T) {
	for _, n := range []int{1, IndexTip, NumLandmarks - 1, NumLandmarks + 1} {
		s := make(Sample, n)
		if got := Classify(s); got != (Action{Kind: NoHand}) {
			t.Errorf("Classify(%d landmarks) = %+v, want NoHand", n, got)
		}
	}
}
