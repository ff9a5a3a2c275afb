package state

// StrokeCapacity bounds the number of points kept per stroke.
const StrokeCapacity = 512

// Stroke is one continuous pen-down trace. Points are kept newest first;
// once the stroke is full, inserting a point evicts the oldest one.
type Stroke struct {
	buf  []Point // ring storage, grows up to StrokeCapacity
	next int     // slot overwritten by the next insert once buf is full
}

// NewStroke returns an empty stroke.
func NewStroke() *Stroke {
	return &Stroke{}
}

// Len returns the number of points in the stroke.
func (s *Stroke) Len() int {
	return len(s.buf)
}

// Push inserts p at the head of the stroke.
func (s *Stroke) Push(p Point) {
	if len(s.buf) < StrokeCapacity {
		s.buf = append(s.buf, p)
		return
	}
	s.buf[s.next] = p
	s.next = (s.next + 1) % StrokeCapacity
}

// At returns the i-th point counting from the newest (i == 0).
func (s *Stroke) At(i int) Point {
	n := len(s.buf)
	if i < 0 || i >= n {
		panic("state: stroke index out of range")
	}
	newest := n - 1
	if n == StrokeCapacity {
		newest = (s.next - 1 + n) % n
	}
	return s.buf[(newest-i+n)%n]
}

// Points returns a copy of the stroke, newest first.
func (s *Stroke) Points() []Point {
	out := make([]Point, len(s.buf))
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
