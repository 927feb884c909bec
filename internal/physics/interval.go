package physics

// Interval is a closed range along the x axis.
type Interval struct {
	MinX float32
	MaxX float32
}

func (i Interval) Width() float32 {
	return i.MaxX - i.MinX
}

// Overlaps is the broad-phase gate: strict on both sides so touching
// intervals do not count.
func (i Interval) Overlaps(o Interval) bool {
	return i.MinX < o.MaxX && i.MaxX > o.MinX
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return o.MinX >= i.MinX && o.MaxX <= i.MaxX
}
