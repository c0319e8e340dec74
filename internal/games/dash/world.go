package dash

// World is the playfield in pixels.
type World struct {
	Width  float64
	Height float64
}

// valid reports whether both dimensions are positive.
func (w World) valid() bool {
	return w.Width > 0 && w.Height > 0
}
