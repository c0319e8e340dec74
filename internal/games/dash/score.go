package dash

// ScoreTracker counts passed obstacles. It never decreases within a run.
type ScoreTracker struct {
	value int
}

// Increment adds one point and returns the new score.
func (s *ScoreTracker) Increment() int {
	s.value++
	return s.value
}

// Value returns the current score.
func (s ScoreTracker) Value() int {
	return s.value
}

// Reset sets the score back to zero for a new run.
func (s *ScoreTracker) Reset() {
	s.value = 0
}
