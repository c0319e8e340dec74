package dash

// Autopilot is a simple bot that keeps the diamond inside the next gap.
// It predicts where the player's bottom edge will be after one more tick of
// gravity and jumps before that crosses the gap's lower safety line.
type Autopilot struct {
	// Clearance is the distance kept between the player's bottom edge and the gap bottom.
	Clearance float64
}

// NewAutopilot creates a bot with a small default clearance.
func NewAutopilot() *Autopilot {
	return &Autopilot{Clearance: 8}
}

// ShouldActivate reports whether the bot wants to send the activate signal now.
func (a *Autopilot) ShouldActivate(s *Sim) bool {
	switch s.Phase() {
	case PhaseReady:
		return true
	case PhaseEnded:
		return false
	}

	p := s.Player()
	floor := s.World().Height * 0.6
	if next, ok := a.nextObstacle(s); ok {
		floor = next.GapBottom
	}

	predicted := p.Y + p.Height + p.Velocity + p.Gravity
	return predicted >= floor-a.Clearance
}

// nextObstacle returns the nearest obstacle the player has not cleared yet.
func (a *Autopilot) nextObstacle(s *Sim) (Obstacle, bool) {
	playerX := s.Player().X
	width := s.ObstacleWidth()

	var best Obstacle
	found := false
	for _, o := range s.Obstacles() {
		if o.X+width < playerX {
			continue
		}
		if !found || o.X < best.X {
			best = o
			found = true
		}
	}
	return best, found
}
