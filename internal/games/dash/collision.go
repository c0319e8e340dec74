package dash

import "github.com/vovakirdan/diamond-dash/internal/core"

// HitsBounds reports whether the player touches or leaves the top or bottom of the world.
func HitsBounds(player core.Box, world World) bool {
	return player.Y <= 0 || player.Bottom() >= world.Height
}

// HitsObstacle reports whether the player is horizontally within the obstacle
// while any part of it lies outside the gap.
func HitsObstacle(player core.Box, o Obstacle, obstacleWidth float64) bool {
	if !player.OverlapsX(o.Box(obstacleWidth, 0)) {
		return false
	}
	return !player.WithinY(o.GapTop, o.GapBottom)
}

// Collides returns the tick's collision verdict.
func Collides(player PlayerBody, world World, field *ObstacleField) bool {
	box := player.Box()
	if HitsBounds(box, world) {
		return true
	}
	for _, o := range field.Obstacles() {
		if HitsObstacle(box, o, field.Width) {
			return true
		}
	}
	return false
}
