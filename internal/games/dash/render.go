package dash

import (
	"fmt"
	"math"

	"github.com/vovakirdan/diamond-dash/internal/core"
)

// Rendering characters
const (
	DiamondChar   = '◆'
	DiamondEdge   = '◇'
	ColumnChar    = '█'
	ColumnCapTop  = '▀'
	ColumnCapBase = '▄'
)

// Render draws the current run, scaled from world pixels to screen cells.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	world := g.sim.World()
	sx := float64(dst.Width()) / world.Width
	sy := float64(dst.Height()) / world.Height

	for _, o := range g.sim.Obstacles() {
		drawColumn(dst, o, g.sim.ObstacleWidth(), sx, sy)
	}
	drawDiamond(dst, g.sim.Player(), sx, sy)
	g.drawHUD(dst)

	switch g.sim.Phase() {
	case PhaseReady:
		drawCenteredMessage(dst, "DIAMOND DASH", "Press SPACE to start", core.ColorBrightCyan)
	case PhaseEnded:
		ev, _ := g.sim.Event()
		title, c := "GAME OVER", core.ColorRed
		if ev.Won {
			title, c = "YOU WON!", core.ColorGold
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d", ev.Score), c)
	}
}

// drawColumn renders one obstacle as two column sections around its gap.
func drawColumn(dst *core.Screen, o Obstacle, width, sx, sy float64) {
	x0 := int(math.Floor(o.X * sx))
	x1 := int(math.Ceil((o.X + width) * sx))
	gapTop := int(math.Floor(o.GapTop * sy))
	gapBottom := int(math.Ceil(o.GapBottom * sy))

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			dst.SetColored(x, y, ColumnChar, core.ColorGreen)
		}
		if gapTop > 0 {
			dst.SetColored(x, gapTop-1, ColumnCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < dst.Height(); y++ {
			dst.SetColored(x, y, ColumnChar, core.ColorGreen)
		}
		if gapBottom < dst.Height() {
			dst.SetColored(x, gapBottom, ColumnCapBase, core.ColorBrightGreen)
		}
	}
}

// drawDiamond renders the player, always at least one cell in size.
func drawDiamond(dst *core.Screen, p PlayerBody, sx, sy float64) {
	x := int(math.Floor(p.X * sx))
	y := int(math.Floor(p.Y * sy))
	w := core.Max(int(math.Round(p.Width*sx)), 1)
	h := core.Max(int(math.Round(p.Height*sy)), 1)

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r := DiamondChar
			if dx == 0 || dx == w-1 {
				r = DiamondEdge
			}
			dst.SetColored(x+dx, y+dy, r, core.ColorBrightCyan)
		}
	}
}

// drawHUD shows the score and the difficulty stage on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.sim.Score()), core.ColorBrightWhite)

	stage := fmt.Sprintf(" %s ", g.sim.TierName())
	stageColor := core.ColorGreen
	switch g.sim.Tier() {
	case TierNormal:
		stageColor = core.ColorYellow
	case TierHard:
		stageColor = core.ColorOrange
	}
	dst.DrawTextColored(dst.Width()-len(stage)-2, 0, stage, stageColor)

	if win := g.cfg.Gameplay.WinScore; win > 0 {
		goal := fmt.Sprintf(" Goal: %d ", win)
		dst.DrawTextColored((dst.Width()-len(goal))/2, 0, goal, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, c)
	dst.DrawTextColored(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorWhite)
}
