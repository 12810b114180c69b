package ui

import (
	"fmt"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game"
	"gridsnake/game/manager"
	"gridsnake/game/types"
	"gridsnake/ui/keymap"
	"gridsnake/ui/sound"
)

const (
	borderPadding = 10 // padding around the board
	maxScores     = 50 // rounds shown in the score graph
)

// History is the round log shown in the side panel
type History interface {
	GetHighScore() int
	GetHistory() []manager.RoundRecord
	AverageScore() float64
}

// Renderer draws the latest snapshot in a raylib window. Present may be
// called from any goroutine; Draw and PollInput must run on the thread
// that opened the window.
type Renderer struct {
	latest  atomic.Pointer[game.Snapshot]
	cues    *sound.Cues
	history History

	cellSize     int32
	screenWidth  int32
	screenHeight int32
	statsPanel   int32
	gameWidth    int32
	graphWidth   int32
	graphHeight  int32
	offsetX      int32
	offsetY      int32
	boardSize    int32
}

// NewRenderer creates a renderer; cues and history may be nil
func NewRenderer(cues *sound.Cues, history History) *Renderer {
	r := &Renderer{cues: cues, history: history}
	r.UpdateDimensions()
	return r
}

// Present stores snap for the next Draw
func (r *Renderer) Present(snap game.Snapshot) {
	r.latest.Store(&snap)
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Draw renders one frame. Nothing is drawn until the first Present.
func (r *Renderer) Draw() {
	r.UpdateDimensions()
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	snap := r.latest.Load()
	if snap == nil {
		return
	}
	r.cues.Observe(*snap)

	fontSize := min(r.screenHeight/35, r.statsPanel/12)
	lineHeight := fontSize + fontSize/2

	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2
	size := int32(snap.Size)
	r.cellSize = min(availableWidth/size, availableHeight/size)
	r.boardSize = r.cellSize * size

	r.offsetX = borderPadding + (availableWidth-r.boardSize)/2
	r.offsetY = (r.screenHeight - r.boardSize) / 2

	r.drawBoard(snap)
	r.drawOverlay(snap, fontSize)
	r.drawStatsPanel(snap, fontSize, lineHeight)
}

func (r *Renderer) cellRect(pos types.Position) (x, y int32) {
	return r.offsetX + int32(pos.Col)*r.cellSize, r.offsetY + int32(pos.Row)*r.cellSize
}

func (r *Renderer) drawBoard(snap *game.Snapshot) {
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.boardSize+2, r.boardSize+2, rl.DarkGray)

	for row := 0; row < snap.Size; row++ {
		for col := 0; col < snap.Size; col++ {
			pos := types.Position{Row: row, Col: col}
			x, y := r.cellRect(pos)
			switch snap.At(pos) {
			case game.CellFood:
				rl.DrawRectangle(x, y, r.cellSize, r.cellSize, rl.Red)
			case game.CellBody:
				rl.DrawRectangle(x, y, r.cellSize, r.cellSize, rl.Green)
			case game.CellHead:
				rl.DrawRectangle(x, y, r.cellSize, r.cellSize, rl.Lime)
				r.drawHeadingMarker(x, y, snap.Heading)
			}
			rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, rl.Gray)
		}
	}
}

func (r *Renderer) drawHeadingMarker(headX, headY int32, h types.Heading) {
	half := r.cellSize / 2
	v := func(x, y int32) rl.Vector2 { return rl.Vector2{X: float32(x), Y: float32(y)} }

	// raylib expects counter-clockwise vertex order
	switch h {
	case types.Right:
		rl.DrawTriangle(v(headX+r.cellSize, headY+half), v(headX+half, headY), v(headX+half, headY+r.cellSize), rl.Yellow)
	case types.Left:
		rl.DrawTriangle(v(headX, headY+half), v(headX+half, headY+r.cellSize), v(headX+half, headY), rl.Yellow)
	case types.Down:
		rl.DrawTriangle(v(headX+half, headY+r.cellSize), v(headX+r.cellSize, headY+half), v(headX, headY+half), rl.Yellow)
	case types.Up:
		rl.DrawTriangle(v(headX+half, headY), v(headX, headY+half), v(headX+r.cellSize, headY+half), rl.Yellow)
	}
}

func (r *Renderer) drawOverlay(snap *game.Snapshot, fontSize int32) {
	var lines []string
	color := rl.White
	switch {
	case snap.Over:
		lines = []string{
			fmt.Sprintf("Game Over! (%s)", snap.Cause),
			fmt.Sprintf("Score: %d", snap.Score),
			"Press SPACE to start over",
		}
		color = rl.Red
	case snap.Paused:
		lines = []string{"Paused", "Press SPACE to resume"}
	default:
		return
	}

	big := fontSize * 2
	y := r.offsetY + r.boardSize/2 - int32(len(lines))*big/2
	for _, line := range lines {
		w := rl.MeasureText(line, big)
		rl.DrawText(line, r.offsetX+(r.boardSize-w)/2, y, big, color)
		y += big
	}
}

func (r *Renderer) drawStatsPanel(snap *game.Snapshot, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	best := snap.Score
	var avg float64
	var scores []int
	if r.history != nil {
		if hs := r.history.GetHighScore(); hs > best {
			best = hs
		}
		avg = r.history.AverageScore()
		for _, rec := range r.history.GetHistory() {
			scores = append(scores, rec.Score)
		}
	}
	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}

	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Best: %d", best),
		fmt.Sprintf("Avg: %.2f", avg),
		fmt.Sprintf("Rounds: %d", len(scores)),
		fmt.Sprintf("Time: %s", snap.PlayTime.Truncate(time.Second)),
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	r.drawScoreGraph(statsX, fontSize, scores, avg)
}

func (r *Renderer) drawScoreGraph(graphX, fontSize int32, scores []int, avg float64) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	px := func(i int) int32 {
		return graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores))
	}
	py := func(v float64) int32 {
		return graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(v)/float32(maxScore))
	}

	for j := 1; j < len(scores); j++ {
		rl.DrawLine(px(j-1), py(float64(scores[j-1])), px(j), py(float64(scores[j])), rl.Green)
	}

	// dashed average
	avgY := py(avg)
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

// PollInput forwards pressed keys to ctl. Returns false when the player quits.
func (r *Renderer) PollInput(ctl keymap.Controller) bool {
	for _, a := range pressedActions() {
		if !keymap.Dispatch(a, ctl) {
			return false
		}
	}
	return true
}

var keyActions = []struct {
	key    int32
	action keymap.Action
}{
	{rl.KeyUp, keymap.FromHeading(types.Up)},
	{rl.KeyDown, keymap.FromHeading(types.Down)},
	{rl.KeyLeft, keymap.FromHeading(types.Left)},
	{rl.KeyRight, keymap.FromHeading(types.Right)},
	{rl.KeyK, keymap.FromRune('k')},
	{rl.KeyJ, keymap.FromRune('j')},
	{rl.KeyH, keymap.FromRune('h')},
	{rl.KeyL, keymap.FromRune('l')},
	{rl.KeySpace, keymap.FromRune(' ')},
	{rl.KeyR, keymap.FromRune('r')},
	{rl.KeyQ, keymap.FromRune('q')},
}

func pressedActions() []keymap.Action {
	var actions []keymap.Action
	for _, ka := range keyActions {
		if rl.IsKeyPressed(ka.key) {
			actions = append(actions, ka.action)
		}
	}
	return actions
}
