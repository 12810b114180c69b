package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/ui/sound"
)

// Board layout: one header row, then the bordered board, then a status row.
// Every cell is two columns wide so the board looks square.
const (
	headerRow = 0
	boardTop  = 1
	cellWidth = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBody    = tcell.StyleDefault.Background(tcell.NewRGBColor(0, 160, 0))
	styleHead    = tcell.StyleDefault.Background(tcell.NewRGBColor(80, 255, 80)).Foreground(tcell.ColorBlack)
	styleFood    = tcell.StyleDefault.Background(tcell.NewRGBColor(220, 40, 40))
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleOver    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// HighScores reports the best finished round
type HighScores interface {
	GetHighScore() int
}

// Presenter draws snapshots onto a terminal screen. Present runs on the
// scheduler goroutine; tcell screens serialize access internally.
type Presenter struct {
	screen tcell.Screen
	cues   *sound.Cues
	scores HighScores
}

// NewPresenter wraps screen; cues and scores may be nil
func NewPresenter(screen tcell.Screen, cues *sound.Cues, scores HighScores) *Presenter {
	return &Presenter{screen: screen, cues: cues, scores: scores}
}

// CellOrigin returns the screen coordinates of the left column of pos
func CellOrigin(pos types.Position) (x, y int) {
	return 1 + pos.Col*cellWidth, boardTop + 1 + pos.Row
}

func (p *Presenter) Present(snap game.Snapshot) {
	p.cues.Observe(snap)

	p.screen.Clear()
	p.drawHeader(snap)
	p.drawBorder(snap.Size)
	p.drawCells(snap)
	p.drawStatus(snap)
	p.screen.Show()
}

func (p *Presenter) drawHeader(snap game.Snapshot) {
	best := snap.Score
	if p.scores != nil && p.scores.GetHighScore() > best {
		best = p.scores.GetHighScore()
	}
	text := fmt.Sprintf("Score: %d  Best: %d  Time: %s", snap.Score, best, snap.PlayTime.Truncate(time.Second))
	p.drawText(0, headerRow, styleHeader, text)
}

func (p *Presenter) drawBorder(size int) {
	right := size*cellWidth + 1
	bottom := boardTop + size + 1

	for x := 1; x < right; x++ {
		p.screen.SetContent(x, boardTop, tcell.RuneHLine, nil, styleBorder)
		p.screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := boardTop + 1; y < bottom; y++ {
		p.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		p.screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	p.screen.SetContent(0, boardTop, tcell.RuneULCorner, nil, styleBorder)
	p.screen.SetContent(right, boardTop, tcell.RuneURCorner, nil, styleBorder)
	p.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleBorder)
	p.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)
}

func (p *Presenter) drawCells(snap game.Snapshot) {
	for row := 0; row < snap.Size; row++ {
		for col := 0; col < snap.Size; col++ {
			pos := types.Position{Row: row, Col: col}
			style, glyph := cellLook(snap.At(pos), snap.Heading)
			x, y := CellOrigin(pos)
			p.screen.SetContent(x, y, glyph, nil, style)
			p.screen.SetContent(x+1, y, ' ', nil, style)
		}
	}
}

func cellLook(state game.CellState, heading types.Heading) (tcell.Style, rune) {
	switch state {
	case game.CellHead:
		return styleHead, headGlyph(heading)
	case game.CellBody:
		return styleBody, ' '
	case game.CellFood:
		return styleFood, ' '
	}
	return styleDefault, ' '
}

func headGlyph(h types.Heading) rune {
	switch h {
	case types.Up:
		return '^'
	case types.Down:
		return 'v'
	case types.Left:
		return '<'
	}
	return '>'
}

func (p *Presenter) drawStatus(snap game.Snapshot) {
	y := boardTop + snap.Size + 2
	switch {
	case snap.Over:
		p.drawText(0, y, styleOver, fmt.Sprintf("GAME OVER (%s)  space: start over  q: quit", snap.Cause))
	case snap.Paused:
		p.drawText(0, y, styleStatus, "PAUSED  space: resume  r: restart  q: quit")
	default:
		p.drawText(0, y, styleDefault, "arrows/hjkl: steer  space: pause  q: quit")
	}
}

func (p *Presenter) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}
