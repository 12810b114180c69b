package term

import (
	"github.com/gdamore/tcell/v2"

	"gridsnake/game/types"
	"gridsnake/ui/keymap"
)

// FromKey maps a terminal key event to a player action
func FromKey(ev *tcell.EventKey) keymap.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return keymap.FromHeading(types.Up)
	case tcell.KeyDown:
		return keymap.FromHeading(types.Down)
	case tcell.KeyLeft:
		return keymap.FromHeading(types.Left)
	case tcell.KeyRight:
		return keymap.FromHeading(types.Right)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keymap.Action{Kind: keymap.Quit}
	case tcell.KeyRune:
		return keymap.FromRune(ev.Rune())
	}
	return keymap.Action{}
}

// RunInput polls screen until the player quits or the screen is finalized
func RunInput(screen tcell.Screen, ctl keymap.Controller) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if !keymap.Dispatch(FromKey(ev), ctl) {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
