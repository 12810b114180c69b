package keymap

import (
	"gridsnake/game/types"
)

// Kind is the kind of a player action
type Kind uint8

const (
	None Kind = iota
	Steer
	TogglePause
	Restart
	Quit
)

// Action is one logical input event
type Action struct {
	Kind    Kind
	Heading types.Heading // set for Steer
}

func steer(h types.Heading) Action {
	return Action{Kind: Steer, Heading: h}
}

// FromRune maps printable keys: hjkl steer vi-style, space toggles pause
func FromRune(r rune) Action {
	switch r {
	case 'k', 'K', 'w', 'W':
		return steer(types.Up)
	case 'j', 'J', 's', 'S':
		return steer(types.Down)
	case 'h', 'H', 'a', 'A':
		return steer(types.Left)
	case 'l', 'L', 'd', 'D':
		return steer(types.Right)
	case ' ', 'p', 'P':
		return Action{Kind: TogglePause}
	case 'r', 'R':
		return Action{Kind: Restart}
	case 'q', 'Q':
		return Action{Kind: Quit}
	}
	return Action{}
}

// FromHeading maps an arrow key
func FromHeading(h types.Heading) Action {
	return steer(h)
}

// Controller consumes player actions; implemented by engine.Scheduler
type Controller interface {
	SetHeading(h types.Heading)
	TogglePause()
	Restart()
}

// Dispatch applies a to ctl. Returns false when the player asked to quit.
func Dispatch(a Action, ctl Controller) bool {
	switch a.Kind {
	case Steer:
		ctl.SetHeading(a.Heading)
	case TogglePause:
		ctl.TogglePause()
	case Restart:
		ctl.Restart()
	case Quit:
		return false
	}
	return true
}
