package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/interaction"
)

type keyMap struct {
	Quit    key.Binding
	Palette key.Binding
	Context key.Binding
	// Activate stands in for tapping the bare activation key, which
	// terminals do not report on its own.
	Activate key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Palette:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "commands")),
	Context:  key.NewBinding(key.WithKeys("f9"), key.WithHelp("f9", "context menu")),
	Activate: key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "menu")),
}

type paletteKeyMap struct {
	Close, Run                 key.Binding
	Up, Down, PageUp, PageDown key.Binding
	Home, End                  key.Binding
	Left, Right                key.Binding
	WordLeft, WordRight        key.Binding
	LineStart, LineEnd         key.Binding
	Backspace, DeleteWord      key.Binding
	Clear                      key.Binding
}

var paletteKeys = paletteKeyMap{
	Close:      key.NewBinding(key.WithKeys("esc")),
	Run:        key.NewBinding(key.WithKeys("enter")),
	Up:         key.NewBinding(key.WithKeys("up", "ctrl+k")),
	Down:       key.NewBinding(key.WithKeys("down", "ctrl+j")),
	PageUp:     key.NewBinding(key.WithKeys("pgup")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown")),
	Home:       key.NewBinding(key.WithKeys("home")),
	End:        key.NewBinding(key.WithKeys("end")),
	Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
	Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
	WordLeft:   key.NewBinding(key.WithKeys("alt+left", "ctrl+left", "alt+b")),
	WordRight:  key.NewBinding(key.WithKeys("alt+right", "ctrl+right", "alt+f")),
	LineStart:  key.NewBinding(key.WithKeys("ctrl+a")),
	LineEnd:    key.NewBinding(key.WithKeys("ctrl+e")),
	Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+u")),
}

// keyStep is one synthesized press or release.
type keyStep struct {
	up    bool
	event interaction.KeyEvent
}

// translateKey maps a terminal key message onto menu key steps. Terminals
// report Alt only as a modifier of another key, so Alt+X becomes a press of
// the activation key, a press of X and a release of the activation key.
func translateKey(msg tea.KeyMsg) []keyStep {
	alt := interaction.KeyEvent{Key: interaction.KeyAlt}
	if key.Matches(msg, keys.Activate) {
		return []keyStep{{event: alt}, {up: true, event: alt}}
	}
	var ev interaction.KeyEvent
	switch msg.Type {
	case tea.KeyEsc:
		ev.Key = interaction.KeyEscape
	case tea.KeyUp:
		ev.Key = interaction.KeyUp
	case tea.KeyDown:
		ev.Key = interaction.KeyDown
	case tea.KeyLeft:
		ev.Key = interaction.KeyLeft
	case tea.KeyRight:
		ev.Key = interaction.KeyRight
	case tea.KeyEnter:
		ev.Key = interaction.KeyEnter
	case tea.KeySpace:
		ev.Key = interaction.KeySpace
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil
		}
		ev = interaction.KeyEvent{Key: interaction.KeyRune, Rune: msg.Runes[0]}
	default:
		return nil
	}
	if msg.Alt && ev.Key != interaction.KeyEscape {
		return []keyStep{{event: alt}, {event: ev}, {up: true, event: alt}}
	}
	return []keyStep{{event: ev}}
}
