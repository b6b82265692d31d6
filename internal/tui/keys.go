package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap declares every binding once so the handlers and the footer help
// lines stay in sync.
type keyMap struct {
	Quit     key.Binding
	Editor   key.Binding
	Generate key.Binding
	Library  key.Binding
	Settings key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Back  key.Binding

	Save        key.Binding
	PickStart   key.Binding
	ClearStart  key.Binding
	Remove      key.Binding
	RemoveRest  key.Binding
	TurnsUp     key.Binding
	TurnsDown   key.Binding
	Orientation key.Binding
	Channel     key.Binding
	Mirror      key.Binding
	Rotate      key.Binding
	SwapHands   key.Binding
	Clear       key.Binding

	Mode key.Binding

	Search   key.Binding
	Favorite key.Binding
	Delete   key.Binding
	Import   key.Binding
	Reset    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Editor:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editor")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Library:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "library")),
		Settings: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "settings")),

		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev beat")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next beat")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save to library")),
		PickStart:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "pick start")),
		ClearStart:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "clear start")),
		Remove:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove beat")),
		RemoveRest:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove to end")),
		TurnsUp:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "turns +")),
		TurnsDown:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "turns -")),
		Orientation: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orientation")),
		Channel:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blue/red")),
		Mirror:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mirror")),
		Rotate:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		SwapHands:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "swap hands")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear sequence")),

		Mode: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),

		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Delete:   key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "delete")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import file")),
		Reset:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reset database")),
	}
}

// helpLine renders bindings footer-style: [key] description pairs joined by
// two spaces.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
