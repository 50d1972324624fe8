package hotkey

import (
	"strings"

	"golang.design/x/hotkey"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"   // Option на macOS
	ModSuper Modifier = "super" // Cmd на macOS
)

// Key представляет клавишу.
type Key string

const (
	KeyF Key = "f"
	KeyK Key = "k"
	KeyT Key = "t"
)

// keyMap маппинг Key -> hotkey.Key
var keyMap = map[Key]hotkey.Key{
	KeyF: hotkey.KeyF,
	KeyK: hotkey.KeyK,
	KeyT: hotkey.KeyT,
}

// Shortcut - сочетание клавиш.
type Shortcut struct {
	Modifiers []Modifier
	Key       Key
}

// Default - ⌘⌥F.
var Default = Shortcut{Modifiers: []Modifier{ModSuper, ModAlt}, Key: KeyF}

// symbols - обозначения модификаторов в меню macOS.
var symbols = map[Modifier]string{
	ModCtrl:  "⌃",
	ModAlt:   "⌥",
	ModShift: "⇧",
	ModSuper: "⌘",
}

// Display возвращает запись для подсказок в порядке объявления
// модификаторов, например "⌘⌥F".
func (s Shortcut) Display() string {
	var b strings.Builder
	for _, m := range s.Modifiers {
		b.WriteString(symbols[m])
	}
	b.WriteString(strings.ToUpper(string(s.Key)))
	return b.String()
}

// String возвращает запись для логов, например "super+alt+f".
func (s Shortcut) String() string {
	parts := make([]string, 0, len(s.Modifiers)+1)
	for _, m := range s.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(s.Key))
	return strings.Join(parts, "+")
}
