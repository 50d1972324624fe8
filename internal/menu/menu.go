// Package menu описывает контекстное меню строки меню как модель,
// независимую от системного трея.
package menu

import (
	"fnflip/internal/hotkey"
	"fnflip/internal/i18n"
)

// Tag - стабильный идентификатор пункта, по которому меню обновляется на месте.
type Tag int

const (
	TagHeader Tag = 900 + iota
	TagToggle
	TagLaunchAtLogin
	TagAbout
	TagQuit
)

// quitShortcut - стандартное сочетание выхода, только для отображения.
var quitShortcut = hotkey.Shortcut{Modifiers: []hotkey.Modifier{hotkey.ModSuper}, Key: "q"}

// Item - пункт меню. Разделитель не имеет тега.
type Item struct {
	Tag       Tag
	Title     string
	Tooltip   string
	Shortcut  string
	Enabled   bool
	Checkable bool
	Checked   bool
	Separator bool
}

// State - данные, от которых зависит содержимое меню.
type State struct {
	// Enabled - включены стандартные F1..F12.
	Enabled       bool
	LaunchAtLogin bool
	Shortcut      hotkey.Shortcut
}

// Menu - упорядоченный список пунктов.
type Menu struct {
	Items []*Item
}

// Build собирает меню для состояния state.
func Build(state State) *Menu {
	m := &Menu{Items: []*Item{
		{Tag: TagHeader},
		{Tag: TagToggle, Tooltip: i18n.T("menu_switch_hint"), Shortcut: state.Shortcut.Display(), Enabled: true},
		{Separator: true},
		{Tag: TagLaunchAtLogin, Title: i18n.T("menu_launch_at_login"), Tooltip: i18n.T("menu_launch_hint"), Enabled: true, Checkable: true},
		{Separator: true},
		{Tag: TagAbout, Title: i18n.T("menu_about"), Tooltip: i18n.T("menu_about_hint"), Enabled: true},
		{Separator: true},
		{Tag: TagQuit, Title: i18n.T("menu_quit"), Tooltip: i18n.T("menu_quit_hint"), Shortcut: quitShortcut.Display(), Enabled: true},
	}}
	Refresh(m, state)
	return m
}

// Refresh меняет заголовок, текст переключателя и галочку на месте.
func Refresh(m *Menu, state State) {
	if header := m.Item(TagHeader); header != nil {
		header.Title = HeaderTitle(state.Enabled)
	}
	if toggle := m.Item(TagToggle); toggle != nil {
		toggle.Title = ToggleTitle(state.Enabled)
	}
	if launch := m.Item(TagLaunchAtLogin); launch != nil {
		launch.Checked = state.LaunchAtLogin
	}
}

// Item возвращает пункт по тегу или nil.
func (m *Menu) Item(tag Tag) *Item {
	for _, it := range m.Items {
		if !it.Separator && it.Tag == tag {
			return it
		}
	}
	return nil
}

// HeaderTitle - заголовок с текущим режимом.
func HeaderTitle(enabled bool) string {
	if enabled {
		return i18n.T("menu_header_standard")
	}
	return i18n.T("menu_header_hardware")
}

// ToggleTitle - действие переключателя, противоположное текущему режиму.
func ToggleTitle(enabled bool) string {
	if enabled {
		return i18n.T("menu_switch_hardware")
	}
	return i18n.T("menu_switch_standard")
}
