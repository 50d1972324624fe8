// Package tray предоставляет значок в строке меню с контекстным меню.
package tray

import (
	"sync"

	"github.com/energye/systray"

	"fnflip/internal/iconkit"
	"fnflip/internal/menu"
)

// Callbacks содержит обработчики событий значка и меню.
type Callbacks struct {
	// OnClick - левый клик по значку.
	OnClick func()
	// OnMenuOpen вызывается перед показом меню по правому клику
	// и не должен ждать обновления меню.
	OnMenuOpen func()
	// OnItem - выбор пункта меню; checked - состояние галочки до клика.
	OnItem func(tag menu.Tag, checked bool)
}

// Tray управляет значком в строке меню.
type Tray struct {
	callbacks Callbacks

	mu    sync.Mutex
	items map[menu.Tag]*systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks: callbacks,
		items:     make(map[menu.Tag]*systray.MenuItem),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	// Обработчики вызываются в главном потоке и не должны его блокировать.
	// energye не сообщает модификаторы клика, поэтому Ctrl+клик тоже
	// переключает режим; меню открывается только правым кликом.
	systray.SetOnClick(func(systray.IMenu) {
		if t.callbacks.OnClick != nil {
			t.callbacks.OnClick()
		}
	})
	systray.SetOnRClick(func(m systray.IMenu) {
		if t.callbacks.OnMenuOpen != nil {
			t.callbacks.OnMenuOpen()
		}
		if m != nil {
			m.ShowMenu()
		}
	})
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// SetIcon показывает кадр иконки. Реализует iconkit.Target.
func (t *Tray) SetIcon(icon iconkit.Icon) {
	if icon.Template {
		systray.SetTemplateIcon(icon.PNG, icon.PNG)
		return
	}
	systray.SetIcon(icon.PNG)
}

// SetTooltip устанавливает подсказку значка.
func (t *Tray) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

// SetMenu при первом вызове создаёт пункты меню, затем обновляет их по тегам.
func (t *Tray) SetMenu(m *menu.Menu) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.items) == 0 {
		t.build(m)
		return
	}
	for _, it := range m.Items {
		if it.Separator {
			continue
		}
		if item, ok := t.items[it.Tag]; ok {
			apply(item, it)
		}
	}
}

func (t *Tray) build(m *menu.Menu) {
	for _, it := range m.Items {
		if it.Separator {
			systray.AddSeparator()
			continue
		}

		var item *systray.MenuItem
		if it.Checkable {
			item = systray.AddMenuItemCheckbox(it.Title, it.Tooltip, it.Checked)
		} else {
			item = systray.AddMenuItem(it.Title, it.Tooltip)
		}
		apply(item, it)

		tag := it.Tag
		item.Click(func() {
			if t.callbacks.OnItem != nil {
				t.callbacks.OnItem(tag, item.Checked())
			}
		})
		t.items[tag] = item
	}
}

func apply(item *systray.MenuItem, it *menu.Item) {
	item.SetTitle(it.Title)
	item.SetTooltip(it.Tooltip)
	if it.Enabled {
		item.Enable()
	} else {
		item.Disable()
	}
	if it.Checkable {
		if it.Checked {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
