package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// setupKeyBindings installs the viewer-level keys. View-local navigation
// (row selection, Enter) stays in the primitives; everything here is page
// and application scope.
func (v *Viewer) setupKeyBindings() {
	v.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// The picker owns the keyboard while it is open
		if v.tablePicker != nil && v.tablePicker.HasFocus() {
			return event
		}

		key := event.Key()
		ch := event.Rune()
		mod := event.Modifiers()

		if breadcrumbs != nil {
			keyStr := fmt.Sprintf("%v", key)
			if key == tcell.KeyRune {
				keyStr = string(ch)
			}
			modStr := ""
			if mod&tcell.ModCtrl != 0 {
				modStr += "Ctrl+"
			}
			if mod&tcell.ModAlt != 0 {
				modStr += "Alt+"
			}
			breadcrumbs.RecordKeyboard(keyStr, modStr)
		}

		switch key {
		case tcell.KeyLeft:
			v.handleNavigate(pagePrev, 0)
			return nil
		case tcell.KeyRight:
			v.handleNavigate(pageNext, 0)
			return nil
		case tcell.KeyPgUp:
			v.handleNavigate(pagePrev, 0)
			return nil
		case tcell.KeyPgDn:
			v.handleNavigate(pageNext, 0)
			return nil
		case tcell.KeyCtrlQ:
			v.app.Stop()
			return nil
		}

		if key == tcell.KeyRune {
			switch ch {
			case 'g':
				v.handleNavigate(pageFirst, 0)
				return nil
			case 'G':
				v.handleNavigate(pageLast, 0)
				return nil
			case 't':
				v.ShowTablePicker()
				return nil
			case 'q':
				v.app.Stop()
				return nil
			}
		}

		return event
	})
}
