package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// fuzzyMatch performs fuzzy matching and returns match status and positions.
// It matches characters from search in order within text (case-insensitive).
// Returns true if all characters in search were found, and the positions of those characters.
func fuzzyMatch(search, text string) (bool, []int) {
	search = strings.ToLower(search)
	text = strings.ToLower(text)

	var positions []int
	searchIdx := 0

	for i, char := range text {
		if searchIdx < len(search) && char == rune(search[searchIdx]) {
			positions = append(positions, i)
			searchIdx++
		}
	}

	return searchIdx == len(search), positions
}

// isPrefixMatch reports whether text starts with search (case-insensitive).
// Prefix matches rank ahead of plain fuzzy matches in the dropdown.
func isPrefixMatch(search, text string) bool {
	return strings.HasPrefix(strings.ToLower(text), strings.ToLower(search))
}

// highlightMatches formats a table name with tview color codes so matched
// characters render bold dark green.
func highlightMatches(table string, positions []int) string {
	if len(positions) == 0 {
		return table
	}

	highlightMap := make(map[int]bool)
	for _, pos := range positions {
		highlightMap[pos] = true
	}

	var result strings.Builder
	runes := []rune(table)
	for i, r := range runes {
		if highlightMap[i] {
			result.WriteString("[darkgreen::b]")
			result.WriteRune(r)
			result.WriteString("[-::-]")
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// cleanTableNames removes newlines and whitespace from table names
func cleanTableNames(tables []string) []string {
	cleaned := make([]string, 0, len(tables))
	for _, table := range tables {
		name := strings.TrimSpace(strings.ReplaceAll(table, "\n", ""))
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}

// FuzzySelector is the table picker overlay: a search field over a filtered
// dropdown of table names.
type FuzzySelector struct {
	*tview.Box
	items         []string          // All available tables
	searchText    string            // Current search text
	selectedIndex int               // Highlighted item in dropdown
	dropdownList  *tview.List       // Dropdown list for showing filtered tables
	maxVisible    int               // Max items to show in dropdown
	inputField    *tview.InputField // Reference to the currently created input field
	innerFlex     *tview.Flex       // Inner flex container
	dropdownFlex  *tview.Flex       // Flex container for dropdown (to allow resizing)

	// Callbacks
	onSelect func(tableName string) // Called when a table is selected
	onClose  func()                 // Called when the picker should be closed
}

// NewFuzzySelector creates a new table picker component.
func NewFuzzySelector(tables []string, initialTable string, onSelect func(string), onClose func()) *FuzzySelector {
	fs := &FuzzySelector{
		Box:           tview.NewBox(),
		items:         cleanTableNames(tables),
		selectedIndex: 0,
		maxVisible:    6,
		onSelect:      onSelect,
		onClose:       onClose,
	}

	// Pre-initialize the layout so the input field exists immediately
	filtered, matchPositions := fs.calculateFiltered("")
	fs.buildInnerLayout(filtered, matchPositions)

	return fs
}

// calculateFiltered filters the table list based on search text and returns
// the filtered tables and their match positions.
func (fs *FuzzySelector) calculateFiltered(search string) ([]string, map[int][]int) {
	filtered := []string{}
	matchPositions := make(map[int][]int)

	if search == "" {
		filtered = fs.items
		for i := range fs.items {
			matchPositions[i] = []int{}
		}
		return filtered, matchPositions
	}

	// Prefix matches first, then the remaining fuzzy matches, each group in
	// original table order.
	type match struct {
		table     string
		positions []int
	}
	var fuzzy []match
	for _, table := range fs.items {
		matches, positions := fuzzyMatch(search, table)
		if !matches {
			continue
		}
		if isPrefixMatch(search, table) {
			filtered = append(filtered, table)
			matchPositions[len(filtered)-1] = positions
		} else {
			fuzzy = append(fuzzy, match{table, positions})
		}
	}
	for _, m := range fuzzy {
		filtered = append(filtered, m.table)
		matchPositions[len(filtered)-1] = m.positions
	}

	return filtered, matchPositions
}

// Draw implements tview.Primitive. Filtered results are recalculated on each
// frame so the dropdown tracks the search text.
func (fs *FuzzySelector) Draw(screen tcell.Screen) {
	fs.Box.DrawForSubclass(screen, fs)

	filtered, matchPositions := fs.calculateFiltered(fs.searchText)

	if fs.innerFlex == nil {
		fs.buildInnerLayout(filtered, matchPositions)
	} else {
		// Just update the dropdown list without rebuilding the input field
		fs.updateDropdownList(filtered, matchPositions)
	}

	if fs.innerFlex != nil {
		x, y, width, height := fs.GetInnerRect()
		fs.innerFlex.SetRect(x, y, width, height)
		fs.innerFlex.Draw(screen)
	}
}

// InputHandler forwards keyboard events to the input field.
func (fs *FuzzySelector) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return fs.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if fs.inputField != nil {
			if handler := fs.inputField.InputHandler(); handler != nil {
				handler(event, setFocus)
				return
			}
		}
	})
}

// MouseHandler enables hover highlighting and click selection in the dropdown.
func (fs *FuzzySelector) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	return fs.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		mouseX, mouseY := event.Position()

		if fs.dropdownList != nil {
			listX, listY, listWidth, listHeight := fs.dropdownList.GetRect()

			if mouseX >= listX && mouseX < listX+listWidth &&
				mouseY >= listY && mouseY < listY+listHeight {

				filtered, _ := fs.calculateFiltered(fs.searchText)
				if len(filtered) == 0 {
					return false, nil
				}

				itemIndex := mouseY - listY
				if itemIndex >= 0 && itemIndex < len(filtered) {
					switch action {
					case tview.MouseMove:
						// Hover: highlight the item
						fs.dropdownList.SetCurrentItem(itemIndex)
						fs.selectedIndex = itemIndex
						return true, nil

					case tview.MouseLeftClick:
						if fs.onSelect != nil {
							fs.clearSearchText()
							fs.onSelect(filtered[itemIndex])
						}
						return true, nil
					}
				}
			}
		}

		// Forward other mouse events to inner components
		if fs.innerFlex != nil {
			if handler := fs.innerFlex.MouseHandler(); handler != nil {
				consumed, primitive := handler(action, event, setFocus)
				if consumed {
					return true, primitive
				}
			}
		}

		return false, nil
	})
}

// Focus forwards focus to the input field.
func (fs *FuzzySelector) Focus(delegate func(p tview.Primitive)) {
	if fs.inputField != nil {
		delegate(fs.inputField)
	}
}

// HasFocus returns whether the input field has focus.
func (fs *FuzzySelector) HasFocus() bool {
	if fs.inputField != nil {
		return fs.inputField.HasFocus()
	}
	return false
}

// buildInnerLayout builds the internal flex layout with input field and dropdown.
func (fs *FuzzySelector) buildInnerLayout(filtered []string, matchPositions map[int][]int) {
	inputField := fs.createInputField()
	fs.createDropdownListWithData(filtered, matchPositions)

	listHeight := len(filtered)
	if listHeight == 0 {
		listHeight = 1 // Show "No results"
	}
	if listHeight > fs.maxVisible {
		listHeight = fs.maxVisible
	}

	// Inner flex: input field + dropdown list
	fs.dropdownFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(inputField, 1, 0, true).
		AddItem(fs.dropdownList, listHeight, 0, false)

	// Outer flex: 1-character left padding + inner flex
	fs.innerFlex = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(fs.dropdownFlex, 0, 1, true)
}

// updateDropdownList updates just the dropdown list without rebuilding the input field.
func (fs *FuzzySelector) updateDropdownList(filtered []string, matchPositions map[int][]int) {
	if fs.dropdownFlex == nil {
		return
	}

	fs.dropdownFlex.RemoveItem(fs.dropdownList)
	fs.createDropdownListWithData(filtered, matchPositions)

	listHeight := len(filtered)
	if listHeight == 0 {
		listHeight = 1 // Show "No results"
	}
	if listHeight > fs.maxVisible {
		listHeight = fs.maxVisible
	}

	fs.dropdownFlex.AddItem(fs.dropdownList, listHeight, 0, false)
}

// createInputField creates and returns a new input field for the search bar.
func (fs *FuzzySelector) createInputField() *tview.InputField {
	inputField := tview.NewInputField().
		SetLabel("").
		SetText(fs.searchText).
		SetPlaceholder("Search for a table...").
		SetFieldWidth(0)

	fs.inputField = inputField

	// Update search text (dropdown will be updated in Draw)
	inputField.SetChangedFunc(func(text string) {
		fs.searchText = text
	})

	// Handle keyboard navigation and selection
	inputField.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		filtered, _ := fs.calculateFiltered(fs.searchText)

		switch event.Key() {
		case tcell.KeyEscape:
			if fs.onClose != nil {
				fs.onClose()
			}
			return nil // Consume the event
		case tcell.KeyDown, tcell.KeyTab:
			// Move highlight down the dropdown list
			if fs.dropdownList != nil && len(filtered) > 0 {
				fs.selectedIndex++
				fs.dropdownList.SetCurrentItem(fs.selectedIndex)
				return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
			}
			return nil
		case tcell.KeyUp, tcell.KeyBacktab:
			// Move highlight up the dropdown list
			if fs.dropdownList != nil && len(filtered) > 0 {
				fs.selectedIndex--
				fs.dropdownList.SetCurrentItem(fs.selectedIndex)
				return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
			}
			return nil
		case tcell.KeyEnter:
			// Select the currently highlighted item in dropdown
			if fs.dropdownList != nil && len(filtered) > 0 {
				if idx := fs.dropdownList.GetCurrentItem(); idx >= 0 && idx < len(filtered) {
					if fs.onSelect != nil {
						fs.clearSearchText()
						fs.onSelect(filtered[idx])
					}
				}
				return nil // Consume the event
			}
		}
		return event
	})

	return inputField
}

// GetInputField returns the most recently created input field instance.
// The viewer uses it to set focus when the picker is opened.
func (fs *FuzzySelector) GetInputField() *tview.InputField {
	return fs.inputField
}

// clearSearchText clears the search text and updates the input field.
func (fs *FuzzySelector) clearSearchText() {
	fs.searchText = ""
	if fs.inputField != nil {
		fs.inputField.SetText("")
	}
	fs.selectedIndex = 0
}

// createDropdownListWithData creates and populates the dropdown list with pre-calculated filtered results.
func (fs *FuzzySelector) createDropdownListWithData(filtered []string, matchPositions map[int][]int) {
	fs.dropdownList = tview.NewList().
		SetWrapAround(true).
		ShowSecondaryText(false)

	if len(filtered) == 0 {
		fs.dropdownList.AddItem("No results", "", rune(0), nil)
	} else {
		for i, tableName := range filtered {
			positions := matchPositions[i]
			displayText := highlightMatches(tableName, positions)

			// Capture table name in closure for selection handler
			name := tableName
			fs.dropdownList.AddItem(displayText, "", rune(0), func() {
				if fs.onSelect != nil {
					fs.clearSearchText()
					fs.onSelect(name)
				}
			})
		}
	}

	if fs.selectedIndex >= 0 && fs.selectedIndex < len(filtered) {
		fs.dropdownList.SetCurrentItem(fs.selectedIndex)
	}

	// Handle navigation in dropdown
	fs.dropdownList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentItem := fs.dropdownList.GetCurrentItem()

		switch event.Key() {
		case tcell.KeyEscape:
			// Return focus to input field
			return tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)
		case tcell.KeyUp:
			// If at first item, move focus back to input field
			if currentItem == 0 {
				return tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)
			}
			return event
		case tcell.KeyBacktab:
			return event
		case tcell.KeyEnter:
			if currentItem >= 0 && currentItem < len(filtered) {
				if fs.onSelect != nil {
					fs.clearSearchText()
					fs.onSelect(filtered[currentItem])
				}
			}
			return nil // Consume the event
		}
		return event
	})
}

// pickerTitle formats the picker trigger text showing the current table.
func pickerTitle(tableName string) string {
	return fmt.Sprintf(" %s ▾", tableName)
}
