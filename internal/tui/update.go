package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	zoomStep = 1.2
	zoomMax  = 64
	zoomMin  = 0.05
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeSidebar()

	case tea.KeyMsg:
		// Panels that own the keyboard consume keys before the scene does.
		switch {
		case m.showSidebar && m.l.FilterState() == list.Filtering:
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		case m.pasteMode:
			return m.pasteKey(msg)
		case m.showResults:
			if handled, cmd := m.resultsKey(msg); handled {
				return m, cmd
			}
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		m.sceneKey(msg.String())

	case tea.MouseMsg:
		m.mouse(msg)
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resizeSidebar() {
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
	}
}

// pasteKey edits the WKT buffer. Enter loads it, esc leaves it untouched.
func (m Model) pasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePaste()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		m.loadWKT(text)
		m.closePaste()
		return m, nil
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) openPaste() {
	m.pasteMode = true
	m.ta.SetValue("")
	m.ta.Focus()
	m.status = "paste mode"
}

func (m *Model) closePaste() {
	m.pasteMode = false
	m.ta.Blur()
}

// resultsKey scrolls or closes the results table. Other keys fall through to
// the scene.
func (m *Model) resultsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc", "r":
		m.showResults = false
		return true, nil

	case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return true, cmd
	}
	return false, nil
}

func (m *Model) sceneKey(key string) {
	switch key {
	case "m":
		m.toggleMode()
	case "c":
		m.clear()
	case "esc":
		m.objStart = nil
		m.inspectPopup = ""

	case "1":
		m.showSegments = !m.showSegments
		m.status = fmt.Sprintf("segments: %v", m.showSegments)
	case "2":
		m.showCuts = !m.showCuts
		m.status = fmt.Sprintf("cuts: %v", m.showCuts)
	case "3":
		m.showQuery = !m.showQuery
		m.status = fmt.Sprintf("query: %v", m.showQuery)
	case "l":
		on := !(m.showSegments && m.showCuts && m.showQuery)
		m.showSegments, m.showCuts, m.showQuery = on, on, on
		m.status = fmt.Sprintf("layers: segments=%v cuts=%v query=%v", on, on, on)

	case "+", "=":
		m.zoomBy(zoomStep)
	case "-", "_":
		m.zoomBy(1 / zoomStep)
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2

	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.resizeSidebar()
		}
	case "enter":
		if !m.showSidebar {
			return
		}
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			m.loadPath(it.path)
		}

	case "p":
		m.openPaste()
	case "h":
		m.helpVisible = !m.helpVisible
	case "r":
		m.showResults = true
		m.refreshResults()
	case "i":
		m.inspect()
	}
}

func (m *Model) zoomBy(f float64) {
	z := m.zoom * f
	if z > zoomMax || z < zoomMin {
		return
	}
	m.zoom = z
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
}

// mouse tracks the hovered world position. A left press on the map places an
// endpoint unless a panel covers the canvas.
func (m *Model) mouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH {
		m.hovering = false
		return
	}

	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	m.hoverWorld = m.viewport(lay.mapW, lay.mapH).cellToWorld(cx, cy)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.pasteMode && !m.showResults {
		m.place(m.hoverWorld)
	}
}
