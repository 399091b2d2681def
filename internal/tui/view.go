package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	popupWidth   = 34
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW int
	contentH int
	mapX     int
	mapY     int
	mapW     int
	mapH     int
}

func (m Model) layout() layout {
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	side := 0
	if m.showSidebar {
		side = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapW = l.contentW - side - 1
	if m.inspectPopup != "" && !m.showResults {
		l.mapW -= popupWidth + 1
	}
	l.mapW = max(10, l.mapW)
	l.mapH = l.contentH
	return l
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lay := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}

	// Header
	header := titleStyle.Render(" segkd ─ kd-tree segment oracle ") + " " + infoStyle.Render(m.mode.infoLine())
	header = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showResults {
		// Render results table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		resultsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, resultsBox)
	} else {
		var canvasView string
		if m.pasteMode {
			// size textarea to map area
			m.ta.SetWidth(lay.mapW)
			m.ta.SetHeight(min(lay.mapH, 12))
			canvasView = m.ta.View()
		} else {
			canvasView = m.renderCanvas(lay.mapW, lay.mapH)
		}
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(canvasView)

		if m.inspectPopup != "" {
			box := boxStyle.Width(popupWidth).Render(m.inspectPopup)
			popup := lipgloss.Place(popupWidth, lay.mapH, lipgloss.Left, lipgloss.Center, box)
			mapView = lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", popup)
		}
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// hovered world coordinates at bottom-right
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.1f y=%.1f  ", m.hoverWorld.X, m.hoverWorld.Y))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).MaxHeight(footerHeight).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click place",
		"m mode",
		"c clear",
		"↑↓←→ pan",
		"+/- zoom",
		"1/2/3 layers",
		"i inspect",
		"r results",
		"Tab files",
		"p paste",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
