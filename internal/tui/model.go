package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"segkd/internal/geom"
	"segkd/internal/kdv"
)

// canvas is the world the segments live in.
var canvas = geom.Bound{RB: geom.Point{X: 640, Y: 480}}

// axes alternate horizontal and vertical cuts by depth.
var axes = []geom.Axis{geom.Horizontal, geom.Vertical}

type mode int

const (
	modeConstruct mode = iota
	modeCollide
)

func (md mode) String() string {
	if md == modeCollide {
		return "collide"
	}
	return "construct"
}

func (md mode) infoLine() string {
	if md == modeCollide {
		return "[ colliding ] m: switch to construct mode, c: clear, q: exit"
	}
	return "[ constructing ] m: switch to collide mode, c: clear, q: exit"
}

// Config tunes the tree and queries of a Model.
type Config struct {
	// Parallelism is the number of goroutines used to build the tree.
	Parallelism int

	// NearestCount is the number of distinct nearest segments reported by
	// a collide query.
	NearestCount int
}

// hit is a segment confirmed to cross the needle.
type hit struct {
	shapeID   int
	at        geom.Point
	fragments int
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Scene
	conf     Config
	segments []geom.Segment
	tree     *kdv.Tree[geom.Segment]
	cuts     []kdv.CutLine

	// Interaction
	mode     mode
	objStart *geom.Point

	// Last collide query
	needle  *geom.Segment
	hits    []hit
	nearest []kdv.Neighbour

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showSegments bool
	showCuts     bool
	showQuery    bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverWorld geom.Point

	// results table
	showResults bool
	tbl         table.Model
}

func New(conf Config) Model {
	m := Model{
		showSidebar:  false,
		helpVisible:  true,
		zoom:         1.0,
		status:       "segkd ready",
		conf:         conf,
		showSegments: true,
		showCuts:     true,
		showQuery:    true,
	}
	m.conf.Parallelism = max(m.conf.Parallelism, 1)
	m.conf.NearestCount = max(m.conf.NearestCount, 1)
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING, POLYGON, MULTI*). Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// results table setup
	m.tbl = table.New(
		table.WithColumns(resultColumns),
		table.WithFocused(true),
	)
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.rebuild()
	return m
}

// NewWithPath preloads a file's segments at launch.
func NewWithPath(conf Config, path string) Model {
	m := New(conf)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
