package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/logs"
	list "github.com/charmbracelet/bubbles/list"

	"segkd/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.IsSupported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the scene with the segments stored in p, fitted to the
// canvas.
func (m *Model) loadPath(p string) {
	segs, err := geom.Load(p)
	if err != nil {
		logs.WithTag("path", p).Warn(err)
		m.status = "load error: " + err.Error()
		return
	}

	m.selPath = p
	m.setSegments(geom.Fit(segs, canvas))
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  segments=%d", len(m.segments))
	logs.WithTag("path", p).
		WithTag("segments", len(m.segments)).
		Info("segments loaded")
}

// loadWKT replaces the scene with pasted WKT.
func (m *Model) loadWKT(text string) {
	segs, err := geom.ParseWKT(text)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return
	}

	m.selPath = ""
	m.setSegments(geom.Fit(segs, canvas))
	m.status = fmt.Sprintf("rendered WKT  segments=%d", len(m.segments))
}
