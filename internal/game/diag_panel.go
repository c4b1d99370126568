package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

const (
	logPanelWidth = 360
	logLineHeight = 11
)

// categoryColors tints the indicator dot of each diagnostics row.
var categoryColors = map[string]color.RGBA{
	"init":   {R: 90, G: 200, B: 90, A: 255},
	"zone":   {R: 70, G: 140, B: 220, A: 255},
	"mode":   {R: 230, G: 200, B: 60, A: 255},
	"config": {R: 170, G: 170, B: 170, A: 255},
	"input":  {R: 220, G: 110, B: 70, A: 255},
}

// drawDiagPanel renders the most recent diagnostics entries on the right
// side of the screen, newest at the bottom.
func drawDiagPanel(screen *ebiten.Image, entries []overlay.DiagEntry, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "DIAGNOSTICS", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	visible := visibleEntries(entries, (panelH-24)/logLineHeight)
	const highlight = 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-highlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 36, B: 48, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 120, G: 120, B: 120, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %s", e.Tick, e.Value), panelX+12, y)
		y += logLineHeight
	}
}

// visibleEntries keeps the newest entries that fit in maxRows.
func visibleEntries(entries []overlay.DiagEntry, maxRows int) []overlay.DiagEntry {
	if maxRows <= 0 {
		return nil
	}
	if len(entries) > maxRows {
		return entries[len(entries)-maxRows:]
	}
	return entries
}
