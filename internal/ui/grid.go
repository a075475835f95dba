package ui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/registry"
)

// Placeable is anything that can occupy a grid cell.
type Placeable interface {
	Side() model.Side
	Symbol() string
}

// Position is a zero-based grid coordinate.
type Position struct {
	Row int
	Col int
}

// TerrainColors are the default cell backgrounds.
var TerrainColors = map[model.Terrain]string{
	model.OpenWater: "#1a3a5c",
	model.Strait:    "#2a5a8c",
	model.Shallows:  "#3a6a5c",
	model.Island:    "#4a3a2a",
	model.Port:      "#5a4a3a",
}

// GridOptions adjusts Grid. Size defaults to registry.GridSize; Colors
// override TerrainColors per symbol.
type GridOptions struct {
	Size   int
	Colors map[model.Terrain]string
}

// Grid renders a square battlespace with row and column headers. Occupied
// cells show the unit symbol in its side colour; empty cells show terrain.
// Cells outside terrain render as open background.
func Grid(terrain [][]model.Terrain, units map[Position]Placeable, opts GridOptions) string {
	size := opts.Size
	if size <= 0 {
		size = registry.GridSize
	}

	var b strings.Builder
	b.WriteString("<table style='border-collapse:collapse; font-family:monospace; font-size:13px;'><tr><td></td>")
	for c := 0; c < size; c++ {
		fmt.Fprintf(&b, "<td style='text-align:center; padding:2px 6px; color:#888;'>%d</td>", c)
	}
	b.WriteString("</tr>")

	for r := 0; r < size; r++ {
		fmt.Fprintf(&b, "<tr><td style='padding:2px 6px; color:#888;'>%d</td>", r)
		for c := 0; c < size; c++ {
			cell := terrainAt(terrain, r, c)
			bg, ok := opts.Colors[cell]
			if !ok {
				bg, ok = TerrainColors[cell]
			}
			if !ok {
				bg = BGTurn
			}

			fg, label := "#555", string(cell)
			if u, ok := units[Position{Row: r, Col: c}]; ok && u != nil {
				fg = "#ff6666"
				if u.Side() == model.Blue {
					fg = "#66bbff"
				}
				label = u.Symbol()
			}
			fmt.Fprintf(&b, "<td style='background:%s; color:%s; text-align:center; padding:4px 8px; "+
				"border:1px solid #333; font-weight:bold;'>%s</td>", bg, fg, esc(label))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func terrainAt(terrain [][]model.Terrain, r, c int) model.Terrain {
	if r < len(terrain) && c < len(terrain[r]) {
		return terrain[r][c]
	}
	return ""
}
