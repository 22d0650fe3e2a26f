package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynarray/internal/dynarray"
	"github.com/san-kum/dynarray/internal/trace"
)

const maxCells = 32

// RenderArray draws the logical elements followed by one dot per spare
// slot. Long arrays are cut after maxCells cells.
func RenderArray[T any](a *dynarray.DynamicArray[T]) string {
	values := a.Values()
	cells := make([]string, 0, min(a.Capacity(), maxCells))
	for i := 0; i < a.Capacity() && i < maxCells; i++ {
		if i < len(values) {
			cells = append(cells, cellUsed.Render(fmt.Sprint(values[i])))
		} else {
			cells = append(cells, cellSpare.Render("·"))
		}
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Join(cells, "|"))
	if a.Capacity() > maxCells {
		b.WriteString(Subtle.Render(fmt.Sprintf("|…+%d", a.Capacity()-maxCells)))
	}
	b.WriteString("]")
	return b.String()
}

// GrowthPlot charts capacity and size per append. It returns an empty
// string for an empty trace.
func GrowthPlot(tr *trace.Trace, width, height int) string {
	if tr.Len() == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{tr.Capacities(), tr.Sizes()},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
		asciigraph.Caption(fmt.Sprintf("capacity (green) and size (cyan) over %d appends", tr.Len())),
	)
}
