package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// maxChannels caps how many series a single plot call draws.
const maxChannels = 6

// PlotChannels draws one asciigraph per column of rows, labelled
// "<prefix><index>".
func PlotChannels(rows [][]float64, prefix string) []string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	n := min(len(rows[0]), maxChannels)
	graphs := make([]string, 0, n)
	for ch := 0; ch < n; ch++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if ch < len(rows[i]) {
				data[i] = rows[i][ch]
			}
		}
		graphs = append(graphs, asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s%d vs step", prefix, ch)),
		))
	}
	return graphs
}
