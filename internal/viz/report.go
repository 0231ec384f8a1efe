package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxRows caps the control table; longer plans show head and tail.
const maxRows = 12

// PlanReport is what the CLI prints after a solve.
type PlanReport struct {
	Name    string
	ID      string
	Actions [][]float64
	Metrics map[string]float64
}

func RenderPlan(r PlanReport) string {
	var b strings.Builder

	title := "plan"
	if r.Name != "" {
		title = r.Name
	}
	b.WriteString(Title.Render(title))
	if r.ID != "" {
		b.WriteString(" " + Subtle.Render(r.ID))
	}
	b.WriteString("\n\n")
	b.WriteString(renderActions(r.Actions))
	b.WriteString("\n")
	b.WriteString(renderMetrics(r.Metrics))

	return Panel.Render(b.String())
}

func renderActions(actions [][]float64) string {
	if len(actions) == 0 {
		return Subtle.Render("no actions")
	}

	var b strings.Builder
	header := fmt.Sprintf("%5s", "step")
	for i := range actions[0] {
		header += fmt.Sprintf(" %12s", fmt.Sprintf("u%d", i))
	}
	b.WriteString(HeaderStyle.Render(header) + "\n")

	writeRow := func(t int) {
		row := fmt.Sprintf("%5d", t)
		for _, v := range actions[t] {
			row += fmt.Sprintf(" %12.6g", v)
		}
		b.WriteString(row + "\n")
	}

	if len(actions) <= maxRows {
		for t := range actions {
			writeRow(t)
		}
	} else {
		half := maxRows / 2
		for t := 0; t < half; t++ {
			writeRow(t)
		}
		b.WriteString(Subtle.Render(fmt.Sprintf("%5s ... %d more steps", "", len(actions)-maxRows)) + "\n")
		for t := len(actions) - half; t < len(actions); t++ {
			writeRow(t)
		}
	}

	for i := range actions[0] {
		channel := make([]float64, len(actions))
		for t := range actions {
			channel[t] = actions[t][i]
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			MetricLabel.Render(fmt.Sprintf("%5s ", fmt.Sprintf("u%d", i))),
			Sparkline(channel, 40),
		) + "\n")
	}
	return b.String()
}

func renderMetrics(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-16s", name)))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%.6g", metrics[name])))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
