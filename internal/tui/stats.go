package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"textsum/internal/domain"
)

var statsHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var statsCellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderStats draws the text statistics as a small table. Nil stats render
// as a single line.
func RenderStats(stats *domain.Stats) string {
	if stats == nil {
		return "No statistics available."
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return statsHeaderStyle
			}
			return statsCellStyle
		}).
		Headers("Metric", "Value").
		Row("Sentences", fmt.Sprint(stats.SentenceCount)).
		Row("Words", fmt.Sprint(stats.WordCount)).
		Row("Avg words/sentence", fmt.Sprintf("%.2f", stats.AvgWordsPerSentence))
	return t.Render()
}
