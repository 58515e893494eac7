package study

import (
	"github.com/charmbracelet/lipgloss"

	"exam-qa-study/internal/metrics"
)

var (
	colorTitle     = lipgloss.Color("33")
	colorMuted     = lipgloss.Color("244")
	colorCorrect   = lipgloss.Color("42")
	colorIncorrect = lipgloss.Color("196")
	colorUngraded  = lipgloss.Color("220")
)

// stylize применяет цвет, если он не отключен
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func renderTitle(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitle).Render(text)
}

func gradeColor(grade metrics.Grade) lipgloss.Color {
	switch grade {
	case metrics.GradeCorrect:
		return colorCorrect
	case metrics.GradeIncorrect:
		return colorIncorrect
	default:
		return colorUngraded
	}
}
