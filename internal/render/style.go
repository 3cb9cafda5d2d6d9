package render

import "github.com/charmbracelet/lipgloss"

// styles собраны от конкретного lipgloss.Renderer: цвета зависят от
// того, терминал ли на другом конце.
type styles struct {
	hidden   lipgloss.Style
	open     lipgloss.Style
	number   lipgloss.Style
	marked   lipgloss.Style
	bomb     lipgloss.Style
	cursor   lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	title    lipgloss.Style
	lost     lipgloss.Style
	won      lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	cell := r.NewStyle().PaddingLeft(1).PaddingRight(1)
	return styles{
		hidden: cell.Background(lipgloss.Color("240")), // закрытые: серый фон
		open:   cell.Background(lipgloss.Color("236")),
		number: cell.Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
		marked: cell.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("214")),
		bomb:   cell.Background(lipgloss.Color("196")).Foreground(lipgloss.Color("15")),
		// Курсор активного игрока: скобки вместо отступов, зеленый фон
		cursor: r.NewStyle().Background(lipgloss.Color("34")).Foreground(lipgloss.Color("15")),

		active:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		inactive: r.NewStyle().Foreground(lipgloss.Color("250")),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).MarginBottom(1),
		lost:     r.NewStyle().Bold(true).Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15")).Padding(0, 1),
		won:      r.NewStyle().Bold(true).Background(lipgloss.Color("34")).Foreground(lipgloss.Color("0")).Padding(0, 1),
		warning:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
