package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/studydesk/pkg/colors"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/overdue"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	todayStyle  = lipgloss.NewStyle().Reverse(true)

	priorityHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Priority(model.PriorityHigh))).Bold(true)
	priorityMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Priority(model.PriorityMedium))).Bold(true)
	priorityLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Priority(model.PriorityLow))).Bold(true)

	statusDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	statusOverdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusTodayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusSoonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusUpcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	statusErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Italic(true)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func Header(s string) string {
	return headerStyle.Render(s)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}

func Key(s string) string {
	return keyStyle.Render(s)
}

func Box(s string) string {
	return boxStyle.Render(s)
}

// Priority renders a padded priority badge.
func Priority(p model.Priority) string {
	label := string(p)
	if label == "" {
		label = string(model.PriorityLow)
	}
	badge := "[" + label + "]"
	switch p {
	case model.PriorityHigh:
		return priorityHighStyle.Render(badge)
	case model.PriorityMedium:
		return priorityMedStyle.Render(badge)
	default:
		return priorityLowStyle.Render(badge)
	}
}

// Status renders a due-date badge. Date errors show the offending value.
func Status(s overdue.Status) string {
	switch s.Kind {
	case overdue.Overdue:
		return statusOverdueStyle.Render(s.String())
	case overdue.DueToday:
		return statusTodayStyle.Render(s.String())
	case overdue.DueSoon:
		return statusSoonStyle.Render(s.String())
	case overdue.Upcoming:
		return statusUpcomingStyle.Render(s.String())
	default:
		return statusErrorStyle.Render(s.String())
	}
}

func Check(done bool) string {
	if done {
		return statusDoneStyle.Render("[x]")
	}
	return "[ ]"
}

// Subject renders name in its derived subject colour.
func Subject(name string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Subject(name))).Render(name)
}
