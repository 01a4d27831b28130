package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/studydesk/pkg/colors"
	"github.com/harrisonrobin/studydesk/pkg/dashboard"
	"github.com/harrisonrobin/studydesk/pkg/events"
	"github.com/harrisonrobin/studydesk/pkg/grades"
	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/tasks"
)

// ProgressBar draws frac (0..1) as a fixed-width text bar with a percentage.
func ProgressBar(frac float64, width int) string {
	frac = max(0, min(1, frac))
	filled := int(frac*float64(width) + 0.5)
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), frac*100)
}

func TaskLine(it tasks.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s", Muted(model.ShortID(it.ID)), Check(it.Completed), Priority(it.Priority), it.Title())
	if !it.Completed {
		fmt.Fprintf(&b, "  %s", Status(it.Status))
	}
	fmt.Fprintf(&b, "  %s", Muted("due "+it.DueDate))
	return b.String()
}

func EventLine(it events.Item) string {
	when := it.Date
	if !it.AllDay() {
		when += " " + it.Time
	}
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Event(it.Event))).Render("|")
	line := fmt.Sprintf("%s %s %s %-10s %s %s  %s",
		accent, Muted(model.ShortID(it.ID)), when, it.Type, Priority(it.Priority), it.Title, Status(it.Status))
	var extra []string
	if it.Description != "" {
		extra = append(extra, it.Description)
	}
	if it.Location != "" {
		extra = append(extra, "@ "+it.Location)
	}
	if it.Link != "" {
		extra = append(extra, it.Link)
	}
	if len(extra) > 0 {
		line += "\n    " + Muted(strings.Join(extra, " | "))
	}
	return line
}

func ScheduleLine(e model.Event) string {
	clock := "all day"
	if !e.AllDay() {
		clock = e.Time
	}
	return fmt.Sprintf("%-7s %s %s", clock, Priority(e.Priority), e.Title)
}

func ResourceLine(r model.Resource) string {
	line := fmt.Sprintf("%s %s", Subject(r.Name), Muted(fmt.Sprintf("(%s)", r.Type)))
	meta := []string{r.Date}
	if r.Code != "" {
		meta = append(meta, r.Code)
	}
	if r.Tags != "" {
		meta = append(meta, r.Tags)
	}
	line += "  " + Muted(strings.Join(meta, " | "))
	if r.Description != "" {
		line += "\n    " + r.Description
	}
	if r.Link != "" {
		line += "\n    " + Key(r.Link)
	}
	return line
}

// QuickNote numbers notes from 1 the way they are addressed on the command line.
func QuickNote(i int, n model.QuickNote) string {
	return fmt.Sprintf("%s %s\n%s", Header(fmt.Sprintf("Note %d", i+1)), Muted(n.Timestamp), n.Content)
}

func Dashboard(s dashboard.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header(fmt.Sprintf("%s, %s!", s.Greeting, s.Name)))
	fmt.Fprintf(&b, "%s\n\n", Muted(s.Now.Format("Monday, 02 January 2006 15:04 MST")))

	stats := []string{
		fmt.Sprintf("Notes: %d", s.Stats.Resources),
		fmt.Sprintf("Pending tasks: %d", s.Stats.Pending),
		fmt.Sprintf("Upcoming events: %d", s.Stats.Upcoming),
		fmt.Sprintf("Productivity: %d%%", s.Stats.Productivity),
	}
	fmt.Fprintf(&b, "%s\n", Box(strings.Join(stats, "   ")))
	if s.Stats.Overdue > 0 {
		fmt.Fprintf(&b, "%s\n", statusOverdueStyle.Render(fmt.Sprintf("%d overdue task(s)", s.Stats.Overdue)))
	}

	label := "Quote of the day"
	if !s.LiveQuote {
		label = "Quote"
	}
	fmt.Fprintf(&b, "\n%s: %s\n", Key(label), s.Quote)
	return b.String()
}

func CGPA(cgpa float64) string {
	band := grades.BandFor(cgpa)
	return fmt.Sprintf("%s %.2f\n%s\n%s",
		Header("CGPA:"), cgpa, ProgressBar(grades.Progress(cgpa), 30), band.Advice())
}

func CourseReport(c model.Course, g grades.CourseGrade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Subject(c.Name), Muted(fmt.Sprintf("Course code: %s | Credits: %d", c.Code, c.Credits)))
	fmt.Fprintf(&b, "Overall grade: %.1f%%  %s\n", g.Score(), Muted("(assignments 40%, midterm 30%, final 30%)"))
	for _, gap := range grades.Compare(g) {
		mark := statusUpcomingStyle.Render("on target")
		if gap.Delta() < 0 {
			mark = statusOverdueStyle.Render(fmt.Sprintf("%.0f below", -gap.Delta()))
		}
		fmt.Fprintf(&b, "  %-12s %5.1f / %3.0f  %s  %s\n", gap.Component, gap.Score, gap.Target, ProgressBar(gap.Score/100, 20), mark)
	}
	return b.String()
}

// Month draws a Monday-first calendar grid. Days with events carry a '*'.
func Month(year int, month time.Month, list []model.Event, today time.Time, loc *time.Location) string {
	marked := make(map[int]bool)
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for _, e := range list {
		if strings.HasPrefix(e.Date, prefix) {
			var day int
			if _, err := fmt.Sscanf(strings.TrimPrefix(e.Date, prefix), "%d", &day); err == nil {
				marked[day] = true
			}
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	var b strings.Builder
	title := first.Format("January 2006")
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", max(0, (20-len(title))/2)), Header(title))
	b.WriteString("Mo Tu We Th Fr Sa Su\n")
	b.WriteString(strings.Repeat("   ", offset))

	isThisMonth := today.Year() == year && today.Month() == month
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%2d", day)
		if isThisMonth && today.Day() == day {
			cell = todayStyle.Render(cell)
		}
		if marked[day] {
			cell += "*"
		} else {
			cell += " "
		}
		b.WriteString(cell)
		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if (offset+days)%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
