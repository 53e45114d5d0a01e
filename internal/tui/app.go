// Package tui provides the interactive Bubble Tea dashboard for ccplan.
package tui

import (
	"fmt"
	"strings"
	"time"

	"ccplan/internal/cli"
	"ccplan/internal/fiscal"
	"ccplan/internal/model"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabCalendar = iota
	tabRepayments
	tabCount
)

// Data is everything the dashboard needs, precomputed by the caller.
type Data struct {
	FiscalYear fiscal.Year
	Loc        *time.Location
	Now        time.Time
	Days       map[string]float64
	Periods    []model.BillingPeriod // original schedule
	Adjusted   []model.BillingPeriod // headroom-adjusted, same length
	Headroom   float64
}

// App is the root Bubble Tea model.
type App struct {
	data Data

	months   []fiscal.MonthPeriod
	monthIdx int

	schedule table.Model

	width     int
	height    int
	activeTab int
}

// New builds the dashboard model.
func New(data Data) App {
	months := fiscal.MonthlyPeriods(data.FiscalYear.Start, data.FiscalYear.End)

	// Open on the month containing now when it falls inside the year.
	monthIdx := 0
	for i, mp := range months {
		if mp.Year == data.Now.Year() && mp.Month == data.Now.Month() {
			monthIdx = i
			break
		}
	}

	return App{
		data:     data,
		months:   months,
		monthIdx: monthIdx,
		schedule: newScheduleTable(data),
	}
}

// Run starts the dashboard and blocks until exit.
func Run(data Data) error {
	_, err := tea.NewProgram(New(data), tea.WithAltScreen()).Run()
	return err
}

func newScheduleTable(data Data) table.Model {
	columns := []table.Column{
		{Title: "Repayment", Width: 12},
		{Title: "Cycle", Width: 18},
		{Title: "Spending", Width: 12},
	}
	if data.Headroom > 0 {
		columns = append(columns, table.Column{
			Title: "+" + cli.FormatPercent(data.Headroom), Width: 12,
		})
	}

	rows := make([]table.Row, 0, len(data.Periods))
	for i, p := range data.Periods {
		row := table.Row{
			cli.FormatMonthKey(p.RepaymentMonth),
			fmt.Sprintf("%s – %s", cli.FormatDateShort(p.Start), cli.FormatDateShort(p.End)),
			cli.FormatAmount(p.TotalSpending),
		}
		if data.Headroom > 0 && i < len(data.Adjusted) {
			row = append(row, cli.FormatAmount(data.Adjusted[i].TotalSpending))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.ColorAccent)
	styles.Selected = styles.Selected.Foreground(cli.ColorText).Background(cli.ColorBorder)
	t.SetStyles(styles)

	return t
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % tabCount
			return a, nil
		case "shift+tab", "left":
			a.activeTab = (a.activeTab + tabCount - 1) % tabCount
			return a, nil
		case "1":
			a.activeTab = tabCalendar
			return a, nil
		case "2":
			a.activeTab = tabRepayments
			return a, nil
		case "[", "h":
			if a.activeTab == tabCalendar && a.monthIdx > 0 {
				a.monthIdx--
			}
			return a, nil
		case "]", "l":
			if a.activeTab == tabCalendar && a.monthIdx < len(a.months)-1 {
				a.monthIdx++
			}
			return a, nil
		}
	}

	if a.activeTab == tabRepayments {
		var cmd tea.Cmd
		a.schedule, cmd = a.schedule.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.viewTabs())
	b.WriteString("\n\n")

	switch a.activeTab {
	case tabCalendar:
		b.WriteString(a.viewCalendar())
	case tabRepayments:
		b.WriteString(a.viewRepayments())
	}

	b.WriteString("\n")
	b.WriteString(cli.RenderMuted("  tab switch · [/] month · q quit"))
	return b.String()
}

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.ColorAccent).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(cli.ColorTextMuted).
				Padding(0, 2)
)

func (a App) viewTabs() string {
	labels := []string{"Calendar", "Repayments"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == a.activeTab {
			parts[i] = tabActiveStyle.Render(label)
		} else {
			parts[i] = tabInactiveStyle.Render(label)
		}
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// viewCalendar renders a week grid of the selected month with each day's
// projected spend.
func (a App) viewCalendar() string {
	if len(a.months) == 0 {
		return "  No data."
	}
	mp := a.months[a.monthIdx]

	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText).
		Render(mp.Start.Format("January 2006")))
	b.WriteString("\n\n")

	const cellWidth = 10
	dayHeader := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	b.WriteString("  ")
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(dayHeader.Render(fmt.Sprintf("%-*s", cellWidth, wd)))
	}
	b.WriteString("\n")

	monthStart := time.Date(mp.Year, mp.Month, 1, 0, 0, 0, 0, a.data.Loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Leading blanks up to the first weekday (Monday-based week).
	col := (int(monthStart.Weekday()) + 6) % 7
	b.WriteString("  " + strings.Repeat(" ", col*cellWidth))

	today := fiscal.DayKey(a.data.Now)
	dimmed := lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	highlight := lipgloss.NewStyle().Foreground(cli.ColorGreen).Bold(true)

	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		key := fiscal.DayKey(d)
		amount, inYear := a.data.Days[key]

		cell := fmt.Sprintf("%2d %s", d.Day(), shortAmount(amount))
		switch {
		case key == today:
			cell = highlight.Render(fmt.Sprintf("%-*s", cellWidth, cell))
		case !inYear || amount == 0:
			cell = dimmed.Render(fmt.Sprintf("%-*s", cellWidth, cell))
		default:
			cell = fmt.Sprintf("%-*s", cellWidth, cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			col = 0
			b.WriteString("\n  ")
		}
	}
	b.WriteString("\n")

	var monthTotal float64
	for d := mp.Start; !d.After(mp.End); d = d.AddDate(0, 0, 1) {
		monthTotal += a.data.Days[fiscal.DayKey(d)]
	}
	b.WriteString(fmt.Sprintf("\n  Month total: %s\n", cli.FormatAmount(monthTotal)))

	return b.String()
}

func (a App) viewRepayments() string {
	if len(a.data.Periods) == 0 {
		return "  No upcoming billing periods."
	}

	var b strings.Builder
	b.WriteString(a.schedule.View())
	b.WriteString("\n")

	idx := a.schedule.Cursor()
	if idx >= 0 && idx < len(a.data.Periods) {
		b.WriteString(a.viewBreakdown(a.data.Periods[idx]))
	}
	return b.String()
}

// viewBreakdown shows the selected period's top categories.
func (a App) viewBreakdown(p model.BillingPeriod) string {
	var b strings.Builder
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText).
		Render("Breakdown "+cli.FormatMonthKey(p.RepaymentMonth)))
	b.WriteString("\n")

	shown := 0
	for _, cb := range p.Breakdown {
		if shown == 6 {
			b.WriteString(cli.RenderMuted(fmt.Sprintf("  … %d more categories\n", len(p.Breakdown)-shown)))
			break
		}
		b.WriteString(fmt.Sprintf("  %-24s %12s", cb.CategoryTitle, cli.FormatAmount(cb.TotalAmount)))
		if len(cb.Bills) > 0 {
			b.WriteString(cli.RenderMuted(fmt.Sprintf("  (%d bills)", len(cb.Bills))))
		}
		b.WriteString("\n")
		shown++
	}
	return b.String()
}

// shortAmount compresses an amount for a calendar cell.
func shortAmount(v float64) string {
	switch {
	case v == 0:
		return "·"
	case v >= 1000:
		return fmt.Sprintf("%.1fk", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
