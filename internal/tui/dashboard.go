package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/greenconnect/internal/advice"
	"github.com/sadopc/greenconnect/internal/store"
	"go.uber.org/zap"
)

const adviceIdle = "Press a to get a personalized tip."

type dashboardModel struct {
	store   *store.Store
	advisor *advice.Advisor
	logger  *zap.Logger
	width   int
	height  int

	stats   store.UserStats
	totals  []store.CategoryTotal
	entries []store.ActivityLogEntry
	cursor  int
	offset  int
	now     func() time.Time

	chart barchart.Model

	spinner       spinner.Model
	adviceLoading bool
	adviceText    string
}

func newDashboardModel(s *store.Store, a *advice.Advisor, logger *zap.Logger) dashboardModel {
	if s == nil {
		panic("tui: dashboard requires an activity store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if a == nil {
		a = advice.New(nil, logger)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = successStyle

	return dashboardModel{
		store:   s,
		advisor: a,
		logger:  logger,
		now:     time.Now,
		chart:   barchart.New(40, 10),
		spinner: sp,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

type dashboardDataMsg struct {
	stats   store.UserStats
	totals  []store.CategoryTotal
	entries []store.ActivityLogEntry
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{
			stats:   d.store.Stats(),
			totals:  d.store.CategoryTotals(),
			entries: d.store.Entries(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.stats = msg.stats
		d.totals = msg.totals
		d.entries = msg.entries
		if d.cursor >= len(d.entries) {
			d.cursor = max(0, len(d.entries)-1)
		}
		d.clampOffset()
		d.buildChart()
		return d, nil

	case adviceMsg:
		d.adviceLoading = false
		d.adviceText = msg.text
		return d, nil

	case spinner.TickMsg:
		if !d.adviceLoading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
			d.clampOffset()
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.entries)-1 {
				d.cursor++
			}
			d.clampOffset()
		case key.Matches(msg, keys.Delete):
			return d.deleteSelected()
		case key.Matches(msg, keys.Advice):
			return d.requestAdvice()
		case key.Matches(msg, keys.New):
			return d, func() tea.Msg { return navigateMsg{route: routeLog} }
		}
	}
	return d, nil
}

func (d dashboardModel) deleteSelected() (dashboardModel, tea.Cmd) {
	if len(d.entries) == 0 {
		return d, nil
	}
	e := d.entries[d.cursor]
	d.store.Delete(e.ID)
	d.logger.Info("entry deleted", zap.String("id", e.ID), zap.String("category", string(e.Category)))
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return entryDeletedMsg{id: e.ID} },
	)
}

// requestAdvice starts one advice request; further presses are ignored
// until it finishes.
func (d dashboardModel) requestAdvice() (dashboardModel, tea.Cmd) {
	if d.adviceLoading {
		return d, nil
	}
	d.adviceLoading = true
	entries := d.store.Recent(advice.MaxPromptEntries)
	advisor := d.advisor
	return d, tea.Batch(
		d.spinner.Tick,
		func() tea.Msg {
			return adviceMsg{text: advisor.Advise(context.Background(), entries)}
		},
	)
}

func (d dashboardModel) listHeight() int {
	// Stats, chart and advice panels take the rest.
	return max(3, d.height-24)
}

func (d *dashboardModel) clampOffset() {
	h := d.listHeight()
	if d.cursor < d.offset {
		d.offset = d.cursor
	}
	if d.cursor >= d.offset+h {
		d.offset = d.cursor - h + 1
	}
	if d.offset > max(0, len(d.entries)-h) {
		d.offset = max(0, len(d.entries)-h)
	}
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	d.chart = barchart.New(chartWidth, 10)

	var bars []barchart.BarData
	for _, t := range d.totals {
		style := lipgloss.NewStyle().Foreground(categoryColor(t.Category))
		bars = append(bars, barchart.BarData{
			Label: truncate(t.Category.Label(), 5),
			Values: []barchart.BarValue{{
				Name:  t.Category.Label(),
				Value: float64(t.Score),
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderStatsPanel(contentWidth/2),
		d.renderChartPanel(contentWidth-contentWidth/2),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		d.renderAdvicePanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	rows := []string{
		titleStyle.Render("Your Impact"),
		"",
		fmt.Sprintf("  %-14s %s", "Activities", highlightStyle.Render(fmt.Sprint(d.stats.TotalLogs))),
		fmt.Sprintf("  %-14s %s", "Impact score", successStyle.Render(fmt.Sprint(d.stats.TotalScore))),
		fmt.Sprintf("  %-14s %s", "Streak", warningStyle.Render(fmt.Sprintf("%d days", d.stats.Streak))),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Impact by Category")
	if d.stats.TotalLogs == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Log an activity to see your chart"),
		))
	}

	var legend []string
	for _, t := range d.totals {
		if t.Count == 0 {
			continue
		}
		legend = append(legend, fmt.Sprintf("%s %s %d", categoryDot(t.Category), t.Category.Label(), t.Score))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", d.chart.View(), "", strings.Join(legend, "  "),
	))
}

func (d dashboardModel) renderAdvicePanel(w int) string {
	title := titleStyle.Render("Eco Coach")

	var body string
	switch {
	case d.adviceLoading:
		body = d.spinner.View() + mutedStyle.Render(" Thinking about your activities...")
	case d.adviceText != "":
		body = lipgloss.NewStyle().Width(w - 6).Render(d.adviceText)
	default:
		body = mutedStyle.Render(adviceIdle)
	}
	if !d.advisor.Enabled() && !d.adviceLoading {
		body += "\n" + mutedStyle.Render("(no GEMINI_API_KEY configured, showing offline tips)")
	}

	style := panelStyle
	if d.adviceLoading {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Activity")
	if len(d.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No activities yet. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := d.now()
	descWidth := max(10, w-40)

	var rows []string
	rows = append(rows, title)
	end := min(len(d.entries), d.offset+d.listHeight())
	for i := d.offset; i < end; i++ {
		e := d.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%s %-10s %-*s %s %s",
			cursor,
			categoryDot(e.Category),
			e.Category.Label(),
			descWidth, truncate(e.Description, descWidth),
			successStyle.Render(impactBar(e.ImpactScore)),
			mutedStyle.Render(formatAgo(e.Date, now)),
		)
		rows = append(rows, style.Render(row))
	}
	if len(d.entries) > d.listHeight() {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", d.offset+1, end, len(d.entries))))
	}
	rows = append(rows, mutedStyle.Render("  n: log  d: delete  a: advice  ↑/↓: select"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
