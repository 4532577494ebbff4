package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/greenconnect/internal/advice"
	"github.com/sadopc/greenconnect/internal/community"
	"github.com/sadopc/greenconnect/internal/export"
	"github.com/sadopc/greenconnect/internal/store"
	"go.uber.org/zap"
)

// Deps are the session-scoped collaborators handed to every view.
type Deps struct {
	Store   *store.Store
	Advisor *advice.Advisor
	Board   *community.Board
	Logger  *zap.Logger

	ExportDir  string
	StartRoute string
}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	logger    *zap.Logger
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	logForm   logFormModel
	community communityModel

	help   help.Model
	status string
	isErr  bool
}

// NewApp builds the root model. A missing store or board is a programming
// error and panics.
func NewApp(d Deps) App {
	if d.Store == nil {
		panic("tui: NewApp requires an activity store")
	}
	if d.Board == nil {
		panic("tui: NewApp requires a community board")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Advisor == nil {
		d.Advisor = advice.New(nil, d.Logger)
	}

	h := help.New()
	h.ShowAll = false

	a := App{
		store:     d.Store,
		logger:    d.Logger,
		exportDir: d.ExportDir,
		dashboard: newDashboardModel(d.Store, d.Advisor, d.Logger),
		logForm:   newLogFormModel(d.Store, d.Logger),
		community: newCommunityModel(d.Board),
		help:      h,
	}

	view, topic := parseRoute(d.StartRoute)
	a.activeView = view
	a.community.setTopic(topic)
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.loadData(),
		a.community.refresh(),
		a.logForm.form.Init(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.logForm.setSize(a.width, contentHeight)
		a.community.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.navigate(routeDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.navigate(routeLog)
		case key.Matches(msg, keys.Tab3):
			return a.navigate(routeFor(viewCommunity, a.community.topic))
		case key.Matches(msg, keys.Tab):
			next := viewState((int(a.activeView) + 1) % len(viewRoutes))
			return a.navigate(routeFor(next, a.community.topic))
		}

	case navigateMsg:
		return a.navigate(msg.route)

	// Advice and spinner ticks belong to the dashboard whichever view is active.
	case adviceMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case communityDataMsg:
		var cmd tea.Cmd
		a.community, cmd = a.community.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case entryAddedMsg:
		a.setStatus("Activity logged", false)
		return a, a.dashboard.loadData()

	case entryDeletedMsg:
		a.setStatus("Activity deleted", false)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.isErr = isErr
}

// navigate switches to the view named by route.
func (a App) navigate(route string) (App, tea.Cmd) {
	view, topic := parseRoute(route)
	a.activeView = view
	a.logger.Debug("navigate", zap.String("route", route), zap.String("view", viewNames[view]))

	switch view {
	case viewDashboard:
		return a, a.dashboard.loadData()
	case viewLog:
		return a, a.logForm.form.Init()
	case viewCommunity:
		a.community.setTopic(topic)
		return a, a.community.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLog:
		a.logForm, cmd = a.logForm.update(msg)
	case viewCommunity:
		a.community, cmd = a.community.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewLog:
		return a.logForm.form != nil
	case viewCommunity:
		return a.community.composing
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLog:
		content = a.logForm.view()
	case viewCommunity:
		content = a.community.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("greenconnect")
	route := mutedStyle.Render(" " + routeFor(a.activeView, a.community.topic))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(route) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, route, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	stats := a.store.Stats()
	score := successStyle.Render(fmt.Sprintf(" ♻ %d", stats.TotalScore))

	left := footerStyle.Render(helpView)
	right := score + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	entries := a.store.Entries()
	stats := a.store.Stats()
	dir := a.exportDir
	logger := a.logger
	return func() tea.Msg {
		day := time.Now()

		var path string
		if format == 0 {
			path = filepath.Join(dir, export.FileName(day, "csv"))
			if err := export.ToCSV(entries, path); err != nil {
				logger.Error("csv export failed", zap.Error(err))
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, export.FileName(day, "json"))
			if err := export.ToJSON(entries, stats, path); err != nil {
				logger.Error("json export failed", zap.Error(err))
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		logger.Info("exported session", zap.String("path", path), zap.Int("entries", len(entries)))
		return exportDoneMsg{path: path}
	}
}
