package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/greenconnect/internal/store"
	"go.uber.org/zap"
)

const defaultImpact = 5

var errEmptyDescription = errors.New("please describe what you did")

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return errEmptyDescription
	}
	return nil
}

type logFormModel struct {
	store  *store.Store
	logger *zap.Logger
	width  int
	height int

	form *huh.Form
	err  string

	// Form field pointers (survive value copies)
	category    *store.Category
	description *string
	impact      *int
}

func newLogFormModel(s *store.Store, logger *zap.Logger) logFormModel {
	if s == nil {
		panic("tui: log form requires an activity store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, desc, impact := store.CategoryTransport, "", defaultImpact
	l := logFormModel{
		store:       s,
		logger:      logger,
		category:    &cat,
		description: &desc,
		impact:      &impact,
	}
	l.build()
	return l
}

func (l *logFormModel) setSize(w, h int) {
	l.width = w
	l.height = h
	if l.form != nil {
		l.form = l.form.WithWidth(max(20, w-8))
	}
}

// reset clears the fields and rebuilds the form.
func (l *logFormModel) reset() tea.Cmd {
	*l.category = store.CategoryTransport
	*l.description = ""
	*l.impact = defaultImpact
	l.err = ""
	l.build()
	return l.form.Init()
}

func (l *logFormModel) build() {
	catOptions := make([]huh.Option[store.Category], 0, len(store.Categories()))
	for _, c := range store.Categories() {
		catOptions = append(catOptions, huh.NewOption(c.Label(), c))
	}
	impactOptions := make([]huh.Option[int], 0, store.MaxImpact)
	for i := store.MinImpact; i <= store.MaxImpact; i++ {
		impactOptions = append(impactOptions, huh.NewOption(fmt.Sprintf("%2d %s", i, impactBar(i)), i))
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[store.Category]().Title("Category").Options(catOptions...).Value(l.category),
			huh.NewInput().Title("What did you do?").
				Placeholder("e.g. Cycled to work").
				Value(l.description).
				Validate(validateDescription),
			huh.NewSelect[int]().Title("Impact (1-10)").Options(impactOptions...).Value(l.impact),
		),
	).WithShowHelp(true).WithShowErrors(true)

	if l.width > 0 {
		l.form = l.form.WithWidth(max(20, l.width-8))
	}
}

func (l logFormModel) update(msg tea.Msg) (logFormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.logger.Debug("log form cancelled")
			cmd := l.reset()
			return l, tea.Batch(func() tea.Msg { return navigateMsg{route: routeDashboard} }, cmd)
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	switch l.form.State {
	case huh.StateCompleted:
		return l.submit()
	case huh.StateAborted:
		cmd := l.reset()
		return l, tea.Batch(func() tea.Msg { return navigateMsg{route: routeDashboard} }, cmd)
	}

	return l, cmd
}

// submit adds the entry when the description is present. An empty
// description keeps the user on the form with an inline message.
func (l logFormModel) submit() (logFormModel, tea.Cmd) {
	desc := strings.TrimSpace(*l.description)
	if err := validateDescription(desc); err != nil {
		l.err = err.Error()
		l.build()
		return l, l.form.Init()
	}

	category, impact := *l.category, *l.impact
	id := l.store.Add(category, desc, impact)
	l.logger.Info("entry added",
		zap.String("id", id),
		zap.String("category", string(category)),
		zap.Int("impact", impact))

	cmd := l.reset()
	return l, tea.Batch(
		func() tea.Msg { return entryAddedMsg{id: id} },
		func() tea.Msg { return navigateMsg{route: routeDashboard} },
		cmd,
	)
}

func (l logFormModel) view() string {
	title := titleStyle.Render("Log an Eco Activity")
	hint := mutedStyle.Render("Every action counts. Rate its impact from 1 (small) to 10 (huge).")

	parts := []string{title, hint, ""}
	if l.err != "" {
		parts = append(parts, errorStyle.Render("✗ "+l.err), "")
	}
	parts = append(parts, l.form.View(), "", mutedStyle.Render("  esc: cancel"))

	return panelStyle.Width(l.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
