package report

import (
	"errors"
	"io"

	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func run(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{view: view, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

func RenderCatalog(catalog domain.Catalog, opts CatalogOptions) (string, error) {
	return run(func(s styles) string { return catalogView(catalog, opts, s) })
}

func RenderOutcomes(outcomes []domain.RefreshOutcome, opts OutcomeOptions) (string, error) {
	return run(func(s styles) string { return outcomesView(outcomes, opts, s) })
}

func RenderSession(status application.SessionStatus) (string, error) {
	return run(func(s styles) string { return sessionView(status, s) })
}

func RenderInstances(instances []domain.RemoteInstance) (string, error) {
	return run(func(s styles) string { return instancesView(instances, s) })
}
