package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcon/internal/models"
	"mcon/internal/templates"
	"mcon/internal/ui/components"
)

// TemplateSource lists templates and fetches their content
type TemplateSource interface {
	ListTemplates(ctx context.Context, orgID string) ([]models.TemplateSummary, error)
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
}

// DashboardCreator instantiates a dashboard from a template
type DashboardCreator interface {
	CreateFromTemplate(ctx context.Context, orgID string, t *models.Template) (*models.Dashboard, error)
}

// TemplateOverlay creates a dashboard from a template
type TemplateOverlay struct {
	Browser          components.TemplateBrowser
	Spinner          spinner.Model
	Templates        []models.TemplateSummary
	SelectedTemplate *models.Template
	Variables        []string
	Cells            []string

	Loading   bool
	Fetching  bool
	Creating  bool
	Err       error
	Created   *models.Dashboard
	Dismissed bool

	ctx     context.Context
	orgID   string
	source  TemplateSource
	creator DashboardCreator
	pending string
}

// NewTemplateOverlay creates the overlay for orgID
func NewTemplateOverlay(ctx context.Context, orgID string, source TemplateSource, creator DashboardCreator) TemplateOverlay {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return TemplateOverlay{
		Browser: components.NewTemplateBrowser(80, 20),
		Spinner: s,
		Loading: true,
		ctx:     ctx,
		orgID:   orgID,
		source:  source,
		creator: creator,
	}
}

// Init starts loading template summaries
func (m TemplateOverlay) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadTemplates(m.ctx, m.source, m.orgID))
}

// SubmitEnabled reports whether "Create Dashboard" can be pressed
func (m TemplateOverlay) SubmitEnabled() bool {
	return m.SelectedTemplate != nil && !m.Creating && !m.Fetching
}

// Update handles UI events
func (m TemplateOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Browser.Filtering() {
			return m.updateBrowser(msg)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.Dismissed = true
			return m, tea.Quit
		case "enter":
			return m.selectHighlighted()
		case "ctrl+s":
			return m.submit()
		}
		return m.updateBrowser(msg)

	case tea.WindowSizeMsg:
		m.Browser.SetSize(msg.Width, msg.Height-8)
		return m, nil

	case templatesLoadedMsg:
		m.Loading = false
		m.Templates = msg
		return m, m.Browser.SetTemplates(msg)

	case templateFetchedMsg:
		// A later selection supersedes this response
		if msg.summary.ID != m.pending {
			return m, nil
		}
		m.Fetching = false
		m.pending = ""
		summary := msg.summary
		m.SelectedTemplate = msg.template
		m.Variables = templates.Variables(msg.template)
		m.Cells = templates.Cells(msg.template)
		m.Browser.Selected = &summary
		m.Browser.Variables = m.Variables
		m.Browser.Cells = m.Cells
		return m, nil

	case templateFetchFailedMsg:
		if msg.id != m.pending {
			return m, nil
		}
		m.Fetching = false
		m.pending = ""
		m.Err = msg.err
		return m, nil

	case dashboardCreatedMsg:
		m.Creating = false
		m.Created = msg.dashboard
		return m, tea.Quit

	case errorMsg:
		m.Loading = false
		m.Fetching = false
		m.Creating = false
		m.Err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m.updateBrowser(msg)
}

func (m TemplateOverlay) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Browser, cmd = m.Browser.Update(msg)
	return m, cmd
}

func (m TemplateOverlay) selectHighlighted() (tea.Model, tea.Cmd) {
	summary, ok := m.Browser.Highlighted()
	if !ok || m.Creating {
		return m, nil
	}

	m.Fetching = true
	m.Err = nil
	m.pending = summary.ID
	return m, fetchTemplate(m.ctx, m.source, summary)
}

func (m TemplateOverlay) submit() (tea.Model, tea.Cmd) {
	if !m.SubmitEnabled() {
		return m, nil
	}

	m.Creating = true
	m.Err = nil
	return m, createDashboard(m.ctx, m.creator, m.orgID, m.SelectedTemplate)
}

// View renders the overlay
func (m TemplateOverlay) View() string {
	status := "Ready"
	switch {
	case m.Loading:
		status = fmt.Sprintf("%s Loading templates...", m.Spinner.View())
	case m.Fetching:
		status = fmt.Sprintf("%s Loading template...", m.Spinner.View())
	case m.Creating:
		status = fmt.Sprintf("%s Creating dashboard...", m.Spinner.View())
	}

	var body string
	if !m.Loading && len(m.Templates) == 0 {
		body = statusStyle.Render("No templates found. Import a dashboard template to get started.")
	} else {
		body = m.Browser.View()
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton("Cancel", false, false),
		" ",
		renderButton("Create Dashboard", m.SubmitEnabled(), !m.SubmitEnabled()),
	)

	errText := ""
	if m.Err != nil {
		errText = m.Err.Error()
	}

	return frame(
		"Create Dashboard from a Template",
		status,
		lipgloss.JoinVertical(lipgloss.Left, body, "", buttons),
		errText,
		"enter: preview • /: filter • ctrl+s: create dashboard • esc: cancel",
	)
}

// Messages
type templatesLoadedMsg []models.TemplateSummary

type templateFetchedMsg struct {
	summary  models.TemplateSummary
	template *models.Template
}

type templateFetchFailedMsg struct {
	id  string
	err error
}

type dashboardCreatedMsg struct{ dashboard *models.Dashboard }

// Commands
func loadTemplates(ctx context.Context, source TemplateSource, orgID string) tea.Cmd {
	return func() tea.Msg {
		summaries, err := source.ListTemplates(ctx, orgID)
		if err != nil {
			return errorMsg{err}
		}
		return templatesLoadedMsg(summaries)
	}
}

func fetchTemplate(ctx context.Context, source TemplateSource, summary models.TemplateSummary) tea.Cmd {
	return func() tea.Msg {
		tmpl, err := source.GetTemplate(ctx, summary.ID)
		if err != nil {
			return templateFetchFailedMsg{id: summary.ID, err: err}
		}
		return templateFetchedMsg{summary: summary, template: tmpl}
	}
}

func createDashboard(ctx context.Context, creator DashboardCreator, orgID string, t *models.Template) tea.Cmd {
	return func() tea.Msg {
		dashboard, err := creator.CreateFromTemplate(ctx, orgID, t)
		if err != nil {
			if dashboard != nil {
				err = fmt.Errorf("dashboard %s created incomplete: %w", dashboard.ID, err)
			}
			return errorMsg{err}
		}
		return dashboardCreatedMsg{dashboard: dashboard}
	}
}
