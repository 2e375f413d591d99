package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mcon/internal/models"
	"mcon/internal/permissions"
	"mcon/internal/ui/components"
)

// BucketLister loads the buckets of an organization
type BucketLister interface {
	ListBuckets(ctx context.Context, orgID string) ([]models.Bucket, error)
}

// AuthorizationCreator creates API tokens
type AuthorizationCreator interface {
	CreateAuthorization(ctx context.Context, auth *models.Authorization) (*models.Authorization, error)
}

type tokenFocus int

const (
	focusDescription tokenFocus = iota
	focusRead
	focusWrite
	focusSave
	focusCancel
	tokenFocusCount
)

// TokenOverlay generates a token with read and write access to chosen buckets
type TokenOverlay struct {
	Description textinput.Model
	Read        components.BucketSelector
	Write       components.BucketSelector
	Spinner     spinner.Model
	Buckets     []models.Bucket

	Loading   bool
	Saving    bool
	Err       error
	Created   *models.Authorization
	Dismissed bool

	ctx     context.Context
	orgID   string
	lister  BucketLister
	creator AuthorizationCreator
	focus   tokenFocus
	loaded  bool
}

// NewTokenOverlay creates the overlay for orgID
func NewTokenOverlay(ctx context.Context, orgID string, lister BucketLister, creator AuthorizationCreator) TokenOverlay {
	input := textinput.New()
	input.Placeholder = "Describe this new token"
	input.CharLimit = 256
	input.Width = 48
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return TokenOverlay{
		Description: input,
		Read:        components.NewBucketSelector("Read"),
		Write:       components.NewBucketSelector("Write"),
		Spinner:     s,
		Loading:     true,
		ctx:         ctx,
		orgID:       orgID,
		lister:      lister,
		creator:     creator,
	}
}

// Init starts loading buckets
func (m TokenOverlay) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, textinput.Blink, loadBuckets(m.ctx, m.lister, m.orgID))
}

// Update handles UI events
func (m TokenOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.dismiss()
		case "tab":
			return m.setFocus((m.focus + 1) % tokenFocusCount), nil
		case "shift+tab":
			return m.setFocus((m.focus + tokenFocusCount - 1) % tokenFocusCount), nil
		case "ctrl+s":
			return m.submit()
		case "enter":
			switch m.focus {
			case focusDescription, focusSave:
				return m.submit()
			case focusCancel:
				return m.dismiss()
			}
		}
		return m.updateFocused(msg)

	case bucketsLoadedMsg:
		m.Loading = false
		m.loaded = true
		m.Buckets = msg
		m.Read = m.Read.SetBuckets(msg)
		m.Write = m.Write.SetBuckets(msg)
		return m, nil

	case authorizationCreatedMsg:
		m.Saving = false
		m.Created = msg.auth
		return m, tea.Quit

	case errorMsg:
		m.Loading = false
		m.Saving = false
		m.Err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Authorization returns the token request for the current form state
func (m TokenOverlay) Authorization() *models.Authorization {
	return permissions.NewBucketsAuthorization(
		m.orgID,
		strings.TrimSpace(m.Description.Value()),
		m.Buckets,
		m.Read.Selected,
		m.Write.Selected,
	)
}

func (m TokenOverlay) submit() (tea.Model, tea.Cmd) {
	// Without a bucket list an empty selection would derive org-wide access
	if m.Saving || m.Loading || !m.loaded {
		return m, nil
	}

	if m.Read.Selected.Len()+m.Write.Selected.Len() == 0 {
		m.Err = models.ErrNoPermissions
		return m, nil
	}

	auth := m.Authorization()
	if len(auth.Permissions) == 0 {
		m.Err = models.ErrNoPermissions
		return m, nil
	}

	m.Saving = true
	m.Err = nil
	return m, createAuthorization(m.ctx, m.creator, auth)
}

func (m TokenOverlay) dismiss() (tea.Model, tea.Cmd) {
	m.Dismissed = true
	return m, tea.Quit
}

func (m TokenOverlay) setFocus(f tokenFocus) TokenOverlay {
	m.focus = f
	m.Read.Focused = f == focusRead
	m.Write.Focused = f == focusWrite
	if f == focusDescription {
		m.Description.Focus()
	} else {
		m.Description.Blur()
	}
	return m
}

func (m TokenOverlay) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusDescription:
		m.Description, cmd = m.Description.Update(msg)
	case focusRead:
		m.Read, cmd = m.Read.Update(msg)
	case focusWrite:
		m.Write, cmd = m.Write.Update(msg)
	}
	return m, cmd
}

// View renders the overlay
func (m TokenOverlay) View() string {
	status := "Ready"
	switch {
	case m.Loading:
		status = fmt.Sprintf("%s Loading buckets...", m.Spinner.View())
	case m.Saving:
		status = fmt.Sprintf("%s Creating token...", m.Spinner.View())
	}

	description := lipgloss.JoinVertical(lipgloss.Left, "Description", m.Description.View())
	selectors := lipgloss.JoinHorizontal(lipgloss.Top, m.Read.View(), " ", m.Write.View())
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton("Cancel", m.focus == focusCancel, false),
		" ",
		renderButton("Save", m.focus == focusSave, m.Saving || m.Loading),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, description, "", selectors, "", buttons)

	errText := ""
	if m.Err != nil {
		errText = m.Err.Error()
	}

	return frame(
		"Generate Read/Write Token",
		status,
		body,
		errText,
		"tab: next field • space: toggle • a: select all • n: deselect all • ctrl+s: save • esc: cancel",
	)
}

// Messages
type bucketsLoadedMsg []models.Bucket

type authorizationCreatedMsg struct{ auth *models.Authorization }

// Commands
func loadBuckets(ctx context.Context, lister BucketLister, orgID string) tea.Cmd {
	return func() tea.Msg {
		buckets, err := lister.ListBuckets(ctx, orgID)
		if err != nil {
			return errorMsg{err}
		}
		return bucketsLoadedMsg(buckets)
	}
}

func createAuthorization(ctx context.Context, creator AuthorizationCreator, auth *models.Authorization) tea.Cmd {
	return func() tea.Msg {
		created, err := creator.CreateAuthorization(ctx, auth)
		if err != nil {
			return errorMsg{err}
		}
		return authorizationCreatedMsg{auth: created}
	}
}
